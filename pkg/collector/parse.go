package collector

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/memtop/memtop/pkg/types"
)

// normalizeKB converts a value with an optional unit suffix to kilobytes.
// /proc reports kB everywhere, but the unit is parsed rather than assumed so
// a differently-labelled line degrades to a sane value instead of garbage.
func normalizeKB(value uint64, unit string) uint64 {
	switch strings.ToLower(unit) {
	case "", "kb":
		return value
	case "mb":
		return value * 1024
	case "gb":
		return value * 1024 * 1024
	case "b":
		return value / 1024
	default:
		return value
	}
}

// parseCounterLine splits a "Label:  value [unit]" line. ok is false for
// lines that do not carry a label/value pair; a malformed value parses as 0.
func parseCounterLine(line string) (label string, kb uint64, ok bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", 0, false
	}
	value, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		value = 0
	}
	unit := ""
	if len(fields) >= 3 {
		unit = fields[2]
	}
	return fields[0], normalizeKB(value, unit), true
}

// parseMeminfo extracts the system-wide counters from /proc/meminfo content.
// Unrecognized labels are ignored; counters the kernel does not report stay
// zero.
func parseMeminfo(data []byte) types.SystemMemory {
	var mem types.SystemMemory
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		label, kb, ok := parseCounterLine(scanner.Text())
		if !ok {
			continue
		}
		switch label {
		case "MemTotal:":
			mem.TotalKB = kb
		case "MemFree:":
			mem.FreeKB = kb
		case "MemAvailable:":
			mem.AvailableKB = kb
		case "Buffers:":
			mem.BuffersKB = kb
		case "Cached:":
			mem.CachedKB = kb
		case "SwapTotal:":
			mem.SwapTotalKB = kb
		case "SwapFree:":
			mem.SwapFreeKB = kb
		case "Slab:":
			mem.SlabKB = kb
		case "PageTables:":
			mem.PageTablesKB = kb
		}
	}
	return mem
}

// parseSmapsRollup extracts the per-process counters from a smaps_rollup
// file. The address-range header line carries no "Label:" pair and falls
// through the switch untouched.
func parseSmapsRollup(pid int, data []byte) types.ProcessMemory {
	mem := types.ProcessMemory{PID: pid}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		label, kb, ok := parseCounterLine(scanner.Text())
		if !ok {
			continue
		}
		switch label {
		case "Rss:":
			mem.RSSKB = kb
		case "Pss:":
			mem.PSSKB = kb
		case "Shared_Clean:":
			mem.SharedCleanKB = kb
		case "Shared_Dirty:":
			mem.SharedDirtyKB = kb
		case "Private_Clean:":
			mem.PrivateCleanKB = kb
		case "Private_Dirty:":
			mem.PrivateDirtyKB = kb
		case "Swap:":
			mem.SwapKB = kb
		}
	}
	return mem
}

// parseNodeMeminfo extracts the counters from a per-node meminfo file.
// Lines there look like "Node 0 MemTotal:  32768 kB", so the label sits in
// the third column. MemUsed falls back to total minus free on kernels that
// omit it.
func parseNodeMeminfo(nodeID int, data []byte) types.NumaNode {
	node := types.NumaNode{NodeID: nodeID}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		value, err := strconv.ParseUint(fields[3], 10, 64)
		if err != nil {
			value = 0
		}
		unit := ""
		if len(fields) >= 5 {
			unit = fields[4]
		}
		kb := normalizeKB(value, unit)
		switch fields[2] {
		case "MemTotal:":
			node.MemTotalKB = kb
		case "MemFree:":
			node.MemFreeKB = kb
		case "MemUsed:":
			node.MemUsedKB = kb
		}
	}
	if node.MemUsedKB == 0 && node.MemTotalKB > node.MemFreeKB {
		node.MemUsedKB = node.MemTotalKB - node.MemFreeKB
	}
	return node
}

package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/memtop/memtop/pkg/types"
)

const (
	defaultProcPath = "/proc"
	defaultNodePath = "/sys/devices/system/node"
)

// Collector reads one raw memory snapshot per call from the kernel's text
// interfaces. It performs no derived computation; that belongs to the
// analyzer.
type Collector struct {
	procPath string
	nodePath string
}

// New returns a collector bound to the given procfs and sysfs node mounts;
// empty paths fall back to the standard locations.
func New(procPath, nodePath string) *Collector {
	if procPath == "" {
		procPath = defaultProcPath
	}
	if nodePath == "" {
		nodePath = defaultNodePath
	}
	return &Collector{
		procPath: procPath,
		nodePath: nodePath,
	}
}

// Collect assembles a snapshot of system, per-NUMA-node, and per-process
// memory counters. Only an unreadable /proc/meminfo fails the pass; every
// per-node and per-process read is best-effort because the process table is
// inherently racy, and anything that cannot be read is simply absent from
// the snapshot.
func (c *Collector) Collect() (*types.MemorySnapshot, error) {
	meminfoPath := filepath.Join(c.procPath, "meminfo")
	data, err := os.ReadFile(meminfoPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", meminfoPath, err)
	}

	system := parseMeminfo(data)
	numaNodes := c.collectNumaNodes()
	processes := c.collectProcesses()

	return &types.MemorySnapshot{
		Timestamp: time.Now(),
		System:    system,
		Processes: processes,
		NumaNodes: numaNodes,
	}, nil
}

// collectNumaNodes walks the sysfs node directories. Returns nil on
// non-NUMA systems. A node whose meminfo cannot be read is skipped rather
// than recorded with zeros; absence means no data, not zero capacity.
func (c *Collector) collectNumaNodes() []types.NumaNode {
	entries, err := os.ReadDir(c.nodePath)
	if err != nil {
		return nil
	}

	var nodes []types.NumaNode
	for _, entry := range entries {
		name := entry.Name()
		idStr, found := strings.CutPrefix(name, "node")
		if !found {
			continue
		}
		nodeID, err := strconv.Atoi(idStr)
		if err != nil || nodeID < 0 {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.nodePath, name, "meminfo"))
		if err != nil {
			continue
		}
		nodes = append(nodes, parseNodeMeminfo(nodeID, data))
	}

	sort.Slice(nodes, func(i, j int) bool { return nodes[i].NodeID < nodes[j].NodeID })
	return nodes
}

// collectProcesses reads smaps_rollup for every numeric /proc entry. A PID
// whose rollup read fails (exited, no permission, rollup unsupported) is
// dropped silently; a failed name read only downgrades the name to a
// placeholder.
func (c *Collector) collectProcesses() []types.ProcessMemory {
	entries, err := os.ReadDir(c.procPath)
	if err != nil {
		return nil
	}

	var processes []types.ProcessMemory
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || pid <= 0 {
			continue
		}
		data, err := os.ReadFile(filepath.Join(c.procPath, entry.Name(), "smaps_rollup"))
		if err != nil {
			continue
		}
		proc := parseSmapsRollup(pid, data)
		proc.Name = c.processName(pid)
		processes = append(processes, proc)
	}
	return processes
}

// processName reads /proc/<pid>/comm, falling back to a bracketed PID
// placeholder when the file is unreadable or empty.
func (c *Collector) processName(pid int) string {
	data, err := os.ReadFile(filepath.Join(c.procPath, strconv.Itoa(pid), "comm"))
	if err != nil {
		return fmt.Sprintf("[%d]", pid)
	}
	name := strings.TrimSpace(string(data))
	if name == "" {
		return fmt.Sprintf("[%d]", pid)
	}
	return name
}

package types

import "time"

// MemorySnapshot is the immutable result of one collection pass over the
// kernel's text interfaces. Processes that vanished between enumeration and
// read are simply absent; no placeholder records are synthesized.
type MemorySnapshot struct {
	Timestamp time.Time
	System    SystemMemory
	Processes []ProcessMemory
	NumaNodes []NumaNode
}

// ProcessMemory holds the raw per-process counters from smaps_rollup, all
// in kilobytes.
type ProcessMemory struct {
	PID            int
	Name           string
	RSSKB          uint64
	PSSKB          uint64
	SharedCleanKB  uint64
	SharedDirtyKB  uint64
	PrivateCleanKB uint64
	PrivateDirtyKB uint64
	SwapKB         uint64
}

// SystemMemory holds the system-wide counters from /proc/meminfo in
// kilobytes. A counter the kernel does not report stays zero.
type SystemMemory struct {
	TotalKB      uint64
	FreeKB       uint64
	AvailableKB  uint64
	BuffersKB    uint64
	CachedKB     uint64
	SwapTotalKB  uint64
	SwapFreeKB   uint64
	SlabKB       uint64
	PageTablesKB uint64
}

// NumaNode carries the per-node counters from
// /sys/devices/system/node/node<N>/meminfo.
type NumaNode struct {
	NodeID     int
	MemTotalKB uint64
	MemFreeKB  uint64
	MemUsedKB  uint64
}

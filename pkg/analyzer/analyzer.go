// Package analyzer turns raw memory snapshots into the derived state the UI
// renders: per-process stats with PSS deltas, system-wide totals, shared
// memory accounting, and a bucketed map of physical memory. It owns the only
// mutable state in the pipeline, the per-PID PSS history used for deltas.
package analyzer

import (
	"time"

	"github.com/memtop/memtop/pkg/types"
)

// State is the immutable result of one analysis pass; the presentation
// layer consumes it read-only.
type State struct {
	CapturedAt   time.Time
	Processes    []ProcessStats
	System       SystemStats
	SharedMemory SharedMemoryStats
	MemoryMap    MemoryMap
	NumaNodes    []types.NumaNode
}

// ProcessStats is one derived per-process row.
type ProcessStats struct {
	PID        int
	Name       string
	PSSKB      uint64
	RSSKB      uint64
	SharedKB   uint64
	PrivateKB  uint64
	SwapKB     uint64
	PSSDeltaKB int64
}

// SystemStats aggregates the system counters with process-attributable
// totals.
type SystemStats struct {
	TotalKB           uint64
	UsedKB            uint64
	AvailableKB       uint64
	CachedKB          uint64
	BuffersKB         uint64
	SwapTotalKB       uint64
	SwapUsedKB        uint64
	TotalProcessPSSKB uint64
	TotalProcessRSSKB uint64
	UsedPercent       float64
	SwapUsedPercent   float64
}

// SharedMemoryStats totals shared pages across all processes. Sharing
// efficiency is the fraction of summed RSS that double-counts shared pages,
// i.e. (RSS-PSS)/RSS as a percentage.
type SharedMemoryStats struct {
	TotalSharedKB      uint64
	TotalSharedCleanKB uint64
	TotalSharedDirtyKB uint64
	SharingEfficiency  float64
}

// MemoryMap accounts total physical memory into explicit buckets plus a
// kernel residual. The residual absorbs kernel code/data, DMA and network
// buffers, and anything the kernel did not report; it is a known
// approximation, not a precise figure. ProcessSharedKB is carried for
// display but excluded from the residual accounting since shared pages are
// largely file-backed and already inside the cache bucket.
type MemoryMap struct {
	KernelKB         uint64
	ProcessPrivateKB uint64
	ProcessSharedKB  uint64
	CacheKB          uint64
	BuffersKB        uint64
	FreeKB           uint64
	SlabKB           uint64
	PageTablesKB     uint64
}

// Analyzer retains the previous snapshot and the per-PID PSS history. It is
// not safe for concurrent use; the caller runs one cycle at a time.
type Analyzer struct {
	lastSnapshot   *types.MemorySnapshot
	processHistory map[int]uint64
}

// New returns an analyzer with empty history; every delta in the first
// analyzed snapshot reports zero.
func New() *Analyzer {
	return &Analyzer{
		processHistory: make(map[int]uint64),
	}
}

// Analyze derives the full state for one snapshot and advances the history.
// It never fails: every subtraction saturates and every division is guarded,
// so degenerate inputs yield zeros rather than errors.
func (a *Analyzer) Analyze(snapshot *types.MemorySnapshot) State {
	state := State{
		CapturedAt:   snapshot.Timestamp,
		Processes:    a.deriveProcesses(snapshot.Processes),
		System:       deriveSystem(snapshot.System, snapshot.Processes),
		SharedMemory: deriveSharedMemory(snapshot.Processes),
		MemoryMap:    deriveMemoryMap(snapshot.System, snapshot.Processes),
		NumaNodes:    snapshot.NumaNodes,
	}
	a.lastSnapshot = snapshot
	return state
}

// LastSnapshot returns the most recently analyzed snapshot, or nil before
// the first cycle.
func (a *Analyzer) LastSnapshot() *types.MemorySnapshot {
	return a.lastSnapshot
}

// deriveProcesses computes the per-process rows and then rebuilds the PSS
// history from scratch with only the PIDs present in this snapshot. The
// rebuild must happen after all deltas are computed; updating first would
// collapse every delta to zero. A PID with no history entry takes its
// current PSS as the baseline, so newly observed processes report a delta
// of exactly zero instead of a spurious jump.
func (a *Analyzer) deriveProcesses(processes []types.ProcessMemory) []ProcessStats {
	stats := make([]ProcessStats, 0, len(processes))
	newHistory := make(map[int]uint64, len(processes))

	for _, proc := range processes {
		lastPSS, ok := a.processHistory[proc.PID]
		if !ok {
			lastPSS = proc.PSSKB
		}
		stats = append(stats, ProcessStats{
			PID:        proc.PID,
			Name:       proc.Name,
			PSSKB:      proc.PSSKB,
			RSSKB:      proc.RSSKB,
			SharedKB:   proc.SharedCleanKB + proc.SharedDirtyKB,
			PrivateKB:  proc.PrivateCleanKB + proc.PrivateDirtyKB,
			SwapKB:     proc.SwapKB,
			PSSDeltaKB: int64(proc.PSSKB) - int64(lastPSS),
		})
		newHistory[proc.PID] = proc.PSSKB
	}

	a.processHistory = newHistory
	return stats
}

func deriveSystem(system types.SystemMemory, processes []types.ProcessMemory) SystemStats {
	var totalPSS, totalRSS uint64
	for _, proc := range processes {
		totalPSS += proc.PSSKB
		totalRSS += proc.RSSKB
	}

	used := saturatingSub(system.TotalKB, system.AvailableKB)
	swapUsed := saturatingSub(system.SwapTotalKB, system.SwapFreeKB)

	return SystemStats{
		TotalKB:           system.TotalKB,
		UsedKB:            used,
		AvailableKB:       system.AvailableKB,
		CachedKB:          system.CachedKB,
		BuffersKB:         system.BuffersKB,
		SwapTotalKB:       system.SwapTotalKB,
		SwapUsedKB:        swapUsed,
		TotalProcessPSSKB: totalPSS,
		TotalProcessRSSKB: totalRSS,
		UsedPercent:       percent(used, system.TotalKB),
		SwapUsedPercent:   percent(swapUsed, system.SwapTotalKB),
	}
}

// deriveSharedMemory sums shared pages independently of the per-process
// pass; a consumer interested only in this view need not have derived the
// process rows.
func deriveSharedMemory(processes []types.ProcessMemory) SharedMemoryStats {
	var totalClean, totalDirty, totalRSS, totalPSS uint64
	for _, proc := range processes {
		totalClean += proc.SharedCleanKB
		totalDirty += proc.SharedDirtyKB
		totalRSS += proc.RSSKB
		totalPSS += proc.PSSKB
	}

	return SharedMemoryStats{
		TotalSharedKB:      totalClean + totalDirty,
		TotalSharedCleanKB: totalClean,
		TotalSharedDirtyKB: totalDirty,
		SharingEfficiency:  percent(saturatingSub(totalRSS, totalPSS), totalRSS),
	}
}

func deriveMemoryMap(system types.SystemMemory, processes []types.ProcessMemory) MemoryMap {
	var totalPrivate, totalShared uint64
	for _, proc := range processes {
		totalPrivate += proc.PrivateCleanKB + proc.PrivateDirtyKB
		totalShared += proc.SharedCleanKB + proc.SharedDirtyKB
	}

	accounted := totalPrivate + system.CachedKB + system.BuffersKB +
		system.FreeKB + system.SlabKB + system.PageTablesKB

	return MemoryMap{
		KernelKB:         saturatingSub(system.TotalKB, accounted),
		ProcessPrivateKB: totalPrivate,
		ProcessSharedKB:  totalShared,
		CacheKB:          system.CachedKB,
		BuffersKB:        system.BuffersKB,
		FreeKB:           system.FreeKB,
		SlabKB:           system.SlabKB,
		PageTablesKB:     system.PageTablesKB,
	}
}

func saturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}

func percent(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

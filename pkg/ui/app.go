package ui

import (
	"sort"
	"strings"

	"github.com/memtop/memtop/pkg/analyzer"
)

// SortMode selects the ordering of the process table.
type SortMode int

const (
	SortPSS SortMode = iota
	SortRSS
	SortShared
	SortPID
)

func (m SortMode) String() string {
	switch m {
	case SortRSS:
		return "RSS"
	case SortShared:
		return "Shared"
	case SortPID:
		return "PID"
	default:
		return "PSS"
	}
}

// SortModeFrom maps a config string to a sort mode; unknown values fall
// back to PSS.
func SortModeFrom(s string) SortMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rss":
		return SortRSS
	case "shared":
		return SortShared
	case "pid":
		return SortPID
	default:
		return SortPSS
	}
}

// ViewMode selects which of the three views fills the body of the screen.
type ViewMode int

const (
	ViewProcesses ViewMode = iota
	ViewMemoryMap
	ViewSharedMemory
)

func (m ViewMode) String() string {
	switch m {
	case ViewMemoryMap:
		return "Memory Map"
	case ViewSharedMemory:
		return "Shared Memory"
	default:
		return "Processes"
	}
}

// ViewModeFrom maps a config string to a view mode; unknown values fall
// back to the process table.
func ViewModeFrom(s string) ViewMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "memorymap", "memory_map", "map":
		return ViewMemoryMap
	case "sharedmemory", "shared_memory", "shared":
		return ViewSharedMemory
	default:
		return ViewProcesses
	}
}

// App holds the presentation state between refresh cycles: the latest
// analyzed result plus sort, view, and scroll positions. It never mutates
// the analyzed state it is handed; sorting works on a copied slice.
type App struct {
	state       analyzer.State
	processes   []analyzer.ProcessStats
	hostLine    string
	sortMode    SortMode
	viewMode    ViewMode
	scrollOff   int
	visibleRows int
}

// NewApp returns presentation state with the given host description and
// initial sort/view modes.
func NewApp(hostLine string, sortMode SortMode, viewMode ViewMode) *App {
	return &App{
		hostLine:    hostLine,
		sortMode:    sortMode,
		viewMode:    viewMode,
		visibleRows: 20,
	}
}

// Update installs a freshly analyzed state and re-sorts the process rows.
func (a *App) Update(state analyzer.State) {
	a.state = state
	a.processes = append(a.processes[:0], state.Processes...)
	a.sortProcesses()
	a.clampScroll()
}

// NextSort cycles PSS -> RSS -> Shared -> PID and resets scrolling.
func (a *App) NextSort() {
	switch a.sortMode {
	case SortPSS:
		a.sortMode = SortRSS
	case SortRSS:
		a.sortMode = SortShared
	case SortShared:
		a.sortMode = SortPID
	default:
		a.sortMode = SortPSS
	}
	a.sortProcesses()
	a.scrollOff = 0
}

// ToggleView cycles Processes -> Memory Map -> Shared Memory.
func (a *App) ToggleView() {
	switch a.viewMode {
	case ViewProcesses:
		a.viewMode = ViewMemoryMap
	case ViewMemoryMap:
		a.viewMode = ViewSharedMemory
	default:
		a.viewMode = ViewProcesses
	}
	a.scrollOff = 0
}

// ScrollUp moves the process window up one row.
func (a *App) ScrollUp() {
	if a.scrollOff > 0 {
		a.scrollOff--
	}
}

// ScrollDown moves the process window down one row.
func (a *App) ScrollDown() {
	if a.scrollOff+a.visibleRows < len(a.processes) {
		a.scrollOff++
	}
}

// PageUp moves the process window up a full page.
func (a *App) PageUp() {
	a.scrollOff -= a.visibleRows
	if a.scrollOff < 0 {
		a.scrollOff = 0
	}
}

// PageDown moves the process window down a full page.
func (a *App) PageDown() {
	a.scrollOff += a.visibleRows
	a.clampScroll()
}

func (a *App) sortProcesses() {
	switch a.sortMode {
	case SortRSS:
		sort.SliceStable(a.processes, func(i, j int) bool { return a.processes[i].RSSKB > a.processes[j].RSSKB })
	case SortShared:
		sort.SliceStable(a.processes, func(i, j int) bool { return a.processes[i].SharedKB > a.processes[j].SharedKB })
	case SortPID:
		sort.SliceStable(a.processes, func(i, j int) bool { return a.processes[i].PID < a.processes[j].PID })
	default:
		sort.SliceStable(a.processes, func(i, j int) bool { return a.processes[i].PSSKB > a.processes[j].PSSKB })
	}
}

func (a *App) clampScroll() {
	maxOff := len(a.processes) - a.visibleRows
	if maxOff < 0 {
		maxOff = 0
	}
	if a.scrollOff > maxOff {
		a.scrollOff = maxOff
	}
}

package ui

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/memtop/memtop/pkg/analyzer"
)

const (
	headerHeight = 6
	footerHeight = 2
)

// Render draws one full frame for the given terminal size. The frame is a
// plain string of ANSI-decorated lines; the caller repaints the alternate
// screen buffer with it.
func (a *App) Render(width, height int) string {
	a.visibleRows = height - headerHeight - footerHeight - 1
	if a.visibleRows < 1 {
		a.visibleRows = 1
	}
	a.clampScroll()

	var buf bytes.Buffer
	a.renderHeader(&buf)
	buf.WriteString("\n")

	switch a.viewMode {
	case ViewMemoryMap:
		a.renderMemoryMap(&buf, width)
	case ViewSharedMemory:
		a.renderSharedMemory(&buf)
	default:
		a.renderProcesses(&buf)
	}

	buf.WriteString("\n")
	a.renderHelp(&buf)
	return buf.String()
}

func (a *App) renderHeader(buf *bytes.Buffer) {
	sys := a.state.System
	fmt.Fprintf(buf, "%s%smemtop%s  %s%s%s\n", bold, amber, reset, slate, a.hostLine, reset)
	fmt.Fprintf(buf, "Updated: %s\n", a.state.CapturedAt.Format("15:04:05"))
	fmt.Fprintf(buf, "Mem:  %s / %s used (%.1f%%)   avail %s   cache %s   buffers %s\n",
		fmtKB(sys.UsedKB), fmtKB(sys.TotalKB), sys.UsedPercent,
		fmtKB(sys.AvailableKB), fmtKB(sys.CachedKB), fmtKB(sys.BuffersKB))
	fmt.Fprintf(buf, "Swap: %s / %s used (%.1f%%)\n",
		fmtKB(sys.SwapUsedKB), fmtKB(sys.SwapTotalKB), sys.SwapUsedPercent)
	fmt.Fprintf(buf, "Procs: %d   ΣPSS %s   ΣRSS %s   sharing efficiency %.1f%%\n",
		len(a.state.Processes), fmtKB(sys.TotalProcessPSSKB), fmtKB(sys.TotalProcessRSSKB),
		a.state.SharedMemory.SharingEfficiency)
	if len(a.state.NumaNodes) > 0 {
		parts := make([]string, 0, len(a.state.NumaNodes))
		for _, node := range a.state.NumaNodes {
			parts = append(parts, fmt.Sprintf("node%d %s/%s",
				node.NodeID, fmtKB(node.MemUsedKB), fmtKB(node.MemTotalKB)))
		}
		fmt.Fprintf(buf, "NUMA: %s\n", strings.Join(parts, "  "))
	} else {
		fmt.Fprintf(buf, "NUMA: single node\n")
	}
}

func (a *App) renderProcesses(buf *bytes.Buffer) {
	if len(a.processes) == 0 {
		fmt.Fprintln(buf, "No processes readable (run as root to see all of them)")
		return
	}

	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tNAME\tPSS\tRSS\tSHARED\tPRIVATE\tSWAP\tΔPSS")
	end := a.scrollOff + a.visibleRows
	if end > len(a.processes) {
		end = len(a.processes)
	}
	for _, proc := range a.processes[a.scrollOff:end] {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			proc.PID, proc.Name,
			fmtKB(proc.PSSKB), fmtKB(proc.RSSKB),
			fmtKB(proc.SharedKB), fmtKB(proc.PrivateKB),
			fmtKB(proc.SwapKB), fmtDelta(proc.PSSDeltaKB))
	}
	tw.Flush()
}

func (a *App) renderMemoryMap(buf *bytes.Buffer, width int) {
	m := a.state.MemoryMap
	total := a.state.System.TotalKB

	barWidth := width - 40
	if barWidth < 10 {
		barWidth = 10
	}

	rows := []struct {
		label string
		kb    uint64
	}{
		{"Process private", m.ProcessPrivateKB},
		{"Cache", m.CacheKB},
		{"Buffers", m.BuffersKB},
		{"Free", m.FreeKB},
		{"Slab", m.SlabKB},
		{"Page tables", m.PageTablesKB},
		{"Kernel (residual)", m.KernelKB},
	}
	for _, row := range rows {
		pct := 0.0
		if total > 0 {
			pct = float64(row.kb) / float64(total) * 100
		}
		fmt.Fprintf(buf, "%-18s %9s %5.1f%%  %s\n", row.label, fmtKB(row.kb), pct, bar(pct, barWidth))
	}
	fmt.Fprintf(buf, "\n%-18s %9s        (overlaps cache; not part of the sum)\n",
		"Process shared", fmtKB(m.ProcessSharedKB))
	fmt.Fprintf(buf, "%-18s %9s\n", "Total", fmtKB(total))
}

func (a *App) renderSharedMemory(buf *bytes.Buffer) {
	shared := a.state.SharedMemory
	fmt.Fprintf(buf, "Shared total: %s   clean %s   dirty %s\n",
		fmtKB(shared.TotalSharedKB), fmtKB(shared.TotalSharedCleanKB), fmtKB(shared.TotalSharedDirtyKB))
	fmt.Fprintf(buf, "Sharing efficiency: %.1f%% of summed RSS is reclaimed by proportional accounting\n\n", shared.SharingEfficiency)

	sharers := append([]analyzer.ProcessStats(nil), a.state.Processes...)
	sort.SliceStable(sharers, func(i, j int) bool { return sharers[i].SharedKB > sharers[j].SharedKB })
	limit := a.visibleRows - 3
	if limit < 1 {
		limit = 1
	}
	if len(sharers) > limit {
		sharers = sharers[:limit]
	}

	fmt.Fprintln(buf, "Top sharers:")
	tw := tabwriter.NewWriter(buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tNAME\tSHARED\tPSS\tRSS")
	for _, proc := range sharers {
		if proc.SharedKB == 0 {
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			proc.PID, proc.Name, fmtKB(proc.SharedKB), fmtKB(proc.PSSKB), fmtKB(proc.RSSKB))
	}
	tw.Flush()
}

func (a *App) renderHelp(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "%s[q] quit  [n] sort: %s  [v] view: %s  [↑/↓ PgUp/PgDn] scroll%s\n",
		dim, a.sortMode, a.viewMode, reset)
}

// fmtKB renders a kilobyte count with a unit suffix sized to the value.
func fmtKB(kb uint64) string {
	switch {
	case kb >= 1024*1024:
		return fmt.Sprintf("%.2fG", float64(kb)/(1024*1024))
	case kb >= 1024:
		return fmt.Sprintf("%.1fM", float64(kb)/1024)
	default:
		return fmt.Sprintf("%dK", kb)
	}
}

// fmtDelta renders a signed kilobyte delta with an explicit sign.
func fmtDelta(kb int64) string {
	if kb == 0 {
		return "0"
	}
	if kb > 0 {
		return "+" + fmtKB(uint64(kb))
	}
	return "-" + fmtKB(uint64(-kb))
}

func bar(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat(" ", width-filled) + "]"
}

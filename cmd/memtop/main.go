//go:build linux

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/memtop/memtop/pkg/analyzer"
	"github.com/memtop/memtop/pkg/collector"
	"github.com/memtop/memtop/pkg/config"
	"github.com/memtop/memtop/pkg/ui"
)

// Build info
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// A transient meminfo read failure is retried at the next tick; only a
// persistent one terminates the run.
const maxConsecutiveFailures = 3

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	interval := flag.Duration("interval", 0, "refresh interval, e.g. 1s or 500ms (overrides config)")
	sortFlag := flag.String("sort", "", "initial sort mode: pss, rss, shared, pid (overrides config)")
	viewFlag := flag.String("view", "", "initial view: processes, map, shared (overrides config)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Print(ui.Banner())
		fmt.Printf("memtop %s (%s) built on %s\n", version, commit, date)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading configuration: %v", err)
	}
	if *interval > 0 {
		cfg.Interval = *interval
	}
	if *sortFlag != "" {
		cfg.Sort = *sortFlag
	}
	if *viewFlag != "" {
		cfg.View = *viewFlag
	}

	hostLine, err := preflight()
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coll := collector.New(cfg.ProcPath, cfg.NodePath)
	app := ui.NewApp(hostLine, ui.SortModeFrom(cfg.Sort), ui.ViewModeFrom(cfg.View))

	fmt.Print(ui.Banner())
	cleanupTerminal := enableSingleView()
	runErr := run(ctx, cfg, coll, analyzer.New(), app)
	cleanupTerminal()

	if runErr != nil {
		log.Fatalf("memtop: %v", runErr)
	}
}

// run drives the refresh loop: one collect+analyze cycle per tick, repaints
// on every cycle and keystroke. Cycles are strictly sequential; a new one
// starts only after the previous completed.
func run(ctx context.Context, cfg *config.Config, coll *collector.Collector, an *analyzer.Analyzer, app *ui.App) error {
	keys := readKeys(ctx)

	failures := 0
	cycle := func() {
		snapshot, err := coll.Collect()
		if err != nil {
			failures++
			log.Printf("collection failed (%d/%d): %v", failures, maxConsecutiveFailures, err)
			return
		}
		failures = 0
		app.Update(an.Analyze(snapshot))
		paint(app)
	}

	cycle()

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		if failures >= maxConsecutiveFailures {
			return fmt.Errorf("giving up after %d consecutive collection failures", failures)
		}
		select {
		case <-ctx.Done():
			return nil
		case key := <-keys:
			switch key {
			case keyQuit:
				return nil
			case keySortNext:
				app.NextSort()
			case keyViewNext:
				app.ToggleView()
			case keyUp:
				app.ScrollUp()
			case keyDown:
				app.ScrollDown()
			case keyPageUp:
				app.PageUp()
			case keyPageDown:
				app.PageDown()
			}
			paint(app)
		case <-ticker.C:
			cycle()
		}
	}
}

// paint redraws the whole frame sized to the current terminal.
func paint(app *ui.App) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		width, height = 80, 24
	}
	clearScreen()
	fmt.Print(app.Render(width, height))
}

func clearScreen() {
	fmt.Print("\033[H\033[2J")
}

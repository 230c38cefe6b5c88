// Package presentation implements the Presentation Loop of spec §4.7: a
// single-threaded cooperative terminal UI that drains the pipeline's event
// channel, advances the fuzzy index by one tick, renders one frame, and
// polls input, all within a bounded cadence.
//
// Translated from the original's ratatui retained-buffer widget model to
// tcell's direct SetContent cell model; tab layout, health-grid banding,
// and the quit-without-join cancellation semantics are grounded on the
// original TUI's app.rs and widgets/tabs/*.rs.
package presentation

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/ntfsview/ntfsview/internal/fuzzyindex"
	"github.com/ntfsview/ntfsview/internal/log"
	"github.com/ntfsview/ntfsview/internal/pipeline"
)

const (
	idleFrameInterval  = 10 * time.Millisecond
	quitFrameInterval  = time.Millisecond
	quitAnimationTicks = 12

	defaultDisplayInterval = time.Second
	fuzzyTickBudget        = 15 * time.Millisecond
)

// Config wires the loop to its data sources. Cancel, if non-nil, is
// invoked on quit so the pipeline workers' ctx-gated sends unblock and
// each worker terminates without the loop waiting on them — the Go
// analogue of "drop the worker-pool handle without joining."
type Config struct {
	DriveCount      int
	Events          <-chan pipeline.Event
	Index           *fuzzyindex.Index
	Cancel          context.CancelFunc
	DisplayInterval time.Duration
}

type app struct {
	drives      []*driveState
	begin       time.Time
	selectedTab tab

	healthGridSelected int

	searchQuery        string
	searchResults      []fuzzyindex.Match
	searchMatchedCount int
	searchScroll       int

	errEntries     []errorEntry
	errGrouped     bool
	errSelected    int
	errScroll      int
	groupedErrors  []errorGroup
	groupedDirty   bool

	quitting  bool
	quitTicks int

	index             *fuzzyindex.Index
	displayInterval   time.Duration
	lastAppliedQuery  string
	queryEverApplied  bool
}

func newApp(cfg Config) *app {
	drives := make([]*driveState, cfg.DriveCount)
	for i := range drives {
		drives[i] = &driveState{fileIndex: i}
	}
	interval := cfg.DisplayInterval
	if interval <= 0 {
		interval = defaultDisplayInterval
	}
	return &app{
		drives:          drives,
		begin:           time.Now(),
		errGrouped:      true,
		index:           cfg.Index,
		displayInterval: interval,
	}
}

// Run creates and initializes a terminal screen, then drives the
// cooperative loop until the user quits or ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.Clear()
	screen.EnableMouse()

	a := newApp(cfg)
	return a.loop(ctx, screen, cfg.Events, cfg.Cancel)
}

func (a *app) loop(ctx context.Context, screen tcell.Screen, events <-chan pipeline.Event, cancel context.CancelFunc) error {
	tcellEvents := make(chan tcell.Event)
	quitPoll := make(chan struct{})
	screen.ChannelEvents(tcellEvents, quitPoll)
	defer close(quitPoll)

	ticker := time.NewTicker(idleFrameInterval)
	defer ticker.Stop()

	searchTicker := time.NewTicker(a.displayInterval)
	defer searchTicker.Stop()

	for {
		if !a.quitting {
			a.drainEvents(events)
			if a.index != nil {
				a.index.Tick(fuzzyTickBudget)
			}
		}
		a.refreshSearchResults()
		a.render(screen)

		if a.quitting {
			a.quitTicks++
			if a.quitTicks >= quitAnimationTicks {
				if cancel != nil {
					cancel()
				}
				return nil
			}
		}

		select {
		case ev := <-tcellEvents:
			if key, ok := ev.(*tcell.EventKey); ok {
				a.onKey(key, cancel)
			} else if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
		case <-searchTicker.C:
			a.refreshSearchResults()
		case <-ticker.C:
		case <-ctx.Done():
			if cancel != nil {
				cancel()
			}
			return ctx.Err()
		}

		if a.quitting {
			ticker.Reset(quitFrameInterval)
		}
	}
}

// onKey handles the global q/Esc quit shortcut before delegating to
// tab-level handling, matching app.rs's ordering.
func (a *app) onKey(ev *tcell.EventKey, cancel context.CancelFunc) {
	if ev.Key() == tcell.KeyEscape || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
		if !a.quitting {
			log.Debugf("presentation", "quit requested, starting exit animation")
		}
		a.quitting = true
		return
	}
	if a.quitting {
		return
	}
	a.handleKey(ev)
}

// drainEvents applies every event currently buffered on the channel
// without blocking, the "drain the event channel" step of one loop
// iteration.
func (a *app) drainEvents(events <-chan pipeline.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			a.applyEvent(ev)
		default:
			return
		}
	}
}

func (a *app) refreshSearchResults() {
	if a.index == nil {
		return
	}
	if !a.queryEverApplied || a.searchQuery != a.lastAppliedQuery {
		a.index.ReparsePattern(a.searchQuery)
		a.lastAppliedQuery = a.searchQuery
		a.queryEverApplied = true
	}
	count, items := a.index.Snapshot(0, a.searchMatchedCountCap())
	a.searchMatchedCount = count
	a.searchResults = items
}

func (a *app) searchMatchedCountCap() int {
	return a.searchScroll + 512
}

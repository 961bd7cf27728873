// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/timescrub/app.go
// Summary: Event loop and wiring between the list pane and the scrubber.
// Single-threaded mutation: all widget state changes happen inside this
// loop; the only other goroutines just feed events into it.

package main

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/timeslices/timescrub/catalog"
	"github.com/timeslices/timescrub/config"
	"github.com/timeslices/timescrub/listpane"
	"github.com/timeslices/timescrub/scrub"
	"github.com/timeslices/timescrub/scrub/core"
	"github.com/timeslices/timescrub/scrub/gesture"
	"github.com/timeslices/timescrub/scrub/index"
	"github.com/timeslices/timescrub/theme"
)

const (
	frameInterval  = 16 * time.Millisecond
	resizeDebounce = 200 * time.Millisecond
)

// App owns the terminal, the surface, and the two widgets.
type App struct {
	cfg     config.Config
	screen  tcell.Screen
	surface *core.Surface

	list     *listpane.List
	scrubber *scrub.Scrubber

	slices    []catalog.Slice
	threads   []string
	threadIdx int // -1 = no filter

	watcher *catalog.Watcher

	refresh  chan struct{}
	rebuildc chan struct{}
	quit     chan struct{}
}

// NewApp initializes the screen and builds the widget tree.
func NewApp(cfg config.Config, slices []catalog.Slice) (*App, error) {
	theme.Select(cfg.Theme)

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	a := &App{
		cfg:       cfg,
		screen:    screen,
		slices:    slices,
		threads:   catalog.Threads(slices),
		threadIdx: -1,
		refresh:   make(chan struct{}, 1),
		rebuildc:  make(chan struct{}, 1),
		quit:      make(chan struct{}),
	}

	tm := theme.Get()
	a.surface = core.NewSurface(tm.Style("text.primary", "bg.surface"))
	a.surface.SetRefreshNotifier(a.refresh)

	w, h := screen.Size()
	a.buildWidgets(w, h)
	a.surface.Resize(w, h)

	if watcher, err := catalog.Watch(cfg.SlicesPath, catalog.DefaultDebounce, a.notifyFeedChange); err != nil {
		log.Printf("App: feed watch disabled: %v", err)
	} else {
		a.watcher = watcher
	}
	return a, nil
}

func (a *App) buildWidgets(w, h int) {
	tm := theme.Get()

	scrubW := 1
	if a.cfg.ShowLabels {
		scrubW = 8
	}
	listW := w - scrubW - 1
	if listW < 1 {
		listW = 1
	}

	a.list = listpane.NewList(0, 0, listW, h)
	a.list.Style = tm.Style("text.primary", "bg.surface")
	a.list.YearStyle = tm.Style("list.year", "bg.surface").Bold(true)
	a.list.TitleStyle = tm.Style("text.primary", "bg.surface")
	a.list.TeaserStyle = tm.Style("text.muted", "bg.surface")
	a.list.ActiveStyle = tm.Style("list.active", "bg.surface").Bold(true)
	a.list.SetIndicatorConfig(listpane.DefaultIndicatorConfig(tm.Style("text.muted", "bg.surface")))

	var haptics scrub.Haptics = scrub.NopHaptics{}
	if a.cfg.Haptics {
		haptics = scrub.ScreenHaptics{Screen: a.screen}
	}
	a.scrubber = scrub.New(a.list, scrub.Options{
		Strategy:        a.cfg.StrategyValue(),
		Interpolate:     a.cfg.Interpolate,
		ShowLabels:      a.cfg.ShowLabels,
		ReferenceOffset: -1, // viewport center
		Gesture: gesture.Config{
			Sensitivity: a.cfg.Sensitivity,
		},
		Haptics:        haptics,
		OnActivate:     a.onActivate,
		TrackStyle:     tm.Style("scrubber.track", "bg.surface"),
		TickStyle:      tm.Style("scrubber.tick", "bg.surface"),
		IndicatorStyle: tm.Style("scrubber.indicator", "bg.surface").Bold(true),
		LabelStyle:     tm.Style("scrubber.label", "bg.surface"),
	})
	a.scrubber.SetPosition(w-scrubW, 0)
	a.scrubber.Resize(scrubW, h)

	a.list.SetOnScroll(a.scrubber.SyncScroll)

	a.surface.AddWidget(a.list)
	a.surface.AddWidget(a.scrubber) // on top: hit-tests first
	a.surface.Focus(a.list)

	a.rebuild()
}

// onActivate is the widget's "entry activated" output: the host owns the
// highlight; the snap animation has already aligned the scroll position.
func (a *App) onActivate(e index.Entry) {
	a.list.SetActive(e.ID)
	log.Printf("App: activated entry %s (%d)", e.ID, e.TimeValue)
}

// rebuild feeds the widget a fresh entry view and filter predicate.
func (a *App) rebuild() {
	items := make([]listpane.Item, 0, len(a.slices))
	entries := make([]index.Entry, 0, len(a.slices))
	for _, s := range a.slices {
		items = append(items, listpane.Item{ID: s.ID, Year: s.Year, Title: s.Title, Teaser: s.Teaser})
		entries = append(entries, index.Entry{
			ID:        s.ID,
			TimeValue: s.Year,
			Anchor:    a.list.Anchor(s.ID),
		})
	}
	a.list.SetItems(items)
	a.scrubber.Rebuild(entries, a.keepPredicate())
}

// keepPredicate returns the active-thread filter, or nil for "all".
func (a *App) keepPredicate() func(index.Entry) bool {
	if a.threadIdx < 0 || a.threadIdx >= len(a.threads) {
		return nil
	}
	keep := catalog.ThreadPredicate(a.slices, a.threads[a.threadIdx])
	return func(e index.Entry) bool {
		return keep(e.ID)
	}
}

// notifyFeedChange runs on the watcher goroutine; hop to the event loop.
func (a *App) notifyFeedChange() {
	select {
	case a.rebuildc <- struct{}{}:
	default:
	}
}

// reloadFeed re-reads the slices file after the watcher fired.
func (a *App) reloadFeed() {
	slices, err := catalog.LoadFile(a.cfg.SlicesPath)
	if err != nil {
		log.Printf("App: feed reload failed, keeping previous data: %v", err)
		return
	}
	a.slices = slices
	a.threads = catalog.Threads(slices)
	if a.threadIdx >= len(a.threads) {
		a.threadIdx = -1
	}
	a.rebuild()
	log.Printf("App: reloaded %d slices", len(slices))
}

// Run drives the event loop until quit.
func (a *App) Run() error {
	defer a.screen.Fini()
	if a.watcher != nil {
		defer a.watcher.Close()
	}

	events := make(chan tcell.Event, 10)
	go func() {
		for {
			select {
			case <-a.quit:
				return
			default:
				events <- a.screen.PollEvent()
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	var resizeTimer *time.Timer
	var resizeC <-chan time.Time
	needsDraw := true

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				// Trailing debounce; a new resize supersedes the
				// pending rebuild (last write wins).
				if resizeTimer == nil {
					resizeTimer = time.NewTimer(resizeDebounce)
				} else {
					if !resizeTimer.Stop() {
						select {
						case <-resizeTimer.C:
						default:
						}
					}
					resizeTimer.Reset(resizeDebounce)
				}
				resizeC = resizeTimer.C
			case *tcell.EventKey:
				if a.handleKey(ev) {
					close(a.quit)
					return nil
				}
			case *tcell.EventMouse:
				a.surface.HandleMouse(ev)
			}
		case <-resizeC:
			resizeC = nil
			w, h := a.screen.Size()
			a.layout(w, h)
		case <-a.rebuildc:
			a.reloadFeed()
		case <-a.refresh:
			needsDraw = true
		case <-ticker.C:
			if a.scrubber.NeedsFrame() {
				a.scrubber.Step(time.Now())
			}
			if needsDraw {
				a.draw()
				needsDraw = false
			}
		}
	}
}

// layout repositions widgets for a new terminal size and rebuilds the
// widget's geometry-dependent state.
func (a *App) layout(w, h int) {
	scrubW := 1
	if a.cfg.ShowLabels {
		scrubW = 8
	}
	listW := w - scrubW - 1
	if listW < 1 {
		listW = 1
	}
	a.list.SetPosition(0, 0)
	a.list.Resize(listW, h)
	a.scrubber.SetPosition(w-scrubW, 0)
	a.scrubber.Resize(scrubW, h)
	a.surface.Resize(w, h)
	a.rebuild()
	log.Printf("App: resized to %dx%d", w, h)
}

// handleKey processes global keys; returns true to quit.
func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch {
	case ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
		return true
	case ev.Rune() == 't':
		a.cycleThread()
	case ev.Rune() == 's':
		a.toggleStrategy()
	case ev.Rune() == 'i':
		a.cfg.Interpolate = !a.cfg.Interpolate
		a.scrubber.Reconfigure(a.cfg.StrategyValue(), a.cfg.Interpolate)
	case ev.Rune() == 'v':
		if a.scrubber.Visible() {
			a.scrubber.Hide()
		} else {
			a.scrubber.Show()
		}
	default:
		a.surface.HandleKey(ev)
	}
	return false
}

// cycleThread steps through all / thread1 / thread2 / ... / all.
func (a *App) cycleThread() {
	if len(a.threads) == 0 {
		return
	}
	a.threadIdx++
	if a.threadIdx >= len(a.threads) {
		a.threadIdx = -1
	}
	a.rebuild()
	if a.threadIdx >= 0 {
		log.Printf("App: filtering by thread %q", a.threads[a.threadIdx])
	} else {
		log.Printf("App: filter cleared")
	}
}

// toggleStrategy switches the mapping strategy as a deliberate
// reconfiguration (the widget rebuilds its mapper).
func (a *App) toggleStrategy() {
	if a.cfg.Strategy == config.StrategyTime {
		a.cfg.Strategy = config.StrategyLayout
	} else {
		a.cfg.Strategy = config.StrategyTime
	}
	a.scrubber.Reconfigure(a.cfg.StrategyValue(), a.cfg.Interpolate)
	log.Printf("App: strategy now %s", a.cfg.StrategyValue())
}

// draw blits the composed surface to the terminal.
func (a *App) draw() {
	buf := a.surface.Render()
	for y, row := range buf {
		for x, cell := range row {
			a.screen.SetContent(x, y, cell.Ch, nil, cell.Style)
		}
	}
	a.screen.Show()
}

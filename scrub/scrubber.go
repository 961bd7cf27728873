// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrub/scrubber.go
// Summary: The timeline scrubber widget: a compact edge control kept in
// two-way sync with the host's scroll position over time-stamped entries.
//
// The widget owns its navigation state (mode, current entry, haptic
// bookkeeping) and nothing else: entry data and scrolling belong to the
// host and are reached through index.Anchor and gesture.ScrollPort.

package scrub

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/timeslices/timescrub/scrub/anim"
	"github.com/timeslices/timescrub/scrub/core"
	"github.com/timeslices/timescrub/scrub/gesture"
	"github.com/timeslices/timescrub/scrub/index"
	"github.com/timeslices/timescrub/scrub/position"
	"github.com/timeslices/timescrub/scrub/resolve"
)

// snapKey is the timeline key for the single snap animation.
const snapKey = "snap"

// DefaultSnapDuration is how long a release-snap takes to settle.
const DefaultSnapDuration = 250 * time.Millisecond

// Options configures a Scrubber at construction time.
type Options struct {
	// Strategy fixes the position mapping for the widget's lifetime;
	// changing it later is a deliberate reconfiguration via Reconfigure,
	// which rebuilds.
	Strategy position.Strategy
	// Interpolate blends the indicator between entries for sub-entry
	// motion instead of stepping from tick to tick.
	Interpolate bool
	// ShowLabels draws year labels next to ticks when the widget is wide
	// enough for a label gutter.
	ShowLabels bool
	// ReferenceOffset is the indicator's fixed row within the viewport.
	// Negative means viewport center.
	ReferenceOffset int
	// Gesture tunes the press/drag/tap thresholds.
	Gesture gesture.Config
	// SnapDuration overrides DefaultSnapDuration when positive.
	SnapDuration time.Duration
	// Haptics receives boundary-crossing pulses. Nil means none.
	Haptics Haptics
	// OnActivate fires when a snap or tap-jump settles on an entry. The
	// host performs any scroll-into-view highlight; the widget only
	// signals intent.
	OnActivate func(index.Entry)

	TrackStyle     tcell.Style
	TickStyle      tcell.Style
	IndicatorStyle tcell.Style
	LabelStyle     tcell.Style
}

// Scrubber is the edge control. It is a core.Widget; mount it on a Surface
// above the list pane so it hit-tests first.
type Scrubber struct {
	core.BaseWidget
	opts Options
	port gesture.ScrollPort
	ctrl *gesture.Controller
	tl   *anim.Timeline

	view   []index.Entry
	mapper *position.Mapper

	current    resolve.Current
	hasCurrent bool

	// lastAnnounced detects entry-boundary crossings for haptics.
	// Comparison is by ID, never by value. Reset on rebuild.
	lastAnnounced    string
	hasLastAnnounced bool

	snapTarget index.Entry
	snapActive bool

	pendingSync bool
	destroyed   bool

	inv   func(core.Rect)
	clock func() time.Time
}

// New creates a scrubber over the host's scroll port. Call Rebuild before
// first draw; until then the widget is inert.
func New(port gesture.ScrollPort, opts Options) *Scrubber {
	if opts.SnapDuration <= 0 {
		opts.SnapDuration = DefaultSnapDuration
	}
	if opts.Haptics == nil {
		opts.Haptics = NopHaptics{}
	}
	s := &Scrubber{
		opts:  opts,
		port:  port,
		ctrl:  gesture.NewController(port, opts.Gesture),
		tl:    anim.NewTimeline(0),
		clock: time.Now,
	}
	s.SetFocusable(true)
	return s
}

// SetInvalidator installs the dirty-region callback.
func (s *Scrubber) SetInvalidator(fn func(core.Rect)) { s.inv = fn }

// SetClock replaces the time source. Tests drive the snap animation with it.
func (s *Scrubber) SetClock(fn func() time.Time) { s.clock = fn }

func (s *Scrubber) invalidate() {
	if s.inv != nil {
		s.inv(s.Rect)
	}
}

// Mode exposes the gesture state (Idle, Dragging, Snapping).
func (s *Scrubber) Mode() gesture.Mode { return s.ctrl.Mode() }

// Current returns the resolver's latest output. ok is false while the view
// is empty or nothing has geometry yet.
func (s *Scrubber) Current() (resolve.Current, bool) {
	return s.current, s.hasCurrent
}

// View returns the built, ordered entry view.
func (s *Scrubber) View() []index.Entry { return s.view }

// Rebuild recomputes the filterable view and the position mapper from
// scratch. Navigation state is discarded: a snap in flight is dropped, the
// mode returns to Idle, and haptic bookkeeping resets so the first crossing
// after a rebuild announces again. Rebuilding twice with identical input
// yields identical state.
func (s *Scrubber) Rebuild(all []index.Entry, keep func(index.Entry) bool) {
	if s.destroyed {
		return
	}
	s.view = index.Build(all, keep)
	s.rebuildMapper()

	s.snapActive = false
	s.tl.Reset(snapKey)
	s.ctrl.Cancel()
	s.ctrl.Settle()

	s.hasLastAnnounced = false
	s.lastAnnounced = ""
	s.pendingSync = false

	s.resolveCurrent(false)
	s.invalidate()
}

// Reconfigure changes strategy and/or interpolation as a deliberate
// reconfiguration: the mapper is rebuilt, never silently mixed mid-frame.
func (s *Scrubber) Reconfigure(strategy position.Strategy, interpolate bool) {
	s.opts.Strategy = strategy
	s.opts.Interpolate = interpolate
	s.rebuildMapper()
	s.resolveCurrent(false)
	s.invalidate()
}

func (s *Scrubber) rebuildMapper() {
	s.mapper = position.NewMapper(s.view, s.opts.Strategy, s.Rect.H, s.port.ContentHeight())
	s.ctrl.SetTravel(s.Rect.H)
}

// Resize updates the control's travel range and remaps ticks.
func (s *Scrubber) Resize(w, h int) {
	s.BaseWidget.Resize(w, h)
	if s.mapper != nil {
		s.rebuildMapper()
		s.resolveCurrent(false)
	}
}

// Show makes the widget visible again without touching its internal state.
func (s *Scrubber) Show() {
	s.SetVisible(true)
	s.invalidate()
}

// Hide suppresses drawing and input but keeps internal state, so the host
// can toggle the widget while an alternate view is active.
func (s *Scrubber) Hide() {
	s.SetVisible(false)
	s.invalidate()
}

// Destroy drops the view and stops reacting to input. The widget may be
// removed from its surface afterwards.
func (s *Scrubber) Destroy() {
	s.destroyed = true
	s.view = nil
	s.mapper = nil
	s.hasCurrent = false
	s.snapActive = false
	s.tl.Clear()
	s.invalidate()
}

// referencePoint is the indicator's fixed location in content coordinates.
func (s *Scrubber) referencePoint() int {
	off := s.opts.ReferenceOffset
	if off < 0 || off >= s.port.ViewportHeight() {
		off = s.port.ViewportHeight() / 2
	}
	return s.port.Offset() + off
}

// SyncScroll notes an ambient scroll. The widget mirrors scroll state, it
// never drives it from here, and it stays inert during an active gesture so
// the two update sources cannot fight. Work is coalesced into the next
// Step, at most once per frame.
func (s *Scrubber) SyncScroll() {
	if s.destroyed || s.ctrl.Mode() != gesture.Idle {
		return
	}
	s.pendingSync = true
}

// Step advances one animation frame. The host loop calls it on its frame
// tick (and may skip it entirely while NeedsFrame is false).
func (s *Scrubber) Step(now time.Time) {
	if s.destroyed {
		return
	}
	if s.snapActive {
		s.port.SetOffset(int(s.tl.Get(snapKey, now) + 0.5))
		s.resolveCurrent(true)
		if !s.tl.IsAnimating(snapKey, now) {
			s.snapActive = false
			s.ctrl.Settle()
			if s.opts.OnActivate != nil {
				s.opts.OnActivate(s.snapTarget)
			}
		}
		s.invalidate()
		return
	}
	if s.pendingSync && s.ctrl.Mode() == gesture.Idle {
		s.pendingSync = false
		s.resolveCurrent(false)
		s.invalidate()
	}
}

// NeedsFrame reports whether Step has work pending.
func (s *Scrubber) NeedsFrame() bool {
	return s.snapActive || s.pendingSync
}

// resolveCurrent refreshes the current-entry output and announces boundary
// crossings. Pulsing only happens while a gesture is active (announce=true
// implies mode != Idle): passive scroll mirroring must not vibrate the
// device. That asymmetry is deliberate.
func (s *Scrubber) resolveCurrent(announce bool) {
	cur, ok := resolve.Resolve(s.view, s.referencePoint())
	s.current, s.hasCurrent = cur, ok
	if !ok {
		return
	}
	changed := !s.hasLastAnnounced || s.lastAnnounced != cur.Entry.ID
	s.lastAnnounced = cur.Entry.ID
	s.hasLastAnnounced = true
	if announce && changed {
		s.opts.Haptics.Pulse()
	}
}

// HandleMouse implements the gesture surface. The host's Surface keeps the
// pointer captured for the duration of a drag, so moves and the release
// arrive here even after the pointer leaves the strip.
func (s *Scrubber) HandleMouse(ev *tcell.EventMouse) bool {
	if s.destroyed || !s.Visible() || s.mapper == nil || len(s.view) == 0 {
		return false
	}
	x, y := ev.Position()
	pressed := ev.Buttons()&tcell.Button1 != 0
	pos := y - s.Rect.Y

	switch s.ctrl.Mode() {
	case gesture.Idle, gesture.Snapping:
		if pressed && s.HitTest(x, y) {
			// A press mid-snap discards the in-flight animation and
			// starts dragging from wherever the snap had reached.
			s.snapActive = false
			s.tl.Reset(snapKey)
			s.ctrl.Press(pos, s.clock())
			s.resolveCurrent(true)
			s.invalidate()
			return true
		}
		return false
	case gesture.Dragging:
		if pressed {
			s.ctrl.Move(clampInt(pos, 0, s.Rect.H-1))
			s.resolveCurrent(true)
			s.invalidate()
			return true
		}
		rel := s.ctrl.ReleaseAt(clampInt(pos, 0, s.Rect.H-1), s.clock())
		s.beginSnap(rel)
		return true
	}
	return false
}

// CancelGesture aborts an in-progress drag without snapping (touch-cancel /
// focus-loss path). The last applied scroll position is kept.
func (s *Scrubber) CancelGesture() {
	s.ctrl.Cancel()
	s.invalidate()
}

// beginSnap picks the landing entry and starts the settle animation.
// A tap jumps to the tick nearest the tapped cell; a drag snaps to the
// entry nearest the reference point.
func (s *Scrubber) beginSnap(rel gesture.Release) {
	var (
		target index.Entry
		ok     bool
	)
	if rel.Tap {
		target, ok = s.mapper.NearestEntry(float64(rel.Pos))
	} else if s.hasCurrent {
		target, ok = s.current.Entry, true
	}
	if !ok {
		// Nothing to land on; settle in place.
		s.ctrl.Settle()
		return
	}

	offset, placeable := s.snapOffsetFor(target)
	if !placeable {
		s.ctrl.Settle()
		return
	}

	s.opts.Haptics.Pulse()
	s.snapTarget = target
	s.snapActive = true
	now := s.clock()
	s.tl.Set(snapKey, float64(s.port.Offset()))
	s.tl.AnimateToWithEasing(snapKey, float64(offset), s.opts.SnapDuration, now, anim.EaseOutCubic)
	s.invalidate()
}

// snapOffsetFor computes the scroll offset that aligns the entry's anchor
// midpoint with the reference point, clamped to the scrollable range.
func (s *Scrubber) snapOffsetFor(e index.Entry) (int, bool) {
	if e.Anchor == nil {
		return 0, false
	}
	g, ok := e.Anchor.Geometry()
	if !ok {
		return 0, false
	}
	refInViewport := s.opts.ReferenceOffset
	if refInViewport < 0 || refInViewport >= s.port.ViewportHeight() {
		refInViewport = s.port.ViewportHeight() / 2
	}
	offset := g.Mid() - refInViewport
	maxOffset := s.port.ContentHeight() - s.port.ViewportHeight()
	if maxOffset < 0 {
		maxOffset = 0
	}
	return clampInt(offset, 0, maxOffset), true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrub/core/surface.go
// Summary: Surface owns a small widget list and composes it to a cell buffer.
// Routes key/mouse events, keeps mouse capture alive across a drag, and
// accumulates dirty regions between frames.

package core

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Surface manages a flat, add-ordered widget list (later entries draw on top).
// All event handling is expected to happen on the host's event loop goroutine;
// Invalidate alone is safe to call from elsewhere.
type Surface struct {
	mu       sync.Mutex
	W, H     int
	widgets  []Widget
	bgStyle  tcell.Style
	focused  Widget
	capture  Widget
	buf      [][]Cell
	dirty    []Rect
	notifier chan<- struct{}
}

// NewSurface creates an empty surface with the given background style.
func NewSurface(bg tcell.Style) *Surface {
	return &Surface{bgStyle: bg}
}

// SetRefreshNotifier installs a channel that receives a (non-blocking) signal
// whenever a region is invalidated. The host loop drains it to schedule draws.
func (s *Surface) SetRefreshNotifier(ch chan<- struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = ch
}

// AddWidget appends a widget. Later widgets draw on top and hit-test first.
func (s *Surface) AddWidget(w Widget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widgets = append(s.widgets, w)
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(s.Invalidate)
	}
	s.invalidateAllLocked()
}

// Resize updates the surface dimensions and forces a full redraw.
func (s *Surface) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s.W, s.H = w, h
	s.buf = nil
	s.invalidateAllLocked()
}

// Focus gives keyboard focus to w, blurring the previous holder.
func (s *Surface) Focus(w Widget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focusLocked(w)
}

func (s *Surface) focusLocked(w Widget) {
	if w == nil || !w.Focusable() || s.focused == w {
		return
	}
	if s.focused != nil {
		s.focused.Blur()
	}
	s.focused = w
	s.focused.Focus()
}

// HandleKey routes a key event to the focused widget, falling back to the
// remaining widgets in top-down order.
func (s *Surface) HandleKey(ev *tcell.EventKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.focused != nil && s.focused.HandleKey(ev) {
		s.invalidateAllLocked()
		return true
	}
	for i := len(s.widgets) - 1; i >= 0; i-- {
		w := s.widgets[i]
		if w == s.focused || !w.Visible() {
			continue
		}
		if w.HandleKey(ev) {
			s.invalidateAllLocked()
			return true
		}
	}
	return false
}

// HandleMouse routes mouse events. A press over a widget focuses it and
// captures the pointer; while captured, every event (including moves outside
// the widget's bounds) is forwarded to the captured widget until release.
// Capture is what keeps a scrubber drag tracking after the pointer leaves
// the strip.
func (s *Surface) HandleMouse(ev *tcell.EventMouse) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	x, y := ev.Position()
	buttons := ev.Buttons()
	wasDown := s.capture != nil
	nowDown := buttons&tcell.Button1 != 0

	// Press: focus + capture the topmost widget under the pointer.
	if !wasDown && nowDown {
		if w := s.topmostAtLocked(x, y); w != nil {
			s.focusLocked(w)
			s.capture = w
			if mw, ok := w.(MouseAware); ok {
				mw.HandleMouse(ev)
			}
			s.invalidateAllLocked()
			return true
		}
		return false
	}

	// Captured: forward everything, release on button up.
	if s.capture != nil {
		if mw, ok := s.capture.(MouseAware); ok {
			mw.HandleMouse(ev)
		}
		if wasDown && !nowDown {
			s.capture = nil
		}
		s.invalidateAllLocked()
		return true
	}

	// Wheel events go to the topmost widget under the pointer.
	if buttons&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0 {
		if w := s.topmostAtLocked(x, y); w != nil {
			if mw, ok := w.(MouseAware); ok && mw.HandleMouse(ev) {
				s.invalidateAllLocked()
				return true
			}
		}
	}
	return false
}

// Captured returns the widget currently holding mouse capture, if any.
func (s *Surface) Captured() Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capture
}

func (s *Surface) topmostAtLocked(x, y int) Widget {
	for i := len(s.widgets) - 1; i >= 0; i-- {
		w := s.widgets[i]
		if w.Visible() && w.HitTest(x, y) {
			return w
		}
	}
	return nil
}

// Invalidate marks a region for redraw. Safe to call from any goroutine.
func (s *Surface) Invalidate(r Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.Empty() {
		return
	}
	s.dirty = append(s.dirty, r)
	s.requestRefreshLocked()
}

// InvalidateAll marks the whole surface for redraw.
func (s *Surface) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidateAllLocked()
}

func (s *Surface) invalidateAllLocked() {
	s.dirty = append(s.dirty, Rect{W: s.W, H: s.H})
	s.requestRefreshLocked()
}

func (s *Surface) requestRefreshLocked() {
	if s.notifier == nil {
		return
	}
	select {
	case s.notifier <- struct{}{}:
	default:
	}
}

func (s *Surface) ensureBufferLocked() {
	if s.buf != nil && len(s.buf) == s.H && (s.H == 0 || len(s.buf[0]) == s.W) {
		return
	}
	s.buf = make([][]Cell, s.H)
	for y := range s.buf {
		row := make([]Cell, s.W)
		for x := range row {
			row[x] = Cell{Ch: ' ', Style: s.bgStyle}
		}
		s.buf[y] = row
	}
}

// Render redraws the union of pending dirty regions and returns the buffer.
// With no pending damage it returns the previous frame untouched.
func (s *Surface) Render() [][]Cell {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureBufferLocked()

	if len(s.dirty) == 0 {
		return s.buf
	}
	clip := Rect{}
	for _, r := range s.dirty {
		clip = clip.Union(r)
	}
	s.dirty = s.dirty[:0]
	clip = clip.Intersect(Rect{W: s.W, H: s.H})
	if clip.Empty() {
		return s.buf
	}

	p := NewPainter(s.buf, clip)
	p.Fill(clip, ' ', s.bgStyle)
	for _, w := range s.widgets {
		if !w.Visible() {
			continue
		}
		wx, wy := w.Position()
		ww, wh := w.Size()
		if (Rect{X: wx, Y: wy, W: ww, H: wh}).Overlaps(clip) {
			w.Draw(p)
		}
	}
	return s.buf
}

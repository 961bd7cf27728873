// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: listpane/state.go
// Summary: Immutable scroll state: offset clamped against content and
// viewport heights. All mutations return a new value.

package listpane

// State captures a vertical scroll position.
type State struct {
	Offset         int
	ContentHeight  int
	ViewportHeight int
}

// NewState creates a state at the top of the content.
func NewState(contentHeight, viewportHeight int) State {
	s := State{ContentHeight: contentHeight, ViewportHeight: viewportHeight}
	return s.clamped()
}

// MaxOffset is the largest valid scroll offset.
func (s State) MaxOffset() int {
	m := s.ContentHeight - s.ViewportHeight
	if m < 0 {
		return 0
	}
	return m
}

func (s State) clamped() State {
	if s.Offset < 0 {
		s.Offset = 0
	}
	if max := s.MaxOffset(); s.Offset > max {
		s.Offset = max
	}
	return s
}

// WithContentHeight returns the state adjusted for new content height.
func (s State) WithContentHeight(h int) State {
	s.ContentHeight = h
	return s.clamped()
}

// WithViewportHeight returns the state adjusted for a new viewport height.
func (s State) WithViewportHeight(h int) State {
	s.ViewportHeight = h
	return s.clamped()
}

// WithOffset returns the state scrolled to the given offset, clamped.
func (s State) WithOffset(offset int) State {
	s.Offset = offset
	return s.clamped()
}

// ScrollBy scrolls by delta rows (positive = down), clamped.
func (s State) ScrollBy(delta int) State {
	return s.WithOffset(s.Offset + delta)
}

// ScrollTo makes the given content row visible with minimal movement.
func (s State) ScrollTo(row int) State {
	if s.IsRowVisible(row) {
		return s
	}
	if row < s.Offset {
		return s.WithOffset(row)
	}
	return s.WithOffset(row - s.ViewportHeight + 1)
}

// ScrollToCentered centers the given content row in the viewport.
func (s State) ScrollToCentered(row int) State {
	return s.WithOffset(row - s.ViewportHeight/2)
}

// ScrollToTop scrolls to the start of the content.
func (s State) ScrollToTop() State {
	return s.WithOffset(0)
}

// ScrollToBottom scrolls to the end of the content.
func (s State) ScrollToBottom() State {
	return s.WithOffset(s.MaxOffset())
}

// IsRowVisible reports whether a content row is inside the viewport.
func (s State) IsRowVisible(row int) bool {
	return row >= s.Offset && row < s.Offset+s.ViewportHeight
}

// CanScroll reports whether the content exceeds the viewport.
func (s State) CanScroll() bool {
	return s.ContentHeight > s.ViewportHeight
}

// CanScrollUp reports whether content exists above the viewport.
func (s State) CanScrollUp() bool {
	return s.Offset > 0
}

// CanScrollDown reports whether content exists below the viewport.
func (s State) CanScrollDown() bool {
	return s.Offset < s.MaxOffset()
}

// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package listpane

import "testing"

func TestState_ClampsOffset(t *testing.T) {
	s := NewState(100, 10)

	if got := s.WithOffset(-5).Offset; got != 0 {
		t.Errorf("negative offset clamped to %d, want 0", got)
	}
	if got := s.WithOffset(95).Offset; got != 90 {
		t.Errorf("overshoot clamped to %d, want 90", got)
	}
	if got := s.WithOffset(42).Offset; got != 42 {
		t.Errorf("valid offset = %d, want 42", got)
	}
}

func TestState_ShortContentPinsToTop(t *testing.T) {
	s := NewState(5, 10)
	if s.MaxOffset() != 0 {
		t.Errorf("MaxOffset = %d, want 0", s.MaxOffset())
	}
	if got := s.ScrollBy(3).Offset; got != 0 {
		t.Errorf("short content scrolled to %d", got)
	}
	if s.CanScroll() {
		t.Error("short content reports scrollable")
	}
}

func TestState_ScrollByAccumulates(t *testing.T) {
	s := NewState(100, 10)
	s = s.ScrollBy(15).ScrollBy(15)
	if s.Offset != 30 {
		t.Errorf("offset = %d, want 30", s.Offset)
	}
	s = s.ScrollBy(-100)
	if s.Offset != 0 {
		t.Errorf("offset after large scroll up = %d, want 0", s.Offset)
	}
}

func TestState_ScrollToMinimalMovement(t *testing.T) {
	s := NewState(100, 10)

	// Already visible: no movement.
	if got := s.ScrollTo(5); got.Offset != 0 {
		t.Errorf("visible row moved offset to %d", got.Offset)
	}
	// Below the viewport: row becomes the last visible line.
	if got := s.ScrollTo(50); got.Offset != 41 {
		t.Errorf("scroll down to row 50: offset = %d, want 41", got.Offset)
	}
	// Above the viewport: row becomes the first visible line.
	s = s.WithOffset(60)
	if got := s.ScrollTo(50); got.Offset != 50 {
		t.Errorf("scroll up to row 50: offset = %d, want 50", got.Offset)
	}
}

func TestState_ScrollToCentered(t *testing.T) {
	s := NewState(100, 10)
	if got := s.ScrollToCentered(50).Offset; got != 45 {
		t.Errorf("centered offset = %d, want 45", got)
	}
	if got := s.ScrollToCentered(2).Offset; got != 0 {
		t.Errorf("centering near the top = %d, want 0", got)
	}
	if got := s.ScrollToCentered(99).Offset; got != 90 {
		t.Errorf("centering near the bottom = %d, want 90", got)
	}
}

func TestState_TopBottomAndDirectionFlags(t *testing.T) {
	s := NewState(100, 10)

	if s.CanScrollUp() {
		t.Error("at top but CanScrollUp")
	}
	if !s.CanScrollDown() {
		t.Error("at top with long content but not CanScrollDown")
	}

	s = s.ScrollToBottom()
	if s.Offset != 90 {
		t.Errorf("bottom offset = %d, want 90", s.Offset)
	}
	if !s.CanScrollUp() || s.CanScrollDown() {
		t.Error("direction flags wrong at bottom")
	}

	s = s.ScrollToTop()
	if s.Offset != 0 {
		t.Errorf("top offset = %d, want 0", s.Offset)
	}
}

func TestState_ResizeReclamps(t *testing.T) {
	s := NewState(100, 10).WithOffset(90)

	// Growing the viewport reduces MaxOffset; offset follows.
	s = s.WithViewportHeight(50)
	if s.Offset != 50 {
		t.Errorf("offset after viewport growth = %d, want 50", s.Offset)
	}

	// Shrinking the content reclamps too.
	s = s.WithContentHeight(40)
	if s.Offset != 0 {
		t.Errorf("offset after content shrink = %d, want 0", s.Offset)
	}
}

func TestState_IsRowVisible(t *testing.T) {
	s := NewState(100, 10).WithOffset(20)
	for _, row := range []int{20, 25, 29} {
		if !s.IsRowVisible(row) {
			t.Errorf("row %d should be visible", row)
		}
	}
	for _, row := range []int{19, 30} {
		if s.IsRowVisible(row) {
			t.Errorf("row %d should not be visible", row)
		}
	}
}

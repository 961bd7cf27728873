// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package listpane

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/timeslices/timescrub/scrub/core"
)

func testItems() []Item {
	return []Item{
		{ID: "a", Year: 762, Title: "Baghdad founded", Teaser: "A round city rises"},
		{ID: "b", Year: 1504, Title: "David unveiled", Teaser: "Florence gets its giant"},
		{ID: "c", Year: 1889, Title: "Eiffel Tower opens"},
		{ID: "d", Year: 1922, Title: "Tut's tomb found", Teaser: "Wonderful things"},
	}
}

func TestList_LayoutAssignsBlocks(t *testing.T) {
	l := NewList(0, 0, 30, 10)
	l.SetItems(testItems())

	// Blocks with a teaser take two rows, without one row; one separator
	// row between blocks, none after the last.
	wants := map[string]struct{ top, height int }{
		"a": {0, 2},
		"b": {3, 2},
		"c": {6, 1},
		"d": {8, 2},
	}
	for id, want := range wants {
		g, ok := l.Anchor(id).Geometry()
		if !ok {
			t.Fatalf("entry %q has no geometry", id)
		}
		if g.Top != want.top || g.Height != want.height {
			t.Errorf("entry %q geometry = (%d,%d), want (%d,%d)",
				id, g.Top, g.Height, want.top, want.height)
		}
	}
	if l.ContentHeight() != 10 {
		t.Errorf("content height = %d, want 10", l.ContentHeight())
	}
}

func TestList_AnchorsAreLive(t *testing.T) {
	l := NewList(0, 0, 30, 10)
	l.SetItems(testItems())
	anchor := l.Anchor("d")

	// Dropping the teaser on an earlier entry shifts everything below it;
	// the anchor must observe the new layout without being re-fetched.
	items := testItems()
	items[0].Teaser = ""
	l.SetItems(items)

	g, ok := anchor.Geometry()
	if !ok {
		t.Fatal("anchor lost geometry after relayout")
	}
	if g.Top != 7 {
		t.Errorf("anchor top after relayout = %d, want 7", g.Top)
	}

	// Removing the entry turns the same anchor off.
	l.SetItems(items[:2])
	if _, ok := anchor.Geometry(); ok {
		t.Error("anchor still reports geometry for a removed entry")
	}
}

func TestList_SetOffsetNotifiesOnScroll(t *testing.T) {
	l := NewList(0, 0, 30, 4)
	l.SetItems(testItems())

	var calls int
	l.SetOnScroll(func() { calls++ })

	l.SetOffset(3)
	if calls != 1 {
		t.Errorf("onScroll calls = %d, want 1", calls)
	}

	// Writing the same offset is not a scroll.
	l.SetOffset(3)
	if calls != 1 {
		t.Errorf("onScroll calls after no-op write = %d, want 1", calls)
	}

	// Clamped-to-same is also not a scroll.
	l.SetOffset(100)
	clamped := l.Offset()
	l.SetOffset(200)
	if l.Offset() != clamped {
		t.Errorf("offset moved past max: %d", l.Offset())
	}
	if calls != 2 {
		t.Errorf("onScroll calls = %d, want 2", calls)
	}
}

func TestList_ScrollToEntryCenters(t *testing.T) {
	l := NewList(0, 0, 30, 4)
	l.SetItems(testItems())

	// Entry d: top 8, height 2, mid 9; centering in a 4-row viewport puts
	// the offset at 7, clamped to MaxOffset 6.
	l.ScrollToEntry("d")
	if l.Offset() != 6 {
		t.Errorf("offset = %d, want 6", l.Offset())
	}

	l.ScrollToEntry("nope")
	if l.Offset() != 6 {
		t.Errorf("unknown entry moved offset to %d", l.Offset())
	}
}

func TestList_KeyScrolling(t *testing.T) {
	l := NewList(0, 0, 30, 4)
	l.SetItems(testItems()) // content 10, max offset 6

	key := func(k tcell.Key, mod tcell.ModMask) *tcell.EventKey {
		return tcell.NewEventKey(k, 0, mod)
	}

	if !l.HandleKey(key(tcell.KeyDown, tcell.ModNone)) {
		t.Fatal("down arrow not handled")
	}
	if l.Offset() != 1 {
		t.Errorf("offset after down = %d, want 1", l.Offset())
	}

	l.HandleKey(key(tcell.KeyPgDn, tcell.ModNone))
	if l.Offset() != 5 {
		t.Errorf("offset after page down = %d, want 5", l.Offset())
	}

	l.HandleKey(key(tcell.KeyEnd, tcell.ModCtrl))
	if l.Offset() != 6 {
		t.Errorf("offset after ctrl-end = %d, want 6", l.Offset())
	}

	l.HandleKey(key(tcell.KeyHome, tcell.ModCtrl))
	if l.Offset() != 0 {
		t.Errorf("offset after ctrl-home = %d, want 0", l.Offset())
	}

	// Plain Home without Ctrl is not a list key.
	if l.HandleKey(key(tcell.KeyHome, tcell.ModNone)) {
		t.Error("plain home should not be handled")
	}
}

func TestList_WheelScrolling(t *testing.T) {
	l := NewList(0, 0, 30, 4)
	l.SetItems(testItems())

	wheel := func(x, y int, b tcell.ButtonMask) *tcell.EventMouse {
		return tcell.NewEventMouse(x, y, b, tcell.ModNone)
	}

	if !l.HandleMouse(wheel(5, 2, tcell.WheelDown)) {
		t.Fatal("wheel inside bounds not handled")
	}
	if l.Offset() != 3 {
		t.Errorf("offset after wheel down = %d, want 3", l.Offset())
	}

	l.HandleMouse(wheel(5, 2, tcell.WheelUp))
	if l.Offset() != 0 {
		t.Errorf("offset after wheel up = %d, want 0", l.Offset())
	}

	if l.HandleMouse(wheel(50, 50, tcell.WheelDown)) {
		t.Error("wheel outside bounds handled")
	}
}

func TestList_DrawVisibleSlice(t *testing.T) {
	l := NewList(0, 0, 30, 4)
	l.SetItems(testItems())
	l.SetOffset(3) // viewport shows content rows 3..6: entry b and entry c's line

	buf := make([][]core.Cell, 4)
	for i := range buf {
		buf[i] = make([]core.Cell, 30)
	}
	l.Draw(core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 30, H: 4}))

	row := func(y int) string {
		out := make([]rune, 0, 30)
		for _, c := range buf[y] {
			if c.Ch == 0 {
				c.Ch = ' '
			}
			out = append(out, c.Ch)
		}
		return string(out)
	}

	if got := row(0); got[:4] != "1504" {
		t.Errorf("row 0 = %q, want year 1504 at the left edge", got)
	}
	if got := row(3); got[:4] != "1889" {
		t.Errorf("row 3 = %q, want year 1889 at the left edge", got)
	}

	// Scrolled both ways: overflow indicators at both corners of the
	// rightmost column.
	if buf[0][29].Ch != DefaultUpGlyph {
		t.Errorf("top-right = %q, want up indicator", buf[0][29].Ch)
	}
	if buf[3][29].Ch != DefaultDownGlyph {
		t.Errorf("bottom-right = %q, want down indicator", buf[3][29].Ch)
	}
}

func TestList_FormatYear(t *testing.T) {
	if got := formatYear(-776); got != "776 BC" {
		t.Errorf("formatYear(-776) = %q, want \"776 BC\"", got)
	}
	if got := formatYear(1969); got != "1969" {
		t.Errorf("formatYear(1969) = %q, want \"1969\"", got)
	}
}

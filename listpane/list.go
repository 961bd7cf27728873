// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: listpane/list.go
// Summary: Scrollable entry list: the "document" the scrubber navigates.
// Lays entries out as year/title/teaser blocks, exposes live per-entry
// anchors, and implements the scrubber's ScrollPort.

package listpane

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/timeslices/timescrub/scrub/core"
	"github.com/timeslices/timescrub/scrub/index"
)

// Item is one displayable entry.
type Item struct {
	ID     string
	Year   int
	Title  string
	Teaser string
}

// List renders items in chronological reading order and owns the scroll
// position. The scrubber reads and writes it only through the ScrollPort
// methods; the list notifies ambient scrolling through OnScroll.
type List struct {
	core.BaseWidget
	Style       tcell.Style
	YearStyle   tcell.Style
	TitleStyle  tcell.Style
	TeaserStyle tcell.Style
	ActiveStyle tcell.Style

	items    []Item
	blocks   map[string]index.Geometry
	order    []string
	state    State
	activeID string

	indicators IndicatorConfig

	inv      func(core.Rect)
	onScroll func()
}

// NewList creates an empty list pane.
func NewList(x, y, w, h int) *List {
	l := &List{blocks: make(map[string]index.Geometry)}
	l.SetPosition(x, y)
	l.BaseWidget.Resize(w, h)
	l.SetFocusable(true)
	l.state = NewState(0, h)
	l.indicators = DefaultIndicatorConfig(tcell.StyleDefault)
	return l
}

// SetInvalidator installs the dirty-region callback.
func (l *List) SetInvalidator(fn func(core.Rect)) { l.inv = fn }

// SetOnScroll installs the ambient-scroll notification hook.
func (l *List) SetOnScroll(fn func()) { l.onScroll = fn }

// SetIndicatorConfig overrides the overflow indicator appearance.
func (l *List) SetIndicatorConfig(cfg IndicatorConfig) { l.indicators = cfg }

func (l *List) invalidate() {
	if l.inv != nil {
		l.inv(l.Rect)
	}
}

// SetItems replaces the content and relayouts. The scroll offset is
// clamped, not preserved exactly; callers re-resolve what is current.
func (l *List) SetItems(items []Item) {
	l.items = items
	l.relayout()
	l.invalidate()
}

// Items returns the current content.
func (l *List) Items() []Item { return l.items }

// SetActive highlights the entry the host last activated.
func (l *List) SetActive(id string) {
	if l.activeID == id {
		return
	}
	l.activeID = id
	l.invalidate()
}

// relayout assigns each item a block of content rows:
// one year/title line, one teaser line when present, one separator row.
func (l *List) relayout() {
	l.blocks = make(map[string]index.Geometry, len(l.items))
	l.order = l.order[:0]
	top := 0
	for _, it := range l.items {
		h := 1
		if it.Teaser != "" {
			h = 2
		}
		l.blocks[it.ID] = index.Geometry{Top: top, Height: h}
		l.order = append(l.order, it.ID)
		top += h + 1
	}
	content := top
	if content > 0 {
		content-- // no separator after the last block
	}
	l.state = l.state.WithContentHeight(content).WithViewportHeight(l.Rect.H)
}

// Resize updates the viewport and relayouts for the new width.
func (l *List) Resize(w, h int) {
	l.BaseWidget.Resize(w, h)
	l.relayout()
}

// Anchor returns a live anchor for an entry: geometry follows relayouts
// because it is looked up at query time, not captured.
func (l *List) Anchor(id string) index.Anchor {
	return index.AnchorFunc(func() (index.Geometry, bool) {
		g, ok := l.blocks[id]
		return g, ok
	})
}

// ScrollPort implementation (the scrubber's write path).

func (l *List) Offset() int { return l.state.Offset }

func (l *List) SetOffset(offset int) {
	old := l.state.Offset
	l.state = l.state.WithOffset(offset)
	if l.state.Offset != old {
		l.invalidate()
		if l.onScroll != nil {
			l.onScroll()
		}
	}
}

func (l *List) ContentHeight() int  { return l.state.ContentHeight }
func (l *List) ViewportHeight() int { return l.state.ViewportHeight }

// State returns the scroll state value.
func (l *List) State() State { return l.state }

// ScrollBy scrolls by delta rows.
func (l *List) ScrollBy(delta int) {
	l.SetOffset(l.state.Offset + delta)
}

// ScrollToEntry centers an entry's block in the viewport.
func (l *List) ScrollToEntry(id string) {
	g, ok := l.blocks[id]
	if !ok {
		return
	}
	l.SetOffset(l.state.ScrollToCentered(g.Mid()).Offset)
}

// HandleKey scrolls with the usual keys.
func (l *List) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		l.ScrollBy(-1)
		return true
	case tcell.KeyDown:
		l.ScrollBy(1)
		return true
	case tcell.KeyPgUp:
		l.ScrollBy(-l.Rect.H)
		return true
	case tcell.KeyPgDn:
		l.ScrollBy(l.Rect.H)
		return true
	case tcell.KeyHome:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			l.SetOffset(0)
			return true
		}
	case tcell.KeyEnd:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			l.SetOffset(l.state.MaxOffset())
			return true
		}
	}
	return false
}

// HandleMouse scrolls on the wheel.
func (l *List) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if !l.HitTest(x, y) {
		return false
	}
	switch ev.Buttons() {
	case tcell.WheelUp:
		l.ScrollBy(-3)
		return true
	case tcell.WheelDown:
		l.ScrollBy(3)
		return true
	}
	return false
}

// Draw renders the visible slice of blocks plus overflow indicators.
func (l *List) Draw(p *core.Painter) {
	if !l.Visible() || l.Rect.Empty() {
		return
	}
	clipped := p.WithClip(l.Rect)
	clipped.Fill(l.Rect, ' ', l.Style)

	width := l.Rect.W - 1 // last column reserved for indicators
	for _, it := range l.items {
		g, ok := l.blocks[it.ID]
		if !ok {
			continue
		}
		y := l.Rect.Y + g.Top - l.state.Offset
		if y+g.Height <= l.Rect.Y || y >= l.Rect.Y+l.Rect.H {
			continue
		}
		titleStyle := l.TitleStyle
		if it.ID == l.activeID {
			titleStyle = l.ActiveStyle
		}
		year := formatYear(it.Year)
		clipped.DrawText(l.Rect.X, y, year, width, l.YearStyle)
		clipped.DrawText(l.Rect.X+len(year)+1, y, it.Title, width-len(year)-1, titleStyle)
		if it.Teaser != "" {
			clipped.DrawText(l.Rect.X+2, y+1, it.Teaser, width-2, l.TeaserStyle)
		}
	}

	DrawIndicators(clipped, l.Rect, l.state, l.indicators)
}

func formatYear(year int) string {
	if year < 0 {
		return strconv.Itoa(-year) + " BC"
	}
	return strconv.Itoa(year)
}

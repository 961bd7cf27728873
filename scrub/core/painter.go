// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrub/core/painter.go
// Summary: Clipped cell painter over a shared framebuffer.

package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one character cell of the composed frame.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Painter writes cells into a framebuffer, clipped to a region.
// Widgets never touch the buffer directly; all drawing goes through here.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

// NewPainter creates a painter over buf restricted to clip.
func NewPainter(buf [][]Cell, clip Rect) *Painter {
	return &Painter{buf: buf, clip: clip}
}

// WithClip returns a painter over the same buffer with a tighter clip.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: p.clip.Intersect(r)}
}

// Clip returns the painter's current clip region.
func (p *Painter) Clip() Rect {
	return p.clip
}

// SetCell writes a single cell if it falls inside the clip and the buffer.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	if y < 0 || y >= len(p.buf) {
		return
	}
	row := p.buf[y]
	if x < 0 || x >= len(row) {
		return
	}
	row[x] = Cell{Ch: ch, Style: style}
}

// Fill paints a rectangle with a single rune.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	area := p.clip.Intersect(r)
	for y := area.Y; y < area.Y+area.H; y++ {
		for x := area.X; x < area.X+area.W; x++ {
			p.SetCell(x, y, ch, style)
		}
	}
}

// DrawText writes text starting at (x, y), truncated to maxWidth display
// columns. Wide runes occupy their full width; the continuation cell is
// left as a space so the terminal driver does not tear glyphs.
func (p *Painter) DrawText(x, y int, text string, maxWidth int, style tcell.Style) {
	if maxWidth <= 0 {
		return
	}
	col := 0
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if col+w > maxWidth {
			break
		}
		p.SetCell(x+col, y, ch, style)
		for i := 1; i < w; i++ {
			p.SetCell(x+col+i, y, ' ', style)
		}
		col += w
	}
}

// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrub/render.go
// Summary: Draws the scrubber: track, tick marks, fixed indicator, labels.
// Pure function of navigation state and the position mapper's output.

package scrub

import (
	"strconv"

	"github.com/timeslices/timescrub/scrub/core"
)

// Glyphs for the control strip.
const (
	trackGlyph     = '┆'
	tickGlyph      = '╴'
	indicatorGlyph = '◆'
)

// Draw renders the control. An empty view degrades to drawing nothing at
// all: the widget is invisible and inert rather than an error.
func (s *Scrubber) Draw(p *core.Painter) {
	if !s.Visible() || s.destroyed || s.mapper == nil || len(s.view) == 0 {
		return
	}
	rect := s.Rect
	if rect.Empty() {
		return
	}
	clipped := p.WithClip(rect)

	// Track occupies the rightmost column; anything to its left is the
	// label gutter.
	trackX := rect.X + rect.W - 1
	for y := 0; y < rect.H; y++ {
		clipped.SetCell(trackX, rect.Y+y, trackGlyph, s.opts.TrackStyle)
	}

	// Ticks: one per entry with geometry this frame. Missing geometry
	// means fewer ticks this frame, never a failure.
	ticks := s.mapper.Ticks()
	gutter := rect.W - 1
	for _, t := range ticks {
		y := rect.Y + roundPos(t.Pos, rect.H)
		clipped.SetCell(trackX, y, tickGlyph, s.opts.TickStyle)
		if s.opts.ShowLabels && gutter > 0 {
			label := formatYear(t.Entry.TimeValue)
			x := trackX - len(label)
			if x < rect.X {
				x = rect.X
			}
			clipped.DrawText(x, y, label, gutter, s.opts.LabelStyle)
		}
	}

	// Fixed indicator. Hidden when the resolver has nothing to report.
	if pos, ok := s.indicatorPos(); ok {
		clipped.SetCell(trackX, rect.Y+roundPos(pos, rect.H), indicatorGlyph, s.opts.IndicatorStyle)
	}
}

// indicatorPos places the indicator in control space. With interpolation on
// it blends between the bracketing entries' tick positions; otherwise it
// sits exactly on the current entry's tick.
func (s *Scrubber) indicatorPos() (float64, bool) {
	if !s.hasCurrent {
		return 0, false
	}
	if !s.opts.Interpolate {
		return s.mapper.ToControlPosition(s.current.Entry)
	}
	before, okB := s.mapper.ToControlPosition(s.current.Before)
	after, okA := s.mapper.ToControlPosition(s.current.After)
	switch {
	case okB && okA:
		return before + s.current.Blend*(after-before), true
	case okB:
		return before, true
	case okA:
		return after, true
	default:
		return s.mapper.ToControlPosition(s.current.Entry)
	}
}

// roundPos converts a float control position to a cell row inside travel.
func roundPos(pos float64, travel int) int {
	y := int(pos + 0.5)
	if y < 0 {
		y = 0
	}
	if y > travel-1 {
		y = travel - 1
	}
	return y
}

// formatYear renders a time value; antiquity years get the BC suffix.
func formatYear(year int) string {
	if year < 0 {
		return strconv.Itoa(-year) + " BC"
	}
	return strconv.Itoa(year)
}

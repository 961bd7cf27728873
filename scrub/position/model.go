// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrub/position/model.go
// Summary: Pure mapping between entry time/layout space and control space.
// A Mapper commits to one strategy for its lifetime; switching strategy is a
// rebuild, never a per-frame decision.

package position

import (
	"math"

	"github.com/timeslices/timescrub/scrub/index"
)

// Strategy selects how entries are placed along the control's travel range.
type Strategy int

const (
	// ProportionalByTime spaces ticks by year: position is
	// (timeValue-min)/(max-min) of the travel range, so entries clustered
	// in the same decade visually crowd together.
	ProportionalByTime Strategy = iota
	// PositionalByLayout tracks each entry's actual on-screen offset via
	// its anchor, so tick spacing matches reading order regardless of
	// date gaps.
	PositionalByLayout
)

func (s Strategy) String() string {
	switch s {
	case ProportionalByTime:
		return "proportional-by-time"
	case PositionalByLayout:
		return "positional-by-layout"
	default:
		return "unknown"
	}
}

// Tick is one entry placed on the control.
type Tick struct {
	Entry index.Entry
	Pos   float64
}

// Mapper maps a fixed, ordered view of entries onto a control with the given
// travel (number of cells). contentHeight is only consulted by the layout
// strategy.
type Mapper struct {
	strategy      Strategy
	entries       []index.Entry
	travel        int
	contentHeight int
	minTime       int
	maxTime       int
}

// NewMapper builds a mapper for the ordered entries. travel is the control's
// length in cells; values below 1 are treated as 1.
func NewMapper(entries []index.Entry, strategy Strategy, travel, contentHeight int) *Mapper {
	if travel < 1 {
		travel = 1
	}
	m := &Mapper{
		strategy:      strategy,
		entries:       entries,
		travel:        travel,
		contentHeight: contentHeight,
	}
	if len(entries) > 0 {
		m.minTime = entries[0].TimeValue
		m.maxTime = entries[len(entries)-1].TimeValue
	}
	return m
}

// Strategy returns the mapping strategy this mapper was built with.
func (m *Mapper) Strategy() Strategy { return m.strategy }

// Travel returns the control's travel range in cells.
func (m *Mapper) Travel() int { return m.travel }

// span is the usable travel extent; a 1-cell control still maps everything
// to position 0.
func (m *Mapper) span() float64 {
	return float64(m.travel - 1)
}

// Center returns the control's center position, the fallback placement for
// zero-span views.
func (m *Mapper) Center() float64 {
	return m.span() / 2
}

// ToControlPosition maps an entry onto the control. The second return is
// false when the entry cannot be placed this frame (layout strategy with no
// geometry yet).
func (m *Mapper) ToControlPosition(e index.Entry) (float64, bool) {
	switch m.strategy {
	case PositionalByLayout:
		if e.Anchor == nil {
			return 0, false
		}
		g, ok := e.Anchor.Geometry()
		if !ok {
			return 0, false
		}
		if m.contentHeight <= 1 {
			return m.Center(), true
		}
		frac := float64(g.Mid()) / float64(m.contentHeight-1)
		return clamp(frac, 0, 1) * m.span(), true
	default: // ProportionalByTime
		if m.maxTime == m.minTime {
			return m.Center(), true
		}
		frac := float64(e.TimeValue-m.minTime) / float64(m.maxTime-m.minTime)
		return clamp(frac, 0, 1) * m.span(), true
	}
}

// TimeAt inverts a control position to an interpolated time value under the
// proportional strategy. For zero-span views it returns the shared time.
func (m *Mapper) TimeAt(pos float64) float64 {
	if m.maxTime == m.minTime || m.span() == 0 {
		return float64(m.minTime)
	}
	frac := clamp(pos/m.span(), 0, 1)
	return float64(m.minTime) + frac*float64(m.maxTime-m.minTime)
}

// Ticks returns every placeable entry with its control position, in view
// order. Entries without geometry (layout strategy) are skipped this frame.
func (m *Mapper) Ticks() []Tick {
	ticks := make([]Tick, 0, len(m.entries))
	for _, e := range m.entries {
		if pos, ok := m.ToControlPosition(e); ok {
			ticks = append(ticks, Tick{Entry: e, Pos: pos})
		}
	}
	return ticks
}

// NearestEntry is the inverse mapping: the entry whose control position is
// closest to pos. Ties break by nearest absolute time distance to the time
// pos represents, then by view order (earliest wins). Returns false for a
// view with no placeable entries.
func (m *Mapper) NearestEntry(pos float64) (index.Entry, bool) {
	const eps = 1e-9

	targetTime := m.TimeAt(pos)
	var (
		best     index.Entry
		bestDist float64
		bestTime float64
		found    bool
	)
	for _, e := range m.entries {
		p, ok := m.ToControlPosition(e)
		if !ok {
			continue
		}
		dist := math.Abs(p - pos)
		tdist := math.Abs(float64(e.TimeValue) - targetTime)
		if !found || dist < bestDist-eps ||
			(math.Abs(dist-bestDist) <= eps && tdist < bestTime-eps) {
			best, bestDist, bestTime, found = e, dist, tdist, true
		}
	}
	return best, found
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrub/resolve/resolver.go
// Summary: Determines which entry is "current" for a scroll reference point.

package resolve

import "github.com/timeslices/timescrub/scrub/index"

// Current describes the entry at (or nearest to) the reference point, plus
// the bracketing pair and a fractional blend for sub-entry indicator motion.
type Current struct {
	// Entry is the nearest entry: the one whose geometry straddles the
	// reference point, or failing that the one with the closest midpoint.
	Entry index.Entry
	// Before and After bracket the reference point. At the extremes both
	// equal Entry.
	Before index.Entry
	After  index.Entry
	// Blend is the fractional position between Before and After midpoints,
	// in [0,1]. 0 before the first entry, 1 past the last.
	Blend float64
	// BlendedTimeValue interpolates the bracketing TimeValues by Blend.
	BlendedTimeValue float64
}

// Resolve finds the current entry for a reference point given in content
// coordinates. Entries without geometry are skipped for this frame. Returns
// false for an empty (or entirely unmounted) view; callers hide the
// indicator rather than treating that as an error.
func Resolve(entries []index.Entry, referencePoint int) (Current, bool) {
	type placed struct {
		entry index.Entry
		geo   index.Geometry
	}
	mounted := make([]placed, 0, len(entries))
	for _, e := range entries {
		if e.Anchor == nil {
			continue
		}
		g, ok := e.Anchor.Geometry()
		if !ok {
			continue
		}
		mounted = append(mounted, placed{entry: e, geo: g})
	}
	if len(mounted) == 0 {
		return Current{}, false
	}

	// Nearest entry: straddling geometry wins outright, otherwise closest
	// midpoint; ties keep the earliest in view order.
	nearest := mounted[0]
	nearestDist := midDist(nearest.geo, referencePoint)
	for _, p := range mounted[1:] {
		if straddles(p.geo, referencePoint) && !straddles(nearest.geo, referencePoint) {
			nearest, nearestDist = p, midDist(p.geo, referencePoint)
			continue
		}
		if d := midDist(p.geo, referencePoint); d < nearestDist && !straddles(nearest.geo, referencePoint) {
			nearest, nearestDist = p, d
		}
	}

	// Bracketing pair by midpoint.
	var before, after *placed
	for i := range mounted {
		p := &mounted[i]
		if p.geo.Mid() <= referencePoint {
			before = p
		}
		if p.geo.Mid() >= referencePoint && after == nil {
			after = p
		}
	}

	cur := Current{Entry: nearest.entry}
	switch {
	case before == nil:
		// Reference point precedes the first entry: clamp.
		first := mounted[0]
		cur.Entry = first.entry
		cur.Before, cur.After = first.entry, first.entry
		cur.Blend = 0
		cur.BlendedTimeValue = float64(first.entry.TimeValue)
	case after == nil:
		// Past the last entry: clamp.
		last := mounted[len(mounted)-1]
		cur.Entry = last.entry
		cur.Before, cur.After = last.entry, last.entry
		cur.Blend = 1
		cur.BlendedTimeValue = float64(last.entry.TimeValue)
	default:
		cur.Before, cur.After = before.entry, after.entry
		span := after.geo.Mid() - before.geo.Mid()
		if span <= 0 {
			cur.Blend = 0
		} else {
			cur.Blend = float64(referencePoint-before.geo.Mid()) / float64(span)
		}
		cur.BlendedTimeValue = float64(before.entry.TimeValue) +
			cur.Blend*float64(after.entry.TimeValue-before.entry.TimeValue)
	}
	return cur, true
}

func straddles(g index.Geometry, ref int) bool {
	return ref >= g.Top && ref < g.Top+g.Height
}

func midDist(g index.Geometry, ref int) int {
	d := g.Mid() - ref
	if d < 0 {
		return -d
	}
	return d
}

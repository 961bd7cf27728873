// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrub/index/index.go
// Summary: Ordered, filterable view over the host's timeline entries.

package index

import "sort"

// Geometry is an entry's current on-screen extent in content coordinates.
type Geometry struct {
	Top    int
	Height int
}

// Mid returns the vertical midpoint of the geometry.
func (g Geometry) Mid() int {
	return g.Top + g.Height/2
}

// Anchor yields an entry's live geometry. The second return is false while
// the entry has no layout yet (e.g. not mounted); callers skip the entry for
// that frame and pick it up again once geometry is available.
type Anchor interface {
	Geometry() (Geometry, bool)
}

// Entry is one chronologically placed unit of content. The scrubber holds
// entries read-only; the host owns the data and the anchor's backing layout.
type Entry struct {
	// ID is an opaque stable identifier, unique within a view.
	ID string
	// TimeValue is the entry's signed position on the timeline (a year;
	// negative for antiquity).
	TimeValue int
	// Anchor resolves the entry's current on-screen geometry.
	Anchor Anchor
}

// Build produces the navigable view: keep is applied first (nil keeps all),
// then entries are stable-sorted ascending by TimeValue so same-year entries
// keep their original order. Pure; an empty result is a valid view.
func Build(all []Entry, keep func(Entry) bool) []Entry {
	out := make([]Entry, 0, len(all))
	for _, e := range all {
		if keep == nil || keep(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimeValue < out[j].TimeValue
	})
	return out
}

// AnchorFunc adapts a function to the Anchor interface.
type AnchorFunc func() (Geometry, bool)

func (f AnchorFunc) Geometry() (Geometry, bool) { return f() }

// FixedAnchor returns an anchor with constant geometry.
func FixedAnchor(top, height int) Anchor {
	return AnchorFunc(func() (Geometry, bool) {
		return Geometry{Top: top, Height: height}, true
	})
}

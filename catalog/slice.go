// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: catalog/slice.go
// Summary: The slices data model and JSON feed loader. The authoring
// pipeline that produces the feed is external; this side only reads it.

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Slice is one authored timeline entry as it appears in slices.json.
type Slice struct {
	ID        string   `json:"id"`
	Year      int      `json:"year"`
	Title     string   `json:"title"`
	Teaser    string   `json:"teaser"`
	Threads   []string `json:"threads,omitempty"`
	AddedDate string   `json:"addedDate,omitempty"`
}

// HasThread reports whether the slice belongs to the named thread.
func (s Slice) HasThread(thread string) bool {
	for _, t := range s.Threads {
		if t == thread {
			return true
		}
	}
	return false
}

// LoadFile reads a slices feed (a JSON array of entries). Duplicate ids are
// rejected; same-year entries keep their file order, matching the stable
// sort downstream.
func LoadFile(path string) ([]Slice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read slices feed: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a slices feed.
func Parse(data []byte) ([]Slice, error) {
	var slices []Slice
	if err := json.Unmarshal(data, &slices); err != nil {
		return nil, fmt.Errorf("decode slices feed: %w", err)
	}
	seen := make(map[string]struct{}, len(slices))
	for i, s := range slices {
		if s.ID == "" {
			return nil, fmt.Errorf("slice %d: missing id", i)
		}
		if s.Title == "" {
			return nil, fmt.Errorf("slice %q: missing title", s.ID)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("slice %q: duplicate id", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
	return slices, nil
}

// ThreadPredicate returns a keep-function over slice ids for the named
// thread. Unknown ids are filtered out.
func ThreadPredicate(slices []Slice, thread string) func(id string) bool {
	member := make(map[string]struct{})
	for _, s := range slices {
		if s.HasThread(thread) {
			member[s.ID] = struct{}{}
		}
	}
	return func(id string) bool {
		_, ok := member[id]
		return ok
	}
}

// Threads collects the distinct thread names across slices, in first-seen
// order. The host cycles through these for the active-filter toggle.
func Threads(slices []Slice) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, s := range slices {
		for _, t := range s.Threads {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

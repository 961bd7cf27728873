// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `[
	{"id": "baghdad", "year": 762, "title": "Baghdad founded", "teaser": "A round city rises", "threads": ["cities"]},
	{"id": "david", "year": 1504, "title": "David unveiled", "threads": ["art", "cities"]},
	{"id": "eiffel", "year": 1889, "title": "Eiffel Tower opens", "threads": ["cities"], "addedDate": "2025-03-01"},
	{"id": "tut", "year": 1922, "title": "Tut's tomb found", "threads": ["archaeology"]}
]`

func TestParse(t *testing.T) {
	slices, err := Parse([]byte(sampleFeed))
	require.NoError(t, err)
	require.Len(t, slices, 4)

	assert.Equal(t, "baghdad", slices[0].ID)
	assert.Equal(t, 762, slices[0].Year)
	assert.Equal(t, "A round city rises", slices[0].Teaser)
	assert.Equal(t, []string{"art", "cities"}, slices[1].Threads)
	assert.Equal(t, "2025-03-01", slices[2].AddedDate)
}

func TestParse_Invalid(t *testing.T) {
	cases := []struct {
		name string
		feed string
		want string
	}{
		{"malformed json", `[{"id": `, "decode slices feed"},
		{"missing id", `[{"year": 100, "title": "x"}]`, "missing id"},
		{"missing title", `[{"id": "a", "year": 100}]`, "missing title"},
		{"duplicate id", `[{"id": "a", "title": "x"}, {"id": "a", "title": "y"}]`, "duplicate id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.feed))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slices.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleFeed), 0o644))

	slices, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, slices, 4)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read slices feed")
}

func TestHasThread(t *testing.T) {
	s := Slice{ID: "a", Threads: []string{"art", "cities"}}
	assert.True(t, s.HasThread("art"))
	assert.False(t, s.HasThread("archaeology"))
	assert.False(t, Slice{}.HasThread("art"))
}

func TestThreadPredicate(t *testing.T) {
	slices, err := Parse([]byte(sampleFeed))
	require.NoError(t, err)

	keep := ThreadPredicate(slices, "cities")
	assert.True(t, keep("baghdad"))
	assert.True(t, keep("eiffel"))
	assert.False(t, keep("tut"))
	assert.False(t, keep("unknown-id"))
}

func TestThreads_FirstSeenOrder(t *testing.T) {
	slices, err := Parse([]byte(sampleFeed))
	require.NoError(t, err)

	assert.Equal(t, []string{"cities", "art", "archaeology"}, Threads(slices))
	assert.Empty(t, Threads(nil))
}

// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: defaults/embedded.go
// Summary: Embedded starter slices feed.

package defaults

import "embed"

//go:embed slices.json
var fs embed.FS

// Slices returns the embedded starter feed, used when no slices file
// exists at the configured path.
func Slices() ([]byte, error) {
	return fs.ReadFile("slices.json")
}

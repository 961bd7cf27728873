// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/theme.go
// Summary: Semantic color table for the timescrub UI.

package theme

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Theme maps semantic keys to colors.
type Theme struct {
	Name   string
	colors map[string]tcell.Color
}

var (
	mu      sync.RWMutex
	current *Theme
)

var palettes = map[string]map[string]tcell.Color{
	"dark": {
		"bg.surface":         tcell.ColorBlack,
		"text.primary":       tcell.ColorWhite,
		"text.muted":         tcell.ColorGray,
		"list.year":          tcell.ColorYellow,
		"list.active":        tcell.ColorAqua,
		"scrubber.track":     tcell.ColorGray,
		"scrubber.tick":      tcell.ColorSilver,
		"scrubber.indicator": tcell.ColorAqua,
		"scrubber.label":     tcell.ColorGray,
	},
	"light": {
		"bg.surface":         tcell.ColorWhite,
		"text.primary":       tcell.ColorBlack,
		"text.muted":         tcell.ColorDarkGray,
		"list.year":          tcell.ColorDarkGoldenrod,
		"list.active":        tcell.ColorNavy,
		"scrubber.track":     tcell.ColorDarkGray,
		"scrubber.tick":      tcell.ColorBlack,
		"scrubber.indicator": tcell.ColorNavy,
		"scrubber.label":     tcell.ColorDarkGray,
	},
}

// Get returns the active theme (dark by default).
func Get() *Theme {
	mu.RLock()
	t := current
	mu.RUnlock()
	if t != nil {
		return t
	}
	Select("dark")
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Select switches the active theme by name; unknown names keep dark.
func Select(name string) {
	palette, ok := palettes[name]
	if !ok {
		name, palette = "dark", palettes["dark"]
	}
	mu.Lock()
	current = &Theme{Name: name, colors: palette}
	mu.Unlock()
}

// Color resolves a semantic key. Unknown keys fall back to the default color.
func (t *Theme) Color(key string) tcell.Color {
	if c, ok := t.colors[key]; ok {
		return c
	}
	return tcell.ColorDefault
}

// Style builds a style from semantic foreground/background keys.
func (t *Theme) Style(fg, bg string) tcell.Style {
	return tcell.StyleDefault.Foreground(t.Color(fg)).Background(t.Color(bg))
}

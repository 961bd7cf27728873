// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrub/gesture/controller.go
// Summary: Pointer gesture state machine for the scrubber control.
//
// Idle --press--> Dragging --release(moved)--> Snapping --settled--> Idle
// Idle --press--> Dragging --release(tap)----> Snapping --settled--> Idle
// Dragging --cancel--> Idle
// Snapping --press--> Dragging   (interrupts the snap)

package gesture

import "time"

// Mode is the gesture state.
type Mode int

const (
	Idle Mode = iota
	Dragging
	Snapping
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Snapping:
		return "snapping"
	default:
		return "unknown"
	}
}

// ScrollPort is the host-owned scroll position the controller drives.
// The scrubber never owns scrolling; it reads and writes through this.
type ScrollPort interface {
	Offset() int
	SetOffset(int)
	ContentHeight() int
	ViewportHeight() int
}

// Config tunes gesture behavior.
type Config struct {
	// Sensitivity converts pointer travel (cells) into scroll rows per
	// cell. Zero means auto: the full control travel spans the full
	// scrollable range.
	Sensitivity float64
	// TapMaxDelta is the largest total pointer movement, in cells, that
	// still counts as a tap.
	TapMaxDelta int
	// TapMaxDuration is the longest press that still counts as a tap.
	TapMaxDuration time.Duration
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		Sensitivity:    0,
		TapMaxDelta:    1,
		TapMaxDuration: 300 * time.Millisecond,
	}
}

// Release describes how a drag ended.
type Release struct {
	// Tap is true for a press+release with near-zero movement and short
	// duration; the widget treats it as "jump to this tick".
	Tap bool
	// Pos is the pointer's final control-space position.
	Pos int
}

// Controller turns pointer input into scroll deltas. It owns no rendering
// and no timers; the widget calls Settle when the snap animation finishes.
type Controller struct {
	port ScrollPort
	cfg  Config

	mode        Mode
	travel      int
	startPos    int
	startOffset int
	maxDelta    int
	pressedAt   time.Time
}

// NewController creates a controller driving the given scroll port.
func NewController(port ScrollPort, cfg Config) *Controller {
	if cfg.TapMaxDuration <= 0 {
		cfg.TapMaxDuration = DefaultConfig().TapMaxDuration
	}
	return &Controller{port: port, cfg: cfg, mode: Idle}
}

// Mode returns the current gesture state.
func (c *Controller) Mode() Mode { return c.mode }

// SetTravel tells the controller the control's current travel length, used
// for auto sensitivity. Called by the widget on every rebuild/resize.
func (c *Controller) SetTravel(travel int) {
	if travel < 1 {
		travel = 1
	}
	c.travel = travel
}

// sensitivity resolves the configured or automatic rows-per-cell factor.
func (c *Controller) sensitivity() float64 {
	if c.cfg.Sensitivity > 0 {
		return c.cfg.Sensitivity
	}
	scrollable := c.port.ContentHeight() - c.port.ViewportHeight()
	if scrollable <= 0 || c.travel <= 1 {
		return 1
	}
	return float64(scrollable) / float64(c.travel-1)
}

// Press begins a drag at the given control-space position. A press during a
// snap cancels the snap immediately and starts tracking from the scroll
// position the animation had reached.
func (c *Controller) Press(pos int, now time.Time) {
	c.mode = Dragging
	c.startPos = pos
	c.startOffset = c.port.Offset()
	c.maxDelta = 0
	c.pressedAt = now
}

// Move applies pointer movement while dragging. Motion is applied directly,
// with no smoothing, so the control tracks the pointer 1:1.
func (c *Controller) Move(pos int) {
	if c.mode != Dragging {
		return
	}
	delta := pos - c.startPos
	if d := abs(delta); d > c.maxDelta {
		c.maxDelta = d
	}
	c.port.SetOffset(c.startOffset + int(float64(delta)*c.sensitivity()+roundBias(delta)))
}

// ReleaseAt ends the drag and enters Snapping. The widget inspects the
// returned Release to decide between snap-to-nearest and tap-jump.
func (c *Controller) ReleaseAt(pos int, now time.Time) Release {
	if c.mode != Dragging {
		return Release{Pos: pos}
	}
	c.mode = Snapping
	return Release{
		Tap: c.maxDelta <= c.cfg.TapMaxDelta && now.Sub(c.pressedAt) <= c.cfg.TapMaxDuration,
		Pos: pos,
	}
}

// Cancel aborts a drag without snapping; the last applied scroll position is
// preserved rather than rolled back, so an interruption never fights the
// user's implicit intent.
func (c *Controller) Cancel() {
	if c.mode == Dragging {
		c.mode = Idle
	}
}

// Settle completes a snap; called by the widget when the animation lands.
func (c *Controller) Settle() {
	if c.mode == Snapping {
		c.mode = Idle
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// roundBias rounds toward the drag direction so tiny movements still move.
func roundBias(delta int) float64 {
	if delta < 0 {
		return -0.5
	}
	return 0.5
}

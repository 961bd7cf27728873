// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package gesture

import (
	"testing"
	"time"
)

// fakePort is an in-memory scroll position with clamping.
type fakePort struct {
	offset   int
	content  int
	viewport int
}

func (p *fakePort) Offset() int { return p.offset }
func (p *fakePort) SetOffset(o int) {
	max := p.content - p.viewport
	if max < 0 {
		max = 0
	}
	if o < 0 {
		o = 0
	}
	if o > max {
		o = max
	}
	p.offset = o
}
func (p *fakePort) ContentHeight() int  { return p.content }
func (p *fakePort) ViewportHeight() int { return p.viewport }

func newTestController(port *fakePort, travel int) *Controller {
	c := NewController(port, DefaultConfig())
	c.SetTravel(travel)
	return c
}

func TestController_PressEntersDragging(t *testing.T) {
	port := &fakePort{content: 100, viewport: 10}
	c := newTestController(port, 11)

	if c.Mode() != Idle {
		t.Fatalf("initial mode = %v, want idle", c.Mode())
	}
	c.Press(0, time.Now())
	if c.Mode() != Dragging {
		t.Errorf("mode after press = %v, want dragging", c.Mode())
	}
}

func TestController_MoveAppliesSensitivity(t *testing.T) {
	port := &fakePort{content: 100, viewport: 10}
	c := newTestController(port, 11) // auto: 90 rows over 10 cells = 9 rows/cell

	now := time.Now()
	c.Press(0, now)
	c.Move(2)
	if port.offset != 18 {
		t.Errorf("offset after 2-cell move = %d, want 18", port.offset)
	}

	// Motion is 1:1 with the gesture: absolute from the press origin, so
	// moving back restores the start offset exactly.
	c.Move(0)
	if port.offset != 0 {
		t.Errorf("offset after return move = %d, want 0", port.offset)
	}
}

func TestController_ExplicitSensitivity(t *testing.T) {
	port := &fakePort{content: 100, viewport: 10}
	c := NewController(port, Config{Sensitivity: 2})
	c.SetTravel(11)

	c.Press(0, time.Now())
	c.Move(5)
	if port.offset != 10 {
		t.Errorf("offset = %d, want 10 (5 cells * 2 rows/cell)", port.offset)
	}
}

func TestController_MoveIgnoredWhenNotDragging(t *testing.T) {
	port := &fakePort{content: 100, viewport: 10}
	c := newTestController(port, 11)

	c.Move(5)
	if port.offset != 0 {
		t.Errorf("move while idle changed offset to %d", port.offset)
	}
}

func TestController_ReleaseTapDetection(t *testing.T) {
	port := &fakePort{content: 100, viewport: 10}
	c := newTestController(port, 11)

	now := time.Now()
	c.Press(3, now)
	rel := c.ReleaseAt(3, now.Add(100*time.Millisecond))
	if !rel.Tap {
		t.Error("press+release with no movement should be a tap")
	}
	if c.Mode() != Snapping {
		t.Errorf("mode after release = %v, want snapping", c.Mode())
	}
}

func TestController_SlowPressIsNotTap(t *testing.T) {
	port := &fakePort{content: 100, viewport: 10}
	c := newTestController(port, 11)

	now := time.Now()
	c.Press(3, now)
	rel := c.ReleaseAt(3, now.Add(time.Second))
	if rel.Tap {
		t.Error("long press must not count as a tap")
	}
}

func TestController_MovedReleaseIsNotTap(t *testing.T) {
	port := &fakePort{content: 100, viewport: 10}
	c := newTestController(port, 11)

	now := time.Now()
	c.Press(3, now)
	c.Move(8)
	c.Move(3) // returning to the origin does not undo the movement
	rel := c.ReleaseAt(3, now.Add(50*time.Millisecond))
	if rel.Tap {
		t.Error("a drag that wandered must not count as a tap")
	}
}

func TestController_CancelPreservesOffset(t *testing.T) {
	port := &fakePort{content: 100, viewport: 10}
	c := newTestController(port, 11)

	c.Press(0, time.Now())
	c.Move(3)
	applied := port.offset
	c.Cancel()
	if c.Mode() != Idle {
		t.Errorf("mode after cancel = %v, want idle", c.Mode())
	}
	if port.offset != applied {
		t.Errorf("cancel rolled back offset: %d, want %d", port.offset, applied)
	}
}

func TestController_PressDuringSnapRestartsDrag(t *testing.T) {
	port := &fakePort{content: 100, viewport: 10}
	c := newTestController(port, 11)

	now := time.Now()
	c.Press(0, now)
	c.ReleaseAt(5, now.Add(time.Second))
	if c.Mode() != Snapping {
		t.Fatalf("mode = %v, want snapping", c.Mode())
	}

	// New press interrupts the snap.
	c.Press(5, now.Add(2*time.Second))
	if c.Mode() != Dragging {
		t.Errorf("press during snap: mode = %v, want dragging", c.Mode())
	}
}

func TestController_SettleReturnsToIdle(t *testing.T) {
	port := &fakePort{content: 100, viewport: 10}
	c := newTestController(port, 11)

	now := time.Now()
	c.Press(0, now)
	c.ReleaseAt(5, now.Add(time.Second))
	c.Settle()
	if c.Mode() != Idle {
		t.Errorf("mode after settle = %v, want idle", c.Mode())
	}

	// Settle while idle is a no-op.
	c.Settle()
	if c.Mode() != Idle {
		t.Error("settle while idle should stay idle")
	}
}

func TestController_AutoSensitivityUnscrollableContent(t *testing.T) {
	port := &fakePort{content: 5, viewport: 10}
	c := newTestController(port, 11)

	c.Press(0, time.Now())
	c.Move(5) // must not divide by zero or panic
	if port.offset != 0 {
		t.Errorf("unscrollable content moved to %d", port.offset)
	}
}

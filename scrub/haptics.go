package scrub

import "github.com/gdamore/tcell/v2"

// Haptics receives one pulse per entry-boundary crossing during an active
// gesture, and one on snap release. Terminal hosts map this to the bell.
type Haptics interface {
	Pulse()
}

// NopHaptics discards pulses. Used in tests and by hosts that opt out.
type NopHaptics struct{}

func (NopHaptics) Pulse() {}

// ScreenHaptics pulses the terminal bell.
type ScreenHaptics struct {
	Screen tcell.Screen
}

func (h ScreenHaptics) Pulse() {
	if h.Screen != nil {
		h.Screen.Beep()
	}
}

// Copyright © 2025 Timescrub contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scrub/anim/timeline.go
// Summary: Per-key animation timelines with configurable easing.
// Usage: Drives the snap-to-entry animation; time is always passed in
// explicitly so callers (and tests) control the clock.

package anim

import (
	"sync"
	"time"
)

// EasingFunc maps progress [0,1] to an eased value [0,1].
type EasingFunc func(t float64) float64

// Common easing functions.
var (
	// EaseLinear - constant speed.
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep - S-curve, accelerates at start and decelerates at end.
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3.0 - 2.0*t)
	}

	// EaseOutQuad - fast start, decelerating.
	EaseOutQuad EasingFunc = func(t float64) float64 {
		return t * (2.0 - t)
	}

	// EaseOutCubic - stronger deceleration; the snap default.
	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1.0
		return t1*t1*t1 + 1.0
	}

	// EaseInOutCubic - cubic ease-in-out.
	EaseInOutCubic EasingFunc = func(t float64) float64 {
		if t < 0.5 {
			return 4.0 * t * t * t
		}
		t1 := 2.0*t - 2.0
		return 1.0 + t1*t1*t1*0.5
	}
)

// keyState tracks animation state for a single key.
type keyState struct {
	current   float64
	start     float64
	target    float64
	startTime time.Time
	duration  time.Duration
	easing    EasingFunc
}

// Timeline provides per-key float timelines with automatic state management.
type Timeline struct {
	mu             sync.Mutex
	states         map[any]*keyState
	defaultEasing  EasingFunc
	defaultInitial float64
}

// NewTimeline creates a timeline manager.
// defaultInitial is the value reported for keys never animated.
func NewTimeline(defaultInitial float64) *Timeline {
	return &Timeline{
		states:         make(map[any]*keyState),
		defaultEasing:  EaseSmoothstep,
		defaultInitial: defaultInitial,
	}
}

// AnimateTo starts or retargets an animation for key with the default easing.
func (tl *Timeline) AnimateTo(key any, target float64, duration time.Duration, now time.Time) {
	tl.AnimateToWithEasing(key, target, duration, now, nil)
}

// AnimateToWithEasing starts or retargets an animation with a custom easing
// function. Retargeting mid-flight restarts from the current animated value,
// so an interrupted snap never jumps.
func (tl *Timeline) AnimateToWithEasing(key any, target float64, duration time.Duration, now time.Time, easing EasingFunc) {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	if easing == nil {
		easing = tl.defaultEasing
	}
	state := tl.states[key]
	if state == nil {
		state = &keyState{current: tl.defaultInitial}
		tl.states[key] = state
	} else {
		state.current = computeValue(state, now)
	}

	state.start = state.current
	state.target = target
	state.startTime = now
	state.duration = duration
	state.easing = easing

	if duration <= 0 || state.start == target {
		state.current = target
	}
}

// Set jumps a key to a value with no animation.
func (tl *Timeline) Set(key any, value float64) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.states[key] = &keyState{current: value, start: value, target: value}
}

// Get returns the current animated value for a key at the given time.
func (tl *Timeline) Get(key any, now time.Time) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	state := tl.states[key]
	if state == nil {
		return tl.defaultInitial
	}
	state.current = computeValue(state, now)
	return state.current
}

// IsAnimating reports whether the key's animation is still in flight at now.
func (tl *Timeline) IsAnimating(key any, now time.Time) bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	state := tl.states[key]
	if state == nil || state.duration <= 0 {
		return false
	}
	if computeValue(state, now) == state.target {
		return false
	}
	return now.Sub(state.startTime) < state.duration
}

// Update advances all animations to the given time.
func (tl *Timeline) Update(now time.Time) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	for _, state := range tl.states {
		state.current = computeValue(state, now)
	}
}

// Reset removes the timeline state for a key.
func (tl *Timeline) Reset(key any) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	delete(tl.states, key)
}

// Clear removes all timeline states.
func (tl *Timeline) Clear() {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.states = make(map[any]*keyState)
}

func computeValue(state *keyState, now time.Time) float64 {
	if state.duration <= 0 {
		return state.target
	}
	if now.Before(state.startTime) {
		return state.start
	}
	elapsed := now.Sub(state.startTime)
	if elapsed >= state.duration {
		return state.target
	}
	progress := float64(elapsed) / float64(state.duration)
	easing := state.easing
	if easing == nil {
		easing = EaseSmoothstep
	}
	return state.start + (state.target-state.start)*easing(progress)
}

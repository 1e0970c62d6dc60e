// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package vu

import "time"

// frameClock is a monotonic per-frame delta/elapsed clock: the first
// Advance call after Reset always reports (0, 0), matching the
// spec's "no phantom first-frame delta" requirement. Grounded on
// timing.go's Timing type, restructured around explicit
// (delta_seconds, elapsed_seconds) pairs instead of Timing's
// accumulate-then-Zero()/Dump() bookkeeping.
type frameClock struct {
	started bool
	last    time.Time
	elapsed float64
	nowFn   func() time.Time
}

func newFrameClock() *frameClock {
	return &frameClock{nowFn: time.Now}
}

// Advance reports this frame's delta and cumulative elapsed seconds.
func (c *frameClock) Advance() (deltaSeconds, elapsedSeconds float64) {
	now := c.nowFn()
	if !c.started {
		c.started = true
		c.last = now
		return 0, 0
	}
	delta := now.Sub(c.last).Seconds()
	c.last = now
	c.elapsed += delta
	return delta, c.elapsed
}

// Reset returns the clock to its pre-first-frame state.
func (c *frameClock) Reset() {
	c.started = false
	c.elapsed = 0
}

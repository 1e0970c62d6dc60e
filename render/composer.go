// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import (
	"sort"
	"sync"
)

// Composer holds the renderer's two command buffers (retained and
// immediate) and produces the composed, sorted RenderSnapshot.
//
// retained uses insertion order (first insert wins position; a later
// upsert of the same key replaces its value in place) so that
// "list(retained.values())" is deterministic across frames.
type Composer struct {
	mu          sync.Mutex
	retained    map[string]RenderCommand
	retainOrder []string
	immediate   []RenderCommand
	dirty       bool
}

// NewComposer returns an empty Composer.
func NewComposer() *Composer {
	return &Composer{retained: map[string]RenderCommand{}}
}

// Submit adds a command via the immediate API: it upserts into the
// retained map if the command carries a retention key, else appends
// to the immediate buffer. Reports whether the frame is now dirty
// (always true, since any submission dirties the frame).
func (c *Composer) Submit(cmd RenderCommand) (dirty bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if key, ok := cmd.RetainedMapKey(); ok {
		if _, existed := c.retained[key]; !existed {
			c.retainOrder = append(c.retainOrder, key)
		}
		c.retained[key] = cmd
	} else {
		c.immediate = append(c.immediate, cmd)
	}
	c.dirty = true
	return true
}

// Dirty reports whether any command has been submitted since the
// last Compose call.
func (c *Composer) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Compose builds the frame's RenderSnapshot: the external passes with
// retained+immediate commands folded into the first overlay pass (or
// a synthesized one), every pass's commands stably sorted, and passes
// ordered by canonical priority (world < overlay < post_*).
func (c *Composer) Compose(frameIndex uint64, external []RenderPassSnapshot) RenderSnapshot {
	c.mu.Lock()
	retainedValues := make([]RenderCommand, 0, len(c.retainOrder))
	for _, key := range c.retainOrder {
		retainedValues = append(retainedValues, c.retained[key])
	}
	overlayExtra := append(append([]RenderCommand{}, retainedValues...), c.immediate...)
	c.immediate = nil
	c.dirty = false
	c.mu.Unlock()

	passes := make([]RenderPassSnapshot, len(external))
	copy(passes, external)

	overlayIdx := -1
	for i, p := range passes {
		if canon, _ := CanonicalPassName(p.Name); canon == "overlay" {
			overlayIdx = i
			break
		}
	}
	if overlayIdx >= 0 {
		merged := append(append([]RenderCommand{}, passes[overlayIdx].Commands...), overlayExtra...)
		passes[overlayIdx].Commands = merged
	} else {
		passes = append(passes, RenderPassSnapshot{Name: "overlay", Commands: overlayExtra})
	}

	for i := range passes {
		passes[i].Commands = sortCommands(passes[i].Commands)
	}

	passes = orderPassesByPriority(passes)

	return RenderSnapshot{FrameIndex: frameIndex, Passes: passes}
}

// orderPassesByPriority stable-sorts passes by canonical priority
// (world=0, overlay/unknown=1, post_*=2), preserving relative order
// of passes sharing a priority.
func orderPassesByPriority(passes []RenderPassSnapshot) []RenderPassSnapshot {
	priority := make([]int, len(passes))
	for i, p := range passes {
		_, priority[i] = CanonicalPassName(p.Name)
	}
	order := make([]int, len(passes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return priority[order[i]] < priority[order[j]]
	})
	out := make([]RenderPassSnapshot, len(passes))
	for i, idx := range order {
		out[i] = passes[idx]
	}
	return out
}

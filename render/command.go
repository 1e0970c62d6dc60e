// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package render implements the immutable render-snapshot pipeline
// (retained+immediate composition, deterministic sort, pass
// resolution, DrawPacket translation) and the GPU backend that
// consumes it.
package render

import "strings"

// Kind enumerates the render command kinds the backend understands.
type Kind string

const (
	KindRect       Kind = "rect"
	KindGrid       Kind = "grid"
	KindText       Kind = "text"
	KindFillWindow Kind = "fill_window"
)

// Datum is one (name, value) pair of a command's data tuple. Value is
// a tagged sum over {nil, bool, int64, float64, string, []Datum} with
// a stable comparison order; anything else falls back to its string
// (debug) form for sort-key purposes.
type Datum struct {
	Name  string
	Value any
}

// Mat4 is a 4x4 matrix stored in column-major flat order, matching the
// backend's flat length-16 float upload format.
type Mat4 [16]float32

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// RenderCommand is one immutable draw instruction authored by the game
// module (or synthesized by the renderer's retained/immediate APIs).
type RenderCommand struct {
	Kind      Kind
	Layer     int32
	SortKey   string
	Transform Mat4
	Data      []Datum
}

// RetentionKey returns the command's retention key and whether it has
// one. A command has a retention key iff Data contains an entry
// ("key", k) with k a non-empty, trimmed string.
func (c RenderCommand) RetentionKey() (string, bool) {
	for _, d := range c.Data {
		if d.Name != "key" {
			continue
		}
		s, ok := d.Value.(string)
		if !ok {
			return "", false
		}
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return "", false
		}
		return trimmed, true
	}
	return "", false
}

// RetainedMapKey returns the composite "<kind>:<key>" retained-map
// key for a command that has a retention key. Retention keys are
// scoped per kind by construction: two commands with the same
// user-supplied key but different Kind never collide.
func (c RenderCommand) RetainedMapKey() (string, bool) {
	k, ok := c.RetentionKey()
	if !ok {
		return "", false
	}
	return string(c.Kind) + ":" + k, true
}

// Datum returns the named datum's value and whether it is present.
func (c RenderCommand) Datum(name string) (any, bool) {
	for _, d := range c.Data {
		if d.Name == name {
			return d.Value, true
		}
	}
	return nil, false
}

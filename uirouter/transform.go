// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package uirouter converts window-space input events into app
// (design) space and routes them to an app-supplied interaction plan,
// restructured around the modal/non-modal routing rules of a UI
// layer.
package uirouter

// Rect is an axis-aligned rectangle in whatever space its caller uses.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (x, y) lies within the rectangle,
// inclusive of its lower bound and exclusive of its upper bound.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// UISpaceTransform maps window-space coordinates to app (design)
// space: design = window*scale + offset.
type UISpaceTransform struct {
	ScaleX, ScaleY   float64
	OffsetX, OffsetY float64
}

// Identity returns a transform that passes coordinates through
// unchanged.
func Identity() UISpaceTransform {
	return UISpaceTransform{ScaleX: 1, ScaleY: 1}
}

// ToDesignSpace converts a window-space point to design space.
func (t UISpaceTransform) ToDesignSpace(x, y float64) (float64, float64) {
	sx, sy := t.ScaleX, t.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return x*sx + t.OffsetX, y*sy + t.OffsetY
}

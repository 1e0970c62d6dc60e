// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import "strings"

// RenderPassSnapshot is a named, ordered grouping of commands sharing
// a color-target configuration (world / overlay / post_*).
//
// RenderPassSnapshot groups RenderCommand values before they are
// translated into the DrawPackets Backend.DrawPackets consumes.
type RenderPassSnapshot struct {
	Name     string
	Commands []RenderCommand
}

// RenderSnapshot is the complete immutable per-frame render payload
// produced by render-snapshot composition.
type RenderSnapshot struct {
	FrameIndex uint64
	Passes     []RenderPassSnapshot
}

// CanonicalPassName normalizes a pass name and reports its priority:
// world/geometry/main -> ("world", 0); overlay/ui/hud -> ("overlay", 1);
// any post*-prefixed name -> (name, 2); anything else (including
// empty) is unknown, priority 1 — same tier as overlay.
func CanonicalPassName(name string) (canonical string, priority int) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "world", "geometry", "main":
		return "world", 0
	case "overlay", "ui", "hud":
		return "overlay", 1
	case "":
		return "unknown", 1
	}
	if strings.HasPrefix(n, "post") {
		return n, 2
	}
	return n, 1
}

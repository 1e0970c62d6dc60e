// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package uirouter

import "github.com/galvanized/enginecore/render"

// ScaleRenderSnapshot applies the inverse of a UISpaceTransform to
// every command's "x"/"y"/"w"/"h" data entries across a RenderSnapshot's
// overlay-canonical passes, so UI geometry authored in design space
// lands at the correct window-space pixels regardless of DPI scale or
// aspect-mode letterboxing. This supplements the base composition
// pipeline (render.Composer.Compose) with the UI layer's own coordinate
// correction pass.
func ScaleRenderSnapshot(snap render.RenderSnapshot, transform UISpaceTransform) render.RenderSnapshot {
	sx, sy := transform.ScaleX, transform.ScaleY
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}

	out := render.RenderSnapshot{FrameIndex: snap.FrameIndex, Passes: make([]render.RenderPassSnapshot, len(snap.Passes))}
	for pi, pass := range snap.Passes {
		canon, _ := render.CanonicalPassName(pass.Name)
		if canon != "overlay" {
			out.Passes[pi] = pass
			continue
		}
		scaled := make([]render.RenderCommand, len(pass.Commands))
		for ci, cmd := range pass.Commands {
			scaled[ci] = scaleCommand(cmd, sx, sy, transform.OffsetX, transform.OffsetY)
		}
		out.Passes[pi] = render.RenderPassSnapshot{Name: pass.Name, Commands: scaled}
	}
	return out
}

func scaleCommand(cmd render.RenderCommand, sx, sy, ox, oy float64) render.RenderCommand {
	data := make([]render.Datum, len(cmd.Data))
	for i, d := range cmd.Data {
		v := d.Value
		switch d.Name {
		case "x", "w":
			if f, ok := asFloat(v); ok {
				v = (f - boolToFloat(d.Name == "x")*ox) / sx
			}
		case "y", "h":
			if f, ok := asFloat(v); ok {
				v = (f - boolToFloat(d.Name == "y")*oy) / sy
			}
		}
		data[i] = render.Datum{Name: d.Name, Value: v}
	}
	cmd.Data = data
	return cmd
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

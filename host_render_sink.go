// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package vu

import "github.com/galvanized/enginecore/diagnostics"

// HubEventSink adapts a diagnostics.Hub to render.EventSink, so the
// GPU backend's resize/reconfigure/draw events can be emitted through
// the same hub every other diagnostics source uses.
type HubEventSink struct {
	hub     *diagnostics.Hub
	tickFor func() uint64
}

// NewRenderEventSink returns a render.EventSink backed by hub, using
// tickFor to stamp each emitted event with the current frame index.
func NewRenderEventSink(hub *diagnostics.Hub, tickFor func() uint64) *HubEventSink {
	return &HubEventSink{hub: hub, tickFor: tickFor}
}

func (s *HubEventSink) Emit(category, name string, fields map[string]any) {
	if s.hub == nil {
		return
	}
	tick := uint64(0)
	if s.tickFor != nil {
		tick = s.tickFor()
	}
	s.hub.EmitFast(category, name, tick, diagnostics.LevelInfo, nil, fields)
}

// RenderEventSink returns an EventSink bound to this Host's diagnostics
// hub and current frame index, ready to pass to render.NewBackend.
func (h *Host) RenderEventSink() *HubEventSink {
	return NewRenderEventSink(h.hub, func() uint64 { return h.frameIndex })
}

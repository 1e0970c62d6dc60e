// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package vu

import (
	"github.com/galvanized/enginecore/device"
	"github.com/galvanized/enginecore/input"
)

// PumpInput polls port for window-level and raw input events, folds
// the input events into this frame's InputSnapshot via the Assembler,
// and dispatches the resulting snapshot to the module. Every window
// event is recorded as a replay command; a close event closes the host
// and a resize event reaches a WindowResizeHandler module, while focus
// and minimize events are only recorded. Intended to be called once per
// iteration of the app's main loop, before Frame, matching the spec's
// data-flow order: window adapter -> input assembler -> UI router ->
// game module.
func (h *Host) PumpInput(port device.WindowPort) input.InputSnapshot {
	for _, we := range port.PollEvents() {
		h.handleWindowEvent(we)
	}

	rawPointer, rawKey, rawWheel := port.PollInputEvents()
	pointerEvents := make([]input.PointerEvent, len(rawPointer))
	for i, e := range rawPointer {
		pointerEvents[i] = input.PointerEvent{Kind: e.Kind, Button: e.Button, X: e.X, Y: e.Y}
	}
	keyEvents := make([]input.KeyEvent, len(rawKey))
	for i, e := range rawKey {
		keyEvents[i] = input.KeyEvent{Kind: e.Kind, Key: e.Key, Char: e.Char}
	}
	wheelEvents := make([]input.WheelEvent, len(rawWheel))
	for i, e := range rawWheel {
		wheelEvents[i] = input.WheelEvent{DeltaY: e.DeltaY}
	}

	snap := h.assembler.Assemble(h.lastSnapshot, h.frameIndex, pointerEvents, keyEvents, wheelEvents)
	h.HandleInputSnapshot(snap)
	return snap
}

func (h *Host) handleWindowEvent(e device.WindowEvent) {
	h.replay.RecordCommand(h.frameIndex, "window."+string(e.Kind), map[string]any{
		"physical_width": e.PhysicalWidth, "physical_height": e.PhysicalHeight, "dpi_scale": e.DPIScale,
	})
	switch e.Kind {
	case device.EventClose:
		h.closeByHost = true
		h.Close()
	case device.EventResize:
		if handler, ok := h.module.(WindowResizeHandler); ok {
			handler.OnWindowResize(e.PhysicalWidth, e.PhysicalHeight, e.DPIScale)
		}
	}
}

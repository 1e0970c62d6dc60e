// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package vu

import (
	"sort"

	"github.com/galvanized/enginecore/input"
)

// HandlePointerEvent records a replay command, then routes the event
// through the module's UIRouted extension if present (interaction-plan
// button/grid/modal routing, per the spec's "input assembler -> UI
// router -> game module" data flow); otherwise it delegates directly
// to PointerDownHandler / PointerUpHandler / PointerMoveHandler,
// whichever matches e.Kind.
func (h *Host) HandlePointerEvent(e input.PointerEvent) {
	h.replay.RecordCommand(h.frameIndex, "pointer."+e.Kind, map[string]any{
		"button": e.Button, "x": e.X, "y": e.Y,
	})

	if routed, ok := h.module.(UIRouted); ok {
		plan, modal := routed.InteractionPlan(), routed.ModalState()
		switch e.Kind {
		case "down":
			h.uiRouter.RoutePointerDown(plan, modal, routed, e.Button, e.X, e.Y)
		case "up":
			h.uiRouter.RoutePointerRelease(routed, e.X, e.Y)
		case "move":
			h.uiRouter.RoutePointerMove(routed, e.X, e.Y)
		}
		return
	}

	switch e.Kind {
	case "down":
		if handler, ok := h.module.(PointerDownHandler); ok {
			handler.OnPointerDown(e)
		}
	case "up":
		if handler, ok := h.module.(PointerUpHandler); ok {
			handler.OnPointerUp(e)
		}
	case "move":
		if handler, ok := h.module.(PointerMoveHandler); ok {
			handler.OnPointerMove(e)
		}
	}
}

// HandleKeyEvent records a replay command and delegates to the
// module's KeyDownHandler / KeyUpHandler / CharHandler, intercepting
// and swallowing the configured overlay-toggle key on key-down.
func (h *Host) HandleKeyEvent(e input.KeyEvent) {
	if e.Kind == "down" && input.NormalizeKey(e.Key) == input.NormalizeKey(h.overlayToggleKey()) {
		h.ToggleOverlay()
		return
	}

	h.replay.RecordCommand(h.frameIndex, "key."+e.Kind, map[string]any{
		"key": e.Key, "char": string(e.Char),
	})

	if routed, ok := h.module.(UIRouted); ok && e.Kind != "up" {
		plan, modal := routed.InteractionPlan(), routed.ModalState()
		h.uiRouter.RouteKey(plan, modal, routed, e.Key, e.Char, e.Kind == "char")
		return
	}

	switch e.Kind {
	case "down":
		if handler, ok := h.module.(KeyDownHandler); ok {
			handler.OnKeyDown(e)
		}
	case "up":
		if handler, ok := h.module.(KeyUpHandler); ok {
			handler.OnKeyUp(e)
		}
	case "char":
		if handler, ok := h.module.(CharHandler); ok {
			handler.OnChar(e)
		}
	}
}

// HandleWheelEvent records a replay command, routes through the
// module's UIRouted extension (wheel-region gating, using the most
// recently assembled pointer position since wheel events carry no
// position of their own) if present, and otherwise delegates to the
// module's WheelHandler.
func (h *Host) HandleWheelEvent(e input.WheelEvent) {
	h.replay.RecordCommand(h.frameIndex, "wheel", map[string]any{
		"delta_y": e.DeltaY,
	})

	if routed, ok := h.module.(UIRouted); ok {
		x, y := h.lastSnapshot.Mouse.X, h.lastSnapshot.Mouse.Y
		h.uiRouter.RouteWheel(routed.InteractionPlan(), routed, x, y, 0, e.DeltaY)
		return
	}

	if handler, ok := h.module.(WheelHandler); ok {
		handler.OnWheel(e)
	}
}

func (h *Host) overlayToggleKey() string {
	if h.cfg.OverlayToggleKey == "" {
		return "f3"
	}
	return h.cfg.OverlayToggleKey
}

// HandleInputSnapshot defers to the module's InputSnapshotHandler if
// it implements one; otherwise it fans the snapshot's raw event
// streams out through the per-event handlers in the fixed order:
// pointer_move, pointer_down (sorted by button), pointer_up (sorted
// by button), key_down (sorted), char, wheel.
func (h *Host) HandleInputSnapshot(snap input.InputSnapshot) {
	h.lastSnapshot = snap

	if handler, ok := h.module.(InputSnapshotHandler); ok {
		handler.HandleInputSnapshot(snap)
		return
	}

	var moves, downs, ups []input.PointerEvent
	for _, e := range snap.PointerEvents {
		switch e.Kind {
		case "move":
			moves = append(moves, e)
		case "down":
			downs = append(downs, e)
		case "up":
			ups = append(ups, e)
		}
	}
	sort.SliceStable(downs, func(i, j int) bool { return downs[i].Button < downs[j].Button })
	sort.SliceStable(ups, func(i, j int) bool { return ups[i].Button < ups[j].Button })

	for _, e := range moves {
		h.HandlePointerEvent(e)
	}
	for _, e := range downs {
		h.HandlePointerEvent(e)
	}
	for _, e := range ups {
		h.HandlePointerEvent(e)
	}

	var keyDowns []input.KeyEvent
	var chars []input.KeyEvent
	for _, e := range snap.KeyEvents {
		switch e.Kind {
		case "down":
			keyDowns = append(keyDowns, e)
		case "char":
			chars = append(chars, e)
		}
	}
	sort.SliceStable(keyDowns, func(i, j int) bool { return keyDowns[i].Key < keyDowns[j].Key })
	for _, e := range keyDowns {
		h.HandleKeyEvent(e)
	}
	for _, e := range chars {
		h.HandleKeyEvent(e)
	}
	for _, e := range snap.WheelEvents {
		h.HandleWheelEvent(e)
	}
}

// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package vu

import (
	"github.com/galvanized/enginecore/input"
	"github.com/galvanized/enginecore/uirouter"
)

// HostFrameContext is the per-frame payload handed to GameModule.OnFrame,
// replacing the teacher's Director.Update(*Input) callback shape
// (eng.go) with the spec's explicit frame-clock values.
type HostFrameContext struct {
	FrameIndex     uint64
	DeltaSeconds   float64
	ElapsedSeconds float64
}

// GameModule is the application's callback surface, the spec's
// equivalent of eng.go's Director interface.
type GameModule interface {
	OnFrame(ctx HostFrameContext)
	OnShutdown()
	ShouldClose() bool
}

// StateHasher is an optional GameModule extension: a module that can
// produce a debug state hash for replay checkpoints.
type StateHasher interface {
	DebugStateHash() string
}

// InputSnapshotHandler is an optional GameModule extension: a module
// that consumes whole InputSnapshot values directly instead of the
// per-event handlers below.
type InputSnapshotHandler interface {
	HandleInputSnapshot(input.InputSnapshot)
}

// PointerMoveHandler, PointerDownHandler, PointerUpHandler,
// KeyDownHandler, KeyUpHandler, CharHandler and WheelHandler are the
// optional per-event GameModule extensions used when a module has no
// InputSnapshotHandler: handle_input_snapshot fans the snapshot's raw
// event streams out through whichever of these the module implements.
type PointerMoveHandler interface {
	OnPointerMove(e input.PointerEvent)
}

type PointerDownHandler interface {
	OnPointerDown(e input.PointerEvent)
}

type PointerUpHandler interface {
	OnPointerUp(e input.PointerEvent)
}

type KeyDownHandler interface {
	OnKeyDown(e input.KeyEvent)
}

type KeyUpHandler interface {
	OnKeyUp(e input.KeyEvent)
}

type CharHandler interface {
	OnChar(e input.KeyEvent)
}

type WheelHandler interface {
	OnWheel(e input.WheelEvent)
}

// WindowResizeHandler is an optional GameModule extension: a module
// that reacts to window resize events (e.g. to reconfigure a
// render.Backend and recompute a uirouter.UISpaceTransform).
type WindowResizeHandler interface {
	OnWindowResize(physicalWidth, physicalHeight int, dpiScale float64)
}

// UIRouted is an optional GameModule extension: a module that wants
// its pointer/key/wheel events passed through a uirouter.Router
// (interaction-plan-based button/grid/modal routing) instead of the
// raw per-event handlers above. Host prefers this extension when
// present, per the spec's data flow ("input assembler -> UI router ->
// game module").
type UIRouted interface {
	uirouter.Callbacks
	InteractionPlan() uirouter.InteractionPlan
	ModalState() uirouter.ModalState
}

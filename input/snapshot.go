// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package input turns raw device events into an immutable, per-frame
// InputSnapshot: held-state tracking for keys and pointer buttons,
// text-input accumulation, wheel deltas, and resolved logical actions.
package input

// PointerEvent is a raw pointer (mouse/touch) event drained from the
// window adapter.
type PointerEvent struct {
	Kind   string // "down" | "move" | "up"
	Button int    // valid for "down"/"up"; ignored for "move".
	X, Y   float64
}

// KeyEvent is a raw keyboard event drained from the window adapter.
// Kind "char" carries a printable rune for text input; "down"/"up"
// carry a normalized key identifier.
type KeyEvent struct {
	Kind string // "down" | "up" | "char"
	Key  string
	Char rune
}

// WheelEvent is a raw scroll-wheel event.
type WheelEvent struct {
	DeltaY float64
}

// KeyboardState is the keyboard sub-state of an InputSnapshot.
type KeyboardState struct {
	Pressed       map[string]bool
	JustPressed   map[string]bool
	JustReleased  map[string]bool
	TextInput     []string
}

// MouseState is the mouse sub-state of an InputSnapshot.
type MouseState struct {
	X, Y                 float64
	DeltaX, DeltaY       float64
	WheelDelta           float64
	PressedButtons       map[int]bool
	JustPressedButtons   map[int]bool
	JustReleasedButtons  map[int]bool
}

// ControllerState is one entry in the ordered controller-state
// sequence. The assembler does not populate this from any raw event
// stream in the current design (no controller event source is
// specified); it is carried on the snapshot for forward compatibility
// with a controller backend.
type ControllerState struct {
	ID      int
	Buttons map[int]bool
	Axes    map[string]float64
}

// ActionsState is the resolved logical-action sub-state.
type ActionsState struct {
	Active      map[string]bool
	JustStarted map[string]bool
	JustEnded   map[string]bool
	Values      map[string]float64
}

// InputSnapshot is the immutable, value-semantics per-frame snapshot
// produced by the Assembler. Treat every field as read-only: callers
// that need to mutate state should clone the maps/slices first.
type InputSnapshot struct {
	FrameIndex  uint64
	Keyboard    KeyboardState
	Mouse       MouseState
	Controllers []ControllerState
	Actions     ActionsState

	// Raw event streams, preserved for downstream routing (the UI
	// router and the host's snapshot-variant input dispatch both
	// replay these in a specified order).
	PointerEvents []PointerEvent
	KeyEvents     []KeyEvent
	WheelEvents   []WheelEvent
}

// Empty returns a zero-value snapshot for frameIndex with all maps and
// slices initialized (never nil), suitable as the "previous frame"
// seed on the very first frame.
func Empty(frameIndex uint64) InputSnapshot {
	return InputSnapshot{
		FrameIndex: frameIndex,
		Keyboard: KeyboardState{
			Pressed:      map[string]bool{},
			JustPressed:  map[string]bool{},
			JustReleased: map[string]bool{},
			TextInput:    []string{},
		},
		Mouse: MouseState{
			PressedButtons:      map[int]bool{},
			JustPressedButtons:  map[int]bool{},
			JustReleasedButtons: map[int]bool{},
		},
		Actions: ActionsState{
			Active:      map[string]bool{},
			JustStarted: map[string]bool{},
			JustEnded:   map[string]bool{},
			Values:      map[string]float64{},
		},
	}
}

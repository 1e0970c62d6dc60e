// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package device provides the host's window/event-source contract and
// the platform-specific system-font discovery helpers the GPU backend
// needs during initialization.
package device

// WindowEventKind enumerates the event kinds a WindowPort can surface.
type WindowEventKind string

const (
	EventResize   WindowEventKind = "resize"
	EventFocus    WindowEventKind = "focus"
	EventMinimize WindowEventKind = "minimize"
	EventClose    WindowEventKind = "close"
)

// WindowEvent is one polled window-level (non-input) event.
type WindowEvent struct {
	Kind          WindowEventKind
	PhysicalWidth int
	PhysicalHeight int
	DPIScale      float64
	Focused       bool
	Minimized     bool
}

// SurfaceHandle identifies the native drawable surface a renderer
// attaches to. Its concrete shape is platform-specific; the backend
// only needs to pass it through to the GPU library unchanged.
type SurfaceHandle struct {
	Native any
}

// WindowPort is the host's contract for polling window and input
// events from the native platform layer, split the way gazed-vu's
// device.Device separates window lifecycle from input polling.
type WindowPort interface {
	// PollEvents returns window-level events (resize, focus, close)
	// observed since the last call.
	PollEvents() []WindowEvent

	// PollInputEvents returns raw pointer/key/wheel events observed
	// since the last call, in arrival order, for the input package's
	// Assembler to fold into an InputSnapshot.
	PollInputEvents() (pointer []PointerEventData, key []KeyEventData, wheel []WheelEventData)

	// Surface returns the native drawable surface handle.
	Surface() SurfaceHandle

	// Size reports the current physical size and DPI scale.
	Size() (width, height int, dpiScale float64)

	// IsAlive reports whether the window is still open.
	IsAlive() bool

	// Dispose releases native resources.
	Dispose()
}

// PointerEventData, KeyEventData and WheelEventData are the raw,
// device-layer shapes of the input package's PointerEvent/KeyEvent/
// WheelEvent; kept distinct from those types so this package does not
// need to import input (which would invert the natural dependency:
// input is consumed by the host, not the device layer).
type PointerEventData struct {
	Kind   string
	Button int
	X, Y   float64
}

type KeyEventData struct {
	Kind string
	Key  string
	Char rune
}

type WheelEventData struct {
	DeltaX, DeltaY float64
}

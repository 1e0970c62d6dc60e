// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package uirouter

import "testing"

type recordingCallbacks struct {
	buttons      []string
	cells        [][2]int
	pointerDowns [][2]float64
	keyHandled   bool
	modalConfirm int
	modalCancel  int
	modalChars   []rune
	wheels       [][2]float64
}

func (r *recordingCallbacks) OnButton(id string)               { r.buttons = append(r.buttons, id) }
func (r *recordingCallbacks) OnCellClick(row, col int)         { r.cells = append(r.cells, [2]int{row, col}) }
func (r *recordingCallbacks) OnPointerDown(x, y float64)       { r.pointerDowns = append(r.pointerDowns, [2]float64{x, y}) }
func (r *recordingCallbacks) OnPointerMove(x, y float64)       {}
func (r *recordingCallbacks) OnPointerRelease(x, y float64)    {}
func (r *recordingCallbacks) OnKey(key string) bool            { return r.keyHandled }
func (r *recordingCallbacks) OnWheel(dx, dy float64)           { r.wheels = append(r.wheels, [2]float64{dx, dy}) }
func (r *recordingCallbacks) OnModalConfirm()                  { r.modalConfirm++ }
func (r *recordingCallbacks) OnModalCancel()                   { r.modalCancel++ }
func (r *recordingCallbacks) OnModalFocusField(field string)   {}
func (r *recordingCallbacks) OnModalChar(ch rune)              { r.modalChars = append(r.modalChars, ch) }
func (r *recordingCallbacks) OnModalBackspace()                {}

func TestRoutePointerDownHitsEnabledButtonFirst(t *testing.T) {
	router := New(Identity())
	plan := InteractionPlan{Buttons: []Button{
		{ID: "disabled", Rect: Rect{0, 0, 100, 100}, Enabled: false},
		{ID: "play", Rect: Rect{0, 0, 100, 100}, Enabled: true},
	}}
	cb := &recordingCallbacks{}
	router.RoutePointerDown(plan, ModalState{}, cb, 1, 10, 10)
	if len(cb.buttons) != 1 || cb.buttons[0] != "play" {
		t.Fatalf("got %v, want [play]", cb.buttons)
	}
}

func TestRoutePointerDownFallsBackToCellClick(t *testing.T) {
	router := New(Identity())
	plan := InteractionPlan{
		HasCellClickSurface: true,
		GridLayout: func(x, y float64) (int, int, bool) {
			return 2, 3, true
		},
	}
	cb := &recordingCallbacks{}
	router.RoutePointerDown(plan, ModalState{}, cb, 1, 10, 10)
	if len(cb.cells) != 1 || cb.cells[0] != [2]int{2, 3} {
		t.Fatalf("got %v, want [[2 3]]", cb.cells)
	}
}

func TestRoutePointerDownFallsBackToRawPointerDown(t *testing.T) {
	router := New(Identity())
	cb := &recordingCallbacks{}
	router.RoutePointerDown(InteractionPlan{}, ModalState{}, cb, 1, 5, 7)
	if len(cb.pointerDowns) != 1 || cb.pointerDowns[0] != [2]float64{5, 7} {
		t.Fatalf("got %v, want [[5 7]]", cb.pointerDowns)
	}
}

func TestRoutePointerDownModalSwallowsOutsideRects(t *testing.T) {
	router := New(Identity())
	modal := ModalState{Open: true, ConfirmRect: Rect{0, 0, 10, 10}}
	plan := InteractionPlan{Buttons: []Button{{ID: "play", Rect: Rect{0, 0, 100, 100}, Enabled: true}}}
	cb := &recordingCallbacks{}
	router.RoutePointerDown(plan, modal, cb, 1, 50, 50)
	if len(cb.buttons) != 0 || len(cb.pointerDowns) != 0 {
		t.Fatalf("modal should swallow clicks outside its rects, got buttons=%v pointerDowns=%v", cb.buttons, cb.pointerDowns)
	}
}

func TestRoutePointerDownModalConfirmRect(t *testing.T) {
	router := New(Identity())
	modal := ModalState{Open: true, ConfirmRect: Rect{0, 0, 10, 10}}
	cb := &recordingCallbacks{}
	router.RoutePointerDown(InteractionPlan{}, modal, cb, 1, 5, 5)
	if cb.modalConfirm != 1 {
		t.Fatalf("got modalConfirm=%d, want 1", cb.modalConfirm)
	}
}

func TestRouteKeyFallsBackToShortcut(t *testing.T) {
	router := New(Identity())
	plan := InteractionPlan{ShortcutButtons: map[string]string{"e": "interact"}}
	cb := &recordingCallbacks{keyHandled: false}
	router.RouteKey(plan, ModalState{}, cb, "E", 0, false)
	if len(cb.buttons) != 1 || cb.buttons[0] != "interact" {
		t.Fatalf("got %v, want [interact] (key should normalize to lower-case)", cb.buttons)
	}
}

func TestRouteKeyAppHandledStopsShortcut(t *testing.T) {
	router := New(Identity())
	plan := InteractionPlan{ShortcutButtons: map[string]string{"e": "interact"}}
	cb := &recordingCallbacks{keyHandled: true}
	router.RouteKey(plan, ModalState{}, cb, "e", 0, false)
	if len(cb.buttons) != 0 {
		t.Fatalf("shortcut should not fire when app handled the key")
	}
}

func TestRouteKeyModalEnterConfirms(t *testing.T) {
	router := New(Identity())
	cb := &recordingCallbacks{}
	router.RouteKey(InteractionPlan{}, ModalState{Open: true}, cb, "Enter", 0, false)
	if cb.modalConfirm != 1 {
		t.Fatalf("got %d, want 1", cb.modalConfirm)
	}
}

func TestRouteKeyModalCharAppends(t *testing.T) {
	router := New(Identity())
	cb := &recordingCallbacks{}
	router.RouteKey(InteractionPlan{}, ModalState{Open: true}, cb, "", 'x', true)
	if len(cb.modalChars) != 1 || cb.modalChars[0] != 'x' {
		t.Fatalf("got %v, want ['x']", cb.modalChars)
	}
}

func TestRouteWheelOnlyInsideRegion(t *testing.T) {
	router := New(Identity())
	plan := InteractionPlan{WheelRegions: []Rect{{0, 0, 10, 10}}}
	cb := &recordingCallbacks{}
	router.RouteWheel(plan, cb, 5, 5, 0, -1)
	router.RouteWheel(plan, cb, 50, 50, 0, -1)
	if len(cb.wheels) != 1 {
		t.Fatalf("got %d wheel events, want 1 (only the in-region one)", len(cb.wheels))
	}
}

// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package uirouter

import "github.com/galvanized/enginecore/input"

// Callbacks is the app module's routing surface. Implementations
// should be side-effect-only; the router itself remains pure given
// its inputs and the current modal state.
type Callbacks interface {
	OnButton(id string)
	OnCellClick(row, col int)
	OnPointerDown(x, y float64)
	OnPointerMove(x, y float64)
	OnPointerRelease(x, y float64)
	// OnKey reports whether the app handled the key itself; if false,
	// the router falls back to ShortcutButtons.
	OnKey(key string) (handled bool)
	OnWheel(deltaX, deltaY float64)

	OnModalConfirm()
	OnModalCancel()
	OnModalFocusField(field string)
	OnModalChar(r rune)
	OnModalBackspace()
}

// Router converts window-space input into design space and routes it
// per the modal / non-modal rules.
type Router struct {
	Transform UISpaceTransform
}

// New returns a Router using the given coordinate transform.
func New(transform UISpaceTransform) *Router {
	return &Router{Transform: transform}
}

// RoutePointerDown implements the pointer-down rules: modal rect
// routing takes priority; otherwise button hit-test, then grid-cell
// click, then a raw on_pointer_down fallback. Only button 1 (primary)
// participates in hit-testing; other buttons always fall back to
// on_pointer_down.
func (r *Router) RoutePointerDown(plan InteractionPlan, modal ModalState, cb Callbacks, button int, windowX, windowY float64) {
	x, y := r.Transform.ToDesignSpace(windowX, windowY)

	if modal.Open {
		r.routeModalPointerDown(modal, cb, x, y)
		return
	}

	if button != 1 {
		cb.OnPointerDown(x, y)
		return
	}

	if id, ok := firstHit(plan.Buttons, x, y); ok {
		cb.OnButton(id)
		return
	}
	if plan.HasCellClickSurface && plan.GridLayout != nil {
		if row, col, ok := plan.GridLayout(x, y); ok {
			cb.OnCellClick(row, col)
			return
		}
	}
	cb.OnPointerDown(x, y)
}

func (r *Router) routeModalPointerDown(modal ModalState, cb Callbacks, x, y float64) {
	switch {
	case modal.ConfirmRect.Contains(x, y):
		cb.OnModalConfirm()
	case modal.CancelRect.Contains(x, y):
		cb.OnModalCancel()
	case modal.InputRect.Contains(x, y):
		cb.OnModalFocusField(modal.FocusedField)
	default:
		// swallow all other clicks while a modal is open.
	}
}

// RoutePointerMove always dispatches to OnPointerMove, modal or not.
func (r *Router) RoutePointerMove(cb Callbacks, windowX, windowY float64) {
	x, y := r.Transform.ToDesignSpace(windowX, windowY)
	cb.OnPointerMove(x, y)
}

// RoutePointerRelease always dispatches to OnPointerRelease, modal or not.
func (r *Router) RoutePointerRelease(cb Callbacks, windowX, windowY float64) {
	x, y := r.Transform.ToDesignSpace(windowX, windowY)
	cb.OnPointerRelease(x, y)
}

// RouteKey implements the key-routing rules: outside a modal, the app
// gets first refusal via OnKey, falling back to the shortcut-button
// map; inside a modal, Enter/Escape/Backspace/printable-char map to
// the modal's confirm/cancel/field actions and everything else is
// swallowed.
func (r *Router) RouteKey(plan InteractionPlan, modal ModalState, cb Callbacks, rawKey string, char rune, isChar bool) {
	key := input.NormalizeKey(rawKey)

	if modal.Open {
		r.routeModalKey(cb, key, char, isChar)
		return
	}

	if isChar {
		return // printable text input only matters to modal fields.
	}
	if cb.OnKey(key) {
		return
	}
	if id, ok := plan.ShortcutButtons[key]; ok {
		cb.OnButton(id)
	}
}

func (r *Router) routeModalKey(cb Callbacks, key string, char rune, isChar bool) {
	switch {
	case isChar:
		cb.OnModalChar(char)
	case key == "enter":
		cb.OnModalConfirm()
	case key == "escape":
		cb.OnModalCancel()
	case key == "backspace":
		cb.OnModalBackspace()
	default:
		// all other keys swallowed while a modal is open.
	}
}

// RouteWheel forwards a wheel event only when (x, y) falls inside at
// least one configured wheel-scroll region.
func (r *Router) RouteWheel(plan InteractionPlan, cb Callbacks, windowX, windowY, deltaX, deltaY float64) {
	x, y := r.Transform.ToDesignSpace(windowX, windowY)
	if inAnyRegion(plan.WheelRegions, x, y) {
		cb.OnWheel(deltaX, deltaY)
	}
}

// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package input

import (
	"math"
	"unicode"
)

// Assembler turns raw per-frame event queues into an InputSnapshot,
// carrying held-state forward across frames.
type Assembler struct {
	bindings *Bindings
}

// NewAssembler returns an Assembler using the given binding set. A nil
// Bindings is treated as an empty set (no actions ever resolve).
func NewAssembler(bindings *Bindings) *Assembler {
	if bindings == nil {
		bindings = NewBindings()
	}
	return &Assembler{bindings: bindings}
}

// Assemble produces the InputSnapshot for frameIndex, given the
// previous frame's snapshot (for held state) and this frame's raw
// event queues in arrival order.
func (a *Assembler) Assemble(prev InputSnapshot, frameIndex uint64, pointerEvents []PointerEvent, keyEvents []KeyEvent, wheelEvents []WheelEvent) InputSnapshot {
	snap := Empty(frameIndex)

	// Step 1: start with previous held state.
	for k := range prev.Keyboard.Pressed {
		snap.Keyboard.Pressed[k] = true
	}
	snap.Mouse.X, snap.Mouse.Y = prev.Mouse.X, prev.Mouse.Y
	for b := range prev.Mouse.PressedButtons {
		snap.Mouse.PressedButtons[b] = true
	}

	// Step 2: pointer events.
	for _, e := range pointerEvents {
		switch e.Kind {
		case "down":
			if e.Button < 0 {
				continue
			}
			snap.Mouse.X, snap.Mouse.Y = clampFinite(e.X), clampFinite(e.Y)
			if !snap.Mouse.PressedButtons[e.Button] {
				snap.Mouse.JustPressedButtons[e.Button] = true
			}
			snap.Mouse.PressedButtons[e.Button] = true
		case "up":
			if e.Button < 0 {
				continue
			}
			snap.Mouse.X, snap.Mouse.Y = clampFinite(e.X), clampFinite(e.Y)
			delete(snap.Mouse.PressedButtons, e.Button)
			snap.Mouse.JustReleasedButtons[e.Button] = true
		case "move":
			x, y := clampFinite(e.X), clampFinite(e.Y)
			snap.Mouse.DeltaX += x - snap.Mouse.X
			snap.Mouse.DeltaY += y - snap.Mouse.Y
			snap.Mouse.X, snap.Mouse.Y = x, y
		default:
			continue // unknown event kind, dropped silently.
		}
		snap.PointerEvents = append(snap.PointerEvents, e)
	}

	// Step 3: key events.
	for _, e := range keyEvents {
		switch e.Kind {
		case "down":
			key := NormalizeKey(e.Key)
			if !snap.Keyboard.Pressed[key] {
				snap.Keyboard.JustPressed[key] = true
			}
			snap.Keyboard.Pressed[key] = true
		case "up":
			key := NormalizeKey(e.Key)
			delete(snap.Keyboard.Pressed, key)
			snap.Keyboard.JustReleased[key] = true
		case "char":
			if unicode.IsPrint(e.Char) {
				snap.Keyboard.TextInput = append(snap.Keyboard.TextInput, string(e.Char))
			} else {
				continue // non-printable, dropped silently.
			}
		default:
			continue
		}
		snap.KeyEvents = append(snap.KeyEvents, e)
	}

	// Step 4: wheel events.
	for _, e := range wheelEvents {
		snap.Mouse.WheelDelta += clampFinite(e.DeltaY)
		snap.WheelEvents = append(snap.WheelEvents, e)
	}

	// Step 5 & 6: resolve actions and count mapping conflicts.
	a.resolveActions(prev.Actions, &snap)

	return snap
}

func clampFinite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func (a *Assembler) resolveActions(prevActions ActionsState, snap *InputSnapshot) {
	conflicts := 0
	nowActive := map[string]bool{}

	addActions := func(s source) {
		actions, conflict := a.bindings.actionsFor(s)
		if conflict {
			conflicts++
		}
		for _, act := range actions {
			nowActive[act] = true
		}
	}

	for key := range snap.Keyboard.Pressed {
		addActions(keyDownSource(key))
	}
	for button := range snap.Mouse.PressedButtons {
		addActions(pointerDownSource(button))
	}
	for _, ch := range snap.Keyboard.TextInput {
		for _, r := range ch {
			addActions(charSource(r))
		}
	}

	for action, active := range nowActive {
		snap.Actions.Active[action] = active
		wasActive := prevActions.Active[action]
		if active && !wasActive {
			snap.Actions.JustStarted[action] = true
		}
	}
	for action, wasActive := range prevActions.Active {
		if wasActive && !nowActive[action] {
			snap.Actions.JustEnded[action] = true
		}
	}
	if conflicts > 0 {
		snap.Actions.Values["meta.mapping_conflicts"] = float64(conflicts)
	}
}

// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package uirouter

// Button is one hit-testable interaction-plan button.
type Button struct {
	ID      string
	Rect    Rect
	Enabled bool
}

// GridLayout maps a design-space point to a (row, col) grid cell.
type GridLayout func(x, y float64) (row, col int, ok bool)

// InteractionPlan is the app-supplied routing configuration for one
// frame: hit-testable buttons, keyboard shortcuts, the optional
// grid-cell click surface, and wheel-scroll regions.
type InteractionPlan struct {
	Buttons            []Button
	ShortcutButtons    map[string]string // normalized key -> button id
	AllowsAIBoardClick bool
	HasCellClickSurface bool
	CellClickSurface   string
	GridLayout         GridLayout
	WheelRegions       []Rect
}

// ModalState describes an open modal dialog's hit-test rectangles and
// focused field; Open=false means no modal is active.
type ModalState struct {
	Open         bool
	ConfirmRect  Rect
	CancelRect   Rect
	InputRect    Rect
	FocusedField string
}

// firstHit returns the id of the first enabled button whose rectangle
// contains (x, y), in plan order.
func firstHit(buttons []Button, x, y float64) (string, bool) {
	for _, b := range buttons {
		if b.Enabled && b.Rect.Contains(x, y) {
			return b.ID, true
		}
	}
	return "", false
}

func inAnyRegion(regions []Rect, x, y float64) bool {
	for _, r := range regions {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import "testing"

func TestSortCommandsByLayerThenSortKey(t *testing.T) {
	cmds := []RenderCommand{
		{Kind: KindRect, Layer: 2, SortKey: "b"},
		{Kind: KindRect, Layer: 1, SortKey: "z"},
		{Kind: KindRect, Layer: 1, SortKey: "a"},
	}
	sorted := sortCommands(cmds)
	if sorted[0].SortKey != "a" || sorted[1].SortKey != "z" || sorted[2].Layer != 2 {
		t.Fatalf("unexpected sort order: %+v", sorted)
	}
}

func TestSortCommandsStableOnFullTie(t *testing.T) {
	cmds := []RenderCommand{
		{Kind: KindRect, Layer: 0, Data: []Datum{{Name: "tag", Value: "first"}}},
		{Kind: KindRect, Layer: 0, Data: []Datum{{Name: "tag", Value: "first"}}},
	}
	sorted := sortCommands(cmds)
	if len(sorted) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(sorted))
	}
}

func TestSortCommandsDeterministicAcrossRuns(t *testing.T) {
	cmds := []RenderCommand{
		{Kind: KindText, Layer: 3, SortKey: "m"},
		{Kind: KindRect, Layer: 3, SortKey: "m"},
		{Kind: KindGrid, Layer: -1, SortKey: ""},
	}
	a := sortCommands(append([]RenderCommand{}, cmds...))
	b := sortCommands(append([]RenderCommand{}, cmds...))
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Layer != b[i].Layer || a[i].SortKey != b[i].SortKey {
			t.Fatalf("sort not deterministic at index %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

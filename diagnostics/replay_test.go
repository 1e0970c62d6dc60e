// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package diagnostics

import "testing"

func TestExportCommandsInTickOrder(t *testing.T) {
	r := NewRecorder(true, "seed-1", "build-1", 10, nil)
	r.RecordCommand(1, "pointer_down", map[string]any{"x": 1})
	r.RecordCommand(2, "key_down", map[string]any{"key": "a"})
	r.RecordCommand(3, "wheel", map[string]any{"dy": -1})

	m := r.Export()
	if m.SchemaVersion != ReplaySchemaVersion {
		t.Fatalf("got schema %q, want %q", m.SchemaVersion, ReplaySchemaVersion)
	}
	if m.CommandCount != 3 || m.FirstTick != 1 || m.LastTick != 3 {
		t.Fatalf("got manifest %+v, want 3 commands ticks 1..3", m)
	}
	for i, c := range m.Commands {
		if c.Tick != uint64(i+1) {
			t.Fatalf("commands out of tick order: %+v", m.Commands)
		}
	}
}

func TestDisabledRecorderIsNoop(t *testing.T) {
	r := NewRecorder(false, "", "", 10, nil)
	r.RecordCommand(1, "key_down", nil)
	r.MarkFrame(10, "hash")
	m := r.Export()
	if m.CommandCount != 0 || len(m.StateHashes) != 0 {
		t.Fatalf("disabled recorder captured data: %+v", m)
	}
}

func TestIsCheckpointTickRespectsInterval(t *testing.T) {
	r := NewRecorder(true, "", "", 5, nil)
	for tick := uint64(0); tick < 11; tick++ {
		want := tick%5 == 0
		if got := r.IsCheckpointTick(tick); got != want {
			t.Fatalf("tick %d: got checkpoint=%v, want %v", tick, got, want)
		}
	}
}

func TestMarkFrameAppendsCheckpoint(t *testing.T) {
	r := NewRecorder(true, "", "", 1, nil)
	r.MarkFrame(1, "abc123")
	r.MarkFrame(2, nil)
	m := r.Export()
	if len(m.StateHashes) != 2 || m.StateHashes[0].Hash != "abc123" {
		t.Fatalf("got checkpoints %+v", m.StateHashes)
	}
}

// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package diagnostics

import "testing"

func TestRollingFpsFormula(t *testing.T) {
	m := NewMetricsCollector(4)
	m.BeginFrame(0)
	fm := m.EndFrame(16)
	if fm.FpsRolling <= 0 {
		t.Fatalf("fps should be positive after a non-zero dt, got %f", fm.FpsRolling)
	}
	want := 1000 / 16.0
	if diff := fm.FpsRolling - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("got fps %f, want %f", fm.FpsRolling, want)
	}
}

func TestRollingFpsZeroWhenRollingMsZero(t *testing.T) {
	m := NewMetricsCollector(4)
	m.BeginFrame(0)
	fm := m.EndFrame(0)
	if fm.FpsRolling != 0 {
		t.Fatalf("got fps %f, want 0 for zero rolling_ms", fm.FpsRolling)
	}
}

func TestFrameIndexRoundTrips(t *testing.T) {
	m := NewMetricsCollector(4)
	m.BeginFrame(42)
	fm := m.EndFrame(10)
	if fm.FrameIndex != 42 {
		t.Fatalf("got frame index %d, want 42", fm.FrameIndex)
	}
}

func TestTopSystemsLastFrameOrdersDescending(t *testing.T) {
	m := NewMetricsCollector(4)
	m.BeginFrame(0)
	m.RecordSystemTime("physics", 2)
	m.RecordSystemTime("render", 9)
	m.RecordSystemTime("ai", 5)
	m.RecordSystemTime("audio", 1)
	m.EndFrame(20)

	snap := m.Snapshot()
	if len(snap.TopSystemsLastFrame) != 3 {
		t.Fatalf("got %d top systems, want 3", len(snap.TopSystemsLastFrame))
	}
	if snap.TopSystemsLastFrame[0].Name != "render" {
		t.Fatalf("got top system %q, want render", snap.TopSystemsLastFrame[0].Name)
	}
}

func TestSchedulerActivityRecorded(t *testing.T) {
	m := NewMetricsCollector(4)
	m.BeginFrame(1)
	m.SetSchedulerQueueSize(7)
	m.SetSchedulerActivity(3, 2)
	fm := m.EndFrame(5)
	if fm.SchedulerQueueSize != 7 || fm.SchedulerEnqueuedCount != 3 || fm.SchedulerDequeuedCount != 2 {
		t.Fatalf("scheduler activity not recorded: %+v", fm)
	}
}

// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package diagnostics

import "testing"

func TestMakeProfilePayloadRespectsSamplingN(t *testing.T) {
	fp := NewFrameProfiler(3)
	snap := MetricsSnapshot{LastFrame: FrameMetrics{FrameIndex: 1, DtMs: 10}}

	if p := fp.MakeProfilePayload(snap); p != nil {
		t.Fatalf("frame 1 of 3 produced a payload, want nil")
	}
	if p := fp.MakeProfilePayload(snap); p != nil {
		t.Fatalf("frame 2 of 3 produced a payload, want nil")
	}
	p := fp.MakeProfilePayload(snap)
	if p == nil {
		t.Fatalf("frame 3 of 3 produced no payload")
	}
	if p.Schema != "frame_profile_v1" {
		t.Fatalf("got schema %q, want frame_profile_v1", p.Schema)
	}
}

func TestBottlenecksTagsFrameHitch(t *testing.T) {
	fp := NewFrameProfiler(1)
	snap := MetricsSnapshot{LastFrame: FrameMetrics{DtMs: 30}}
	p := fp.MakeProfilePayload(snap)
	found := false
	for _, tag := range p.Bottlenecks {
		if tag == "frame_hitch" {
			found = true
		}
	}
	if !found {
		t.Fatalf("got bottlenecks %v, want frame_hitch for dt_ms=30", p.Bottlenecks)
	}
}

func TestBottlenecksOmitFrameHitchBelowThreshold(t *testing.T) {
	fp := NewFrameProfiler(1)
	snap := MetricsSnapshot{LastFrame: FrameMetrics{DtMs: 10}}
	p := fp.MakeProfilePayload(snap)
	for _, tag := range p.Bottlenecks {
		if tag == "frame_hitch" {
			t.Fatalf("dt_ms=10 tagged frame_hitch unexpectedly")
		}
	}
}

// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package diagnostics

import "runtime"

// frameHitchMs is the per-frame dt at or above which a frame is tagged
// a hitch in the bottlenecks payload.
const frameHitchMs = 25.0

// MemoryStats is the Go-idiomatic substitute for the original's
// tracemalloc/psutil memory sample: runtime.MemStats figures rather
// than a process-level RSS sample, since Go exposes the former for
// free and has no tracemalloc equivalent.
type MemoryStats struct {
	HeapAllocBytes uint64 `json:"heap_alloc_bytes"`
	HeapSysBytes   uint64 `json:"heap_sys_bytes"`
	NumGC          uint32 `json:"num_gc"`
}

// FrameProfilePayload is the schema emitted as perf.frame_profile.
type FrameProfilePayload struct {
	Schema             string           `json:"schema"`
	FrameIndex         uint64           `json:"frame_index"`
	DtMs               float64          `json:"dt_ms"`
	FpsRolling         float64          `json:"fps_rolling"`
	SchedulerQueueSize int              `json:"scheduler_queue_size"`
	SchedulerEnqueued  int              `json:"scheduler_enqueued"`
	SchedulerDequeued  int              `json:"scheduler_dequeued"`
	EventPublishCount  int              `json:"event_publish_count"`
	Systems            map[string]float64 `json:"systems"`
	Memory             MemoryStats      `json:"memory"`
	Bottlenecks        []string         `json:"bottlenecks"`
}

// FrameProfiler builds a sampled perf.frame_profile payload from a
// MetricsSnapshot, once every samplingN frames.
type FrameProfiler struct {
	samplingN int
	counter   uint64
}

// NewFrameProfiler returns a FrameProfiler sampling 1-in-samplingN
// frames. samplingN < 1 is treated as 1.
func NewFrameProfiler(samplingN int) *FrameProfiler {
	if samplingN < 1 {
		samplingN = 1
	}
	return &FrameProfiler{samplingN: samplingN}
}

// MakeProfilePayload returns nil unless this frame lands on the
// sampling boundary, in which case it returns a populated payload
// built from snap.
func (f *FrameProfiler) MakeProfilePayload(snap MetricsSnapshot) *FrameProfilePayload {
	f.counter++
	if f.counter%uint64(f.samplingN) != 0 {
		return nil
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	payload := &FrameProfilePayload{
		Schema:             "frame_profile_v1",
		FrameIndex:         snap.LastFrame.FrameIndex,
		DtMs:               snap.LastFrame.DtMs,
		FpsRolling:         snap.RollingFps,
		SchedulerQueueSize: snap.LastFrame.SchedulerQueueSize,
		SchedulerEnqueued:  snap.LastFrame.SchedulerEnqueuedCount,
		SchedulerDequeued:  snap.LastFrame.SchedulerDequeuedCount,
		EventPublishCount:  snap.LastFrame.EventPublishCount,
		Systems:            snap.LastFrame.SystemTimingsMs,
		Memory: MemoryStats{
			HeapAllocBytes: mem.HeapAlloc,
			HeapSysBytes:   mem.HeapSys,
			NumGC:          mem.NumGC,
		},
	}
	payload.Bottlenecks = bottlenecks(snap)
	return payload
}

func bottlenecks(snap MetricsSnapshot) []string {
	var tags []string
	if snap.LastFrame.DtMs >= frameHitchMs {
		tags = append(tags, "frame_hitch")
	}
	if top := snap.TopSystemsLastFrame; len(top) > 0 {
		tags = append(tags, "system:"+top[0].Name)
	}
	if top := topTopic(snap.LastFrame.EventPublishByTopic); top != "" {
		tags = append(tags, "event:"+top)
	}
	if snap.LastFrame.SchedulerQueueSize > 64 {
		tags = append(tags, "scheduler_queue")
	}
	return tags
}

func topTopic(byTopic map[string]int) string {
	best, bestCount := "", 0
	for topic, count := range byTopic {
		if count > bestCount || (count == bestCount && (best == "" || topic < best)) {
			best, bestCount = topic, count
		}
	}
	return best
}

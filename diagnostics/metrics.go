// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package diagnostics

import "sort"

// FrameMetrics is the per-frame measurement recorded by MetricsCollector.
type FrameMetrics struct {
	FrameIndex              uint64
	DtMs                    float64
	FpsRolling              float64
	SchedulerQueueSize      int
	SchedulerEnqueuedCount  int
	SchedulerDequeuedCount  int
	EventPublishCount       int
	EventPublishByTopic     map[string]int
	SystemExceptionCount    int
	SystemTimingsMs         map[string]float64
}

// MetricsSnapshot is the aggregate view returned by Snapshot.
type MetricsSnapshot struct {
	LastFrame         FrameMetrics
	RollingDtMs       float64
	RollingFps        float64
	TopSystemsLastFrame []SystemTiming
}

// SystemTiming names one system and the milliseconds it spent in the
// last frame, used for the rolling snapshot's top-N list.
type SystemTiming struct {
	Name string
	Ms   float64
}

// MetricsCollector maintains a rolling window of per-frame delta
// times and the latest frame's structured counters.
type MetricsCollector struct {
	window    []float64
	windowCap int
	cursor    int
	filled    int

	cur  FrameMetrics
	last FrameMetrics
}

// NewMetricsCollector returns a collector with the given rolling
// window size (in frames). A windowSize < 1 is treated as 1.
func NewMetricsCollector(windowSize int) *MetricsCollector {
	if windowSize < 1 {
		windowSize = 1
	}
	return &MetricsCollector{window: make([]float64, windowSize), windowCap: windowSize}
}

// BeginFrame resets the per-frame counters for frameIndex.
func (m *MetricsCollector) BeginFrame(frameIndex uint64) {
	m.cur = FrameMetrics{
		FrameIndex:          frameIndex,
		EventPublishByTopic: map[string]int{},
		SystemTimingsMs:     map[string]float64{},
	}
}

// SetSchedulerQueueSize records the scheduler's queued task count for
// the current frame.
func (m *MetricsCollector) SetSchedulerQueueSize(n int) { m.cur.SchedulerQueueSize = n }

// SetSchedulerActivity records the scheduler's consume-and-reset
// enqueued/dequeued counters for the current frame.
func (m *MetricsCollector) SetSchedulerActivity(enqueued, dequeued int) {
	m.cur.SchedulerEnqueuedCount = enqueued
	m.cur.SchedulerDequeuedCount = dequeued
}

// IncrementEventPublishCount records one diagnostics event emission.
func (m *MetricsCollector) IncrementEventPublishCount() { m.cur.EventPublishCount++ }

// IncrementEventPublishTopic records one diagnostics event emission
// under a named topic/category.
func (m *MetricsCollector) IncrementEventPublishTopic(topic string) {
	m.cur.EventPublishByTopic[topic]++
}

// RecordSystemTime records the milliseconds a named system spent this
// frame.
func (m *MetricsCollector) RecordSystemTime(system string, ms float64) {
	m.cur.SystemTimingsMs[system] += ms
}

// IncrementSystemExceptionCount records one caught system-level
// exception for the current frame.
func (m *MetricsCollector) IncrementSystemExceptionCount() { m.cur.SystemExceptionCount++ }

// EndFrame appends dtMs to the rolling window and finalizes the
// current frame's metrics, returning them.
func (m *MetricsCollector) EndFrame(dtMs float64) FrameMetrics {
	m.cur.DtMs = dtMs
	m.window[m.cursor] = dtMs
	m.cursor = (m.cursor + 1) % m.windowCap
	if m.filled < m.windowCap {
		m.filled++
	}

	rollingMs := m.rollingMs()
	if rollingMs > 0 {
		m.cur.FpsRolling = 1000 / rollingMs
	} else {
		m.cur.FpsRolling = 0
	}

	m.last = m.cur
	return m.last
}

func (m *MetricsCollector) rollingMs() float64 {
	if m.filled == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < m.filled; i++ {
		sum += m.window[i]
	}
	return sum / float64(m.filled)
}

// Snapshot returns the last frame plus rolling aggregates and the
// three slowest systems from the last frame.
func (m *MetricsCollector) Snapshot() MetricsSnapshot {
	rollingMs := m.rollingMs()
	rollingFps := 0.0
	if rollingMs > 0 {
		rollingFps = 1000 / rollingMs
	}
	return MetricsSnapshot{
		LastFrame:           m.last,
		RollingDtMs:         rollingMs,
		RollingFps:          rollingFps,
		TopSystemsLastFrame: topSystems(m.last.SystemTimingsMs, 3),
	}
}

func topSystems(timings map[string]float64, n int) []SystemTiming {
	out := make([]SystemTiming, 0, len(timings))
	for name, ms := range timings {
		out = append(out, SystemTiming{Name: name, Ms: ms})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ms != out[j].Ms {
			return out[i].Ms > out[j].Ms
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

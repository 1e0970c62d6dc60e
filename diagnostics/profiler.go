// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package diagnostics

import (
	"sort"
	"time"
)

// Mode controls how much span detail the Profiler records and emits.
type Mode string

const (
	ModeOff            Mode = "off"
	ModeLight          Mode = "light"
	ModeTimeline       Mode = "timeline"
	ModeTimelineSample Mode = "timeline_sample"
)

// Span is a completed timed region.
type Span struct {
	Tick       uint64
	Category   string
	Name       string
	StartS     float64
	EndS       float64
	DurationMs float64
	Metadata   map[string]any
}

// SpanHandle references an open span. The zero value is a no-op
// handle, returned by BeginSpan when the profiler is off; sampling is
// applied later, in EndSpan.
type SpanHandle struct {
	id    uint64
	valid bool
}

type openSpan struct {
	tick     uint64
	category string
	name     string
	startS   float64
	metadata map[string]any
}

// ProfilerSnapshot is the value returned by Profiler.Snapshot.
type ProfilerSnapshot struct {
	Mode    Mode
	Count   int
	Recent  []Span
	TopByDuration []Span
}

// Profiler records hierarchical span timings with a sampling-by-
// modulo-N counter and a bounded history of recently completed spans.
type Profiler struct {
	mode      Mode
	samplingN int
	hub       *Hub
	nowS      func() float64

	open    map[uint64]*openSpan
	nextID  uint64
	counter uint64

	recentCap int
	recent    []Span
	count     int
}

// NewProfiler returns a Profiler in the given mode. samplingN < 1 is
// treated as 1 (sample every span). hub may be nil, in which case
// perf.span events are never emitted regardless of mode.
func NewProfiler(mode Mode, samplingN int, recentCap int, hub *Hub) *Profiler {
	if samplingN < 1 {
		samplingN = 1
	}
	if recentCap < 1 {
		recentCap = 128
	}
	return &Profiler{
		mode:      mode,
		samplingN: samplingN,
		hub:       hub,
		nowS:      func() float64 { return float64(time.Now().UnixNano()) / 1e9 },
		open:      map[uint64]*openSpan{},
		recentCap: recentCap,
	}
}

// BeginSpan opens a span. Returns a zero handle when the profiler is
// off.
func (p *Profiler) BeginSpan(tick uint64, category, name string, metadata map[string]any) SpanHandle {
	if p.mode == ModeOff {
		return SpanHandle{}
	}
	p.nextID++
	id := p.nextID
	p.open[id] = &openSpan{tick: tick, category: category, name: name, startS: p.nowS(), metadata: metadata}
	return SpanHandle{id: id, valid: true}
}

// EndSpan closes a span opened with BeginSpan. An invalid (zero)
// handle, or a handle for a span already closed, is a no-op — unclosed
// or double-closed spans are never emitted twice. Subject to the
// sampling counter, the completed span is recorded and, only in
// timeline/timeline_sample mode, emitted as perf.span.
func (p *Profiler) EndSpan(h SpanHandle) {
	if !h.valid || p.mode == ModeOff {
		return
	}
	o, ok := p.open[h.id]
	if !ok {
		return
	}
	delete(p.open, h.id)

	endS := p.nowS()
	span := Span{
		Tick:       o.tick,
		Category:   o.category,
		Name:       o.name,
		StartS:     o.startS,
		EndS:       endS,
		DurationMs: 1000 * (endS - o.startS),
		Metadata:   o.metadata,
	}

	p.counter++
	if p.counter%uint64(p.samplingN) != 0 {
		return
	}

	p.record(span)
	if p.hub != nil && (p.mode == ModeTimeline || p.mode == ModeTimelineSample) {
		p.hub.EmitFast("perf", "span", span.Tick, LevelInfo, span, nil)
	}
}

func (p *Profiler) record(span Span) {
	p.count++
	if len(p.recent) < p.recentCap {
		p.recent = append(p.recent, span)
	} else {
		copy(p.recent, p.recent[1:])
		p.recent[len(p.recent)-1] = span
	}
}

// Close stops the profiler. Open (unclosed) spans are discarded, not
// emitted.
func (p *Profiler) Close() {
	p.open = map[uint64]*openSpan{}
}

// Snapshot returns the profiler mode, total recorded count, the
// recent-span history, and the recent spans ordered slowest-first.
func (p *Profiler) Snapshot() ProfilerSnapshot {
	top := append([]Span(nil), p.recent...)
	sort.Slice(top, func(i, j int) bool { return top[i].DurationMs > top[j].DurationMs })
	return ProfilerSnapshot{
		Mode:          p.mode,
		Count:         p.count,
		Recent:        append([]Span(nil), p.recent...),
		TopByDuration: top,
	}
}

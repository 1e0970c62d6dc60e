// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package vu

import (
	"fmt"
	"log/slog"

	"github.com/galvanized/enginecore/config"
	"github.com/galvanized/enginecore/diagnostics"
	"github.com/galvanized/enginecore/input"
	"github.com/galvanized/enginecore/render"
	"github.com/galvanized/enginecore/scheduler"
	"github.com/galvanized/enginecore/uirouter"
)

// Host orchestrates one application's deterministic per-frame loop
// (§4.8): clock advance, scheduler tick, module callback, diagnostics
// fan-out, replay checkpointing and overlay rendering. Grounded on
// eng.go's Engine/Director split and app.go's staged application.update
// sequence, restructured around the spec's explicit sixteen-step
// ordering rather than a fixed-timestep accumulator.
type Host struct {
	module GameModule
	cfg    config.Config
	log    *slog.Logger

	clock     *frameClock
	scheduler *scheduler.Scheduler
	hub       *diagnostics.Hub
	metrics   *diagnostics.MetricsCollector
	profiler  *diagnostics.Profiler
	frameProf *diagnostics.FrameProfiler
	replay    *diagnostics.Recorder
	crash     *diagnostics.CrashBundleWriter
	assembler *input.Assembler
	composer  *render.Composer
	uiRouter  *uirouter.Router

	frameIndex   uint64
	started      bool
	closed       bool
	closeByHost  bool
	lastSnapshot input.InputSnapshot

	overlayEnabled bool
	renderOverlay  func(*render.Composer)
}

// NewHost wires every diagnostics/runtime subsystem from cfg and
// binds module as the frame callback target.
func NewHost(module GameModule, cfg config.Config, log *slog.Logger) *Host {
	if log == nil {
		log = slog.Default()
	}
	hub := diagnostics.NewHub(cfg.DiagnosticsBufferCapacity, log)
	return &Host{
		module:    module,
		cfg:       cfg,
		log:       log,
		clock:     newFrameClock(),
		scheduler: scheduler.New(),
		hub:       hub,
		metrics:   diagnostics.NewMetricsCollector(cfg.DiagnosticsMetricsWindow),
		profiler:  diagnostics.NewProfiler(diagnostics.Mode(cfg.DiagnosticsProfileMode), cfg.DiagnosticsProfileSamplingN, 128, hub),
		frameProf: diagnostics.NewFrameProfiler(cfg.DiagnosticsProfileSamplingN),
		replay:    diagnostics.NewRecorder(cfg.DiagnosticsReplayCapture, cfg.DiagnosticsReplaySeed, "", cfg.DiagnosticsReplayHashInterval, hub),
		crash:     diagnostics.NewCrashBundleWriter(cfg.DiagnosticsCrashBundleEnabled, cfg.CrashBundleOutputDir, log),
		assembler: input.NewAssembler(input.NewBindings()),
		composer:  render.NewComposer(),
		uiRouter:  uirouter.New(uirouter.Identity()),
		lastSnapshot: input.Empty(0),
	}
}

// Hub exposes the diagnostics hub for subscriber registration.
func (h *Host) Hub() *diagnostics.Hub { return h.hub }

// Scheduler exposes the deferred/recurring task queue.
func (h *Host) Scheduler() *scheduler.Scheduler { return h.scheduler }

// Start is idempotent; Frame implicitly starts if it hasn't run yet.
func (h *Host) Start() {
	if h.started {
		return
	}
	h.started = true
}

// Frame advances the host by exactly one frame, in the sixteen-step
// order specified:
//  1. open frame span, 2. frame.start, 3. advance clock, 4. metrics
//  begin_frame, 5. scheduler advance, 6. short-circuit if closed,
//  7. module.on_frame, 8. crash bundle on exception, 9. metrics
//  end_frame, 10. overlay render, 11. frame.end, 12. frame-profile
//  emit, 13. close frame span, 14. replay mark_frame, 15. frame_index++,
//  16. should_close check.
func (h *Host) Frame() (err error) {
	h.Start()

	span := h.profiler.BeginSpan(h.frameIndex, "frame", "frame", nil) // 1
	h.hub.EmitFast("host", "frame.start", h.frameIndex, diagnostics.LevelInfo, nil, nil) // 2

	delta, elapsed := h.clock.Advance() // 3
	h.metrics.BeginFrame(h.frameIndex)  // 4

	executed, schedErr := h.scheduler.Advance(delta) // 5
	_ = executed
	if schedErr != nil {
		return fmt.Errorf("host: scheduler advance: %w", schedErr)
	}
	enq, deq := h.scheduler.ConsumeActivityCounts()
	h.metrics.SetSchedulerActivity(enq, deq)
	h.metrics.SetSchedulerQueueSize(h.scheduler.QueuedTaskCount())

	if h.closed { // 6
		h.profiler.EndSpan(span)
		return nil
	}

	func() { // 7, 8
		moduleSpan := h.profiler.BeginSpan(h.frameIndex, "module", "on_frame", nil)
		defer func() {
			if r := recover(); r != nil {
				recErr := fmt.Errorf("host: module.on_frame panic: %v", r)
				h.profiler.EndSpan(moduleSpan)
				h.profiler.EndSpan(span)
				h.captureCrash(recErr)
				err = recErr
			}
		}()
		h.module.OnFrame(HostFrameContext{FrameIndex: h.frameIndex, DeltaSeconds: delta, ElapsedSeconds: elapsed})
		h.profiler.EndSpan(moduleSpan)
	}()
	if err != nil {
		return err
	}

	dtMs := delta * 1000.0
	fm := h.metrics.EndFrame(dtMs) // 9
	h.hub.EmitFast("host", "frame.time_ms", h.frameIndex, diagnostics.LevelInfo, dtMs, map[string]any{
		"rolling_fps": h.metrics.Snapshot().RollingFps,
	})
	_ = fm

	if h.overlayEnabled && h.renderOverlay != nil { // 10
		h.renderOverlay(h.composer)
	}

	h.hub.EmitFast("host", "frame.end", h.frameIndex, diagnostics.LevelInfo, nil, nil) // 11

	if payload := h.frameProf.MakeProfilePayload(h.metrics.Snapshot()); payload != nil { // 12
		h.hub.EmitFast("perf", "perf.frame_profile", h.frameIndex, diagnostics.LevelInfo, payload, nil)
	}

	h.profiler.EndSpan(span) // 13

	if h.replay.IsCheckpointTick(h.frameIndex) { // 14
		var stateHash any
		if hasher, ok := h.module.(StateHasher); ok {
			stateHash = hasher.DebugStateHash()
		}
		h.replay.MarkFrame(h.frameIndex, stateHash)
	}

	h.frameIndex++ // 15

	if h.module.ShouldClose() { // 16
		h.closeByHost = true
		if cerr := h.Close(); cerr != nil {
			return cerr
		}
	}
	return nil
}

func (h *Host) captureCrash(cause error) {
	recent := h.hub.Snapshot(64, "", "")
	profSnap := h.profiler.Snapshot()
	_, werr := h.crash.CaptureException(cause, h.frameIndex, recent, profSnap, h.replay.Export(), nil)
	if werr != nil {
		h.log.Warn("crash bundle write failed", "error", werr)
	}
}

// Close stops the profiler and calls module.OnShutdown; it is
// idempotent. Subscribers registered on the hub stay subscribed.
func (h *Host) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.profiler.Close()
	h.module.OnShutdown()
	return nil
}

// SetOverlayRenderer registers the callback used to render the debug
// overlay when enabled and toggled.
func (h *Host) SetOverlayRenderer(fn func(*render.Composer)) {
	h.renderOverlay = fn
}

// ToggleOverlay flips overlay rendering on/off.
func (h *Host) ToggleOverlay() {
	h.overlayEnabled = !h.overlayEnabled
}

// SetUITransform updates the window-to-design-space transform used by
// the UI router, typically recomputed on every window resize.
func (h *Host) SetUITransform(t uirouter.UISpaceTransform) {
	h.uiRouter.Transform = t
}

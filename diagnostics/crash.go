// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package diagnostics

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"
)

// CrashSchemaVersion is the schema_version stamped into every crash
// bundle.
const CrashSchemaVersion = "engine.crash_bundle.v1"

// ExceptionInfo describes the failure that triggered a crash bundle.
type ExceptionInfo struct {
	Type         string `json:"type"`
	Message      string `json:"message"`
	StackSummary string `json:"stack_summary"`
}

// CrashBundle is the JSON shape written to disk on capture.
type CrashBundle struct {
	SchemaVersion string            `json:"schema_version"`
	CapturedAtUTC time.Time         `json:"captured_at_utc"`
	Tick          uint64            `json:"tick"`
	Reason        string            `json:"reason,omitempty"`
	Exception     *ExceptionInfo    `json:"exception,omitempty"`
	Runtime       map[string]string `json:"runtime"`
	RecentEvents  []Event           `json:"recent_events"`
	Profiling     any               `json:"profiling,omitempty"`
	Replay        ReplayManifest    `json:"replay"`
}

// CrashBundleWriter serializes a CrashBundle to a file in outputDir,
// creating the directory if it is missing.
type CrashBundleWriter struct {
	enabled   bool
	outputDir string
	log       *slog.Logger
}

// NewCrashBundleWriter returns a writer. enabled=false makes Capture*
// no-ops, returning a zero path and a nil error.
func NewCrashBundleWriter(enabled bool, outputDir string, log *slog.Logger) *CrashBundleWriter {
	if log == nil {
		log = slog.Default()
	}
	return &CrashBundleWriter{enabled: enabled, outputDir: outputDir, log: log}
}

// CaptureException builds and writes a crash bundle for an unhandled
// error during a frame. recentEvents and replay are caller-supplied
// snapshots of the hub and replay recorder at the moment of failure.
func (w *CrashBundleWriter) CaptureException(err error, tick uint64, recentEvents []Event, profiling any, replay ReplayManifest, runtimeMeta map[string]string) (string, error) {
	bundle := CrashBundle{
		SchemaVersion: CrashSchemaVersion,
		CapturedAtUTC: time.Now().UTC(),
		Tick:          tick,
		Reason:        "exception",
		Exception: &ExceptionInfo{
			Type:         fmt.Sprintf("%T", err),
			Message:      err.Error(),
			StackSummary: string(debug.Stack()),
		},
		Runtime:      ensureRuntimeMeta(runtimeMeta),
		RecentEvents: recentEvents,
		Profiling:    profiling,
		Replay:       replay,
	}
	return w.write(bundle)
}

// CaptureSnapshot builds and writes a crash bundle for a manual,
// non-exceptional export (reason != "exception").
func (w *CrashBundleWriter) CaptureSnapshot(reason string, tick uint64, recentEvents []Event, profiling any, replay ReplayManifest, runtimeMeta map[string]string) (string, error) {
	bundle := CrashBundle{
		SchemaVersion: CrashSchemaVersion,
		CapturedAtUTC: time.Now().UTC(),
		Tick:          tick,
		Reason:        reason,
		Runtime:       ensureRuntimeMeta(runtimeMeta),
		RecentEvents:  recentEvents,
		Profiling:     profiling,
		Replay:        replay,
	}
	return w.write(bundle)
}

func ensureRuntimeMeta(meta map[string]string) map[string]string {
	if len(meta) > 0 {
		return meta
	}
	return map[string]string{"go": "unknown"}
}

func (w *CrashBundleWriter) write(bundle CrashBundle) (string, error) {
	if !w.enabled {
		return "", nil
	}
	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("diagnostics: create crash bundle dir: %w", err)
	}
	name := fmt.Sprintf("crash-%d-%d.json", bundle.Tick, bundle.CapturedAtUTC.UnixNano())
	path := filepath.Join(w.outputDir, name)

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("diagnostics: marshal crash bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("diagnostics: write crash bundle: %w", err)
	}
	w.log.Warn("crash bundle captured", "path", path, "tick", bundle.Tick, "reason", bundle.Reason)
	return path, nil
}

// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package diagnostics

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCaptureExceptionWritesSchemaAndRuntime(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "crash-bundles")
	w := NewCrashBundleWriter(true, dir, nil)

	path, err := w.CaptureException(errors.New("boom"), 42, nil, nil, ReplayManifest{}, nil)
	if err != nil {
		t.Fatalf("CaptureException returned error: %v", err)
	}
	if path == "" {
		t.Fatalf("got empty path")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("missing output directory was not created: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var bundle CrashBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if bundle.SchemaVersion != CrashSchemaVersion {
		t.Fatalf("got schema %q, want %q", bundle.SchemaVersion, CrashSchemaVersion)
	}
	if len(bundle.Runtime) == 0 {
		t.Fatalf("runtime map is empty")
	}
	if bundle.Exception == nil || bundle.Exception.Message != "boom" {
		t.Fatalf("got exception %+v", bundle.Exception)
	}
}

func TestDisabledWriterIsNoop(t *testing.T) {
	w := NewCrashBundleWriter(false, t.TempDir(), nil)
	path, err := w.CaptureException(errors.New("x"), 1, nil, nil, ReplayManifest{}, nil)
	if err != nil || path != "" {
		t.Fatalf("disabled writer returned path=%q err=%v, want empty/nil", path, err)
	}
}

func TestCaptureSnapshotUsesGivenReason(t *testing.T) {
	dir := t.TempDir()
	w := NewCrashBundleWriter(true, dir, nil)
	path, err := w.CaptureSnapshot("manual_export", 7, nil, nil, ReplayManifest{}, nil)
	if err != nil {
		t.Fatalf("CaptureSnapshot: %v", err)
	}
	data, _ := os.ReadFile(path)
	var bundle CrashBundle
	json.Unmarshal(data, &bundle)
	if bundle.Reason != "manual_export" {
		t.Fatalf("got reason %q, want manual_export", bundle.Reason)
	}
}

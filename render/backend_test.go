// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import "testing"

type fakeFontLocator struct {
	path  string
	data  []byte
	found bool
}

func (f fakeFontLocator) Locate(candidates []string) (string, bool) { return f.path, f.found }
func (f fakeFontLocator) Read(path string) ([]byte, error)          { return f.data, nil }

// validTTF is a minimal (header-only) TrueType file sufficient for
// sfnt.Parse to recognize the format without needing real glyph data.
var validTTF = []byte{
	0x00, 0x01, 0x00, 0x00, // sfnt version 1.0
	0x00, 0x00, // numTables = 0
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // searchRange/entrySelector/rangeShift
}

func TestBackendInitFailsWhenGPUUnavailable(t *testing.T) {
	lib := NewSoftwareGPULibrary()
	lib.FailAdapter = true
	b := NewBackend(lib, fakeFontLocator{found: true, data: validTTF}, nil, DefaultBackendConfig())
	if err := b.Init(800, 600); err == nil {
		t.Fatalf("expected init error when adapter unavailable")
	} else if _, ok := err.(*BackendInitError); !ok {
		t.Fatalf("expected *BackendInitError, got %T", err)
	}
}

func TestBackendInitFailsOnMissingFont(t *testing.T) {
	lib := NewSoftwareGPULibrary()
	b := NewBackend(lib, fakeFontLocator{found: false}, nil, DefaultBackendConfig())
	if err := b.Init(800, 600); err == nil {
		t.Fatalf("expected init error on missing font")
	}
}

func TestBackendInitSucceedsWithSoftwareLibrary(t *testing.T) {
	lib := NewSoftwareGPULibrary()
	b := NewBackend(lib, fakeFontLocator{found: true, path: "/fake/font.ttf", data: validTTF}, nil, DefaultBackendConfig())
	if err := b.Init(800, 600); err != nil {
		t.Fatalf("unexpected init error: %v", err)
	}
	if b.SurfaceFormat() != surfaceFormatSRGB {
		t.Fatalf("got surface format %q, want %q", b.SurfaceFormat(), surfaceFormatSRGB)
	}
	if b.PresentMode() != "fifo" {
		t.Fatalf("got present mode %q, want fifo (vsync default)", b.PresentMode())
	}
}

func TestBackendBeginFrameRejectsDoubleOpen(t *testing.T) {
	b := newInitializedBackend(t)
	if err := b.BeginFrame(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.BeginFrame(); err != ErrFrameInFlight {
		t.Fatalf("got %v, want ErrFrameInFlight", err)
	}
}

func TestBackendFrameCycle(t *testing.T) {
	b := newInitializedBackend(t)
	if err := b.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame: %v", err)
	}
	if err := b.DrawPackets("world", nil); err != nil {
		t.Fatalf("DrawPackets: %v", err)
	}
	if err := b.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if err := b.EndFrame(); err != nil {
		t.Fatalf("EndFrame: %v", err)
	}
	if err := b.BeginFrame(); err != nil {
		t.Fatalf("BeginFrame after EndFrame should succeed: %v", err)
	}
}

func TestSelectUploadModeThreshold(t *testing.T) {
	mode, size := selectUploadMode(3, 256)
	if mode != "full_rewrite" || size != 256 {
		t.Fatalf("got (%s,%d), want (full_rewrite,256) for small batch below floor", mode, size)
	}
	mode, size = selectUploadMode(10, 256)
	if mode != "full_rewrite" || size != 640 {
		t.Fatalf("got (%s,%d), want (full_rewrite,640)", mode, size)
	}
	mode, size = selectUploadMode(300, 256)
	if mode != "ring_buffer" || size != 300*64 {
		t.Fatalf("got (%s,%d), want (ring_buffer,%d)", mode, size, 300*64)
	}
}

func TestResizeRetriesThenFailsWithSurfaceReconfigureFailedError(t *testing.T) {
	lib := NewSoftwareGPULibrary()
	b := NewBackend(lib, fakeFontLocator{found: true, data: validTTF}, nil, DefaultBackendConfig())
	if err := b.Init(800, 600); err != nil {
		t.Fatalf("Init: %v", err)
	}
	lib.FailTarget = true
	err := b.Resize(1024, 768, 1.0)
	rerr, ok := err.(*SurfaceReconfigureFailedError)
	if !ok {
		t.Fatalf("got %T, want *SurfaceReconfigureFailedError", err)
	}
	if rerr.Attempts != DefaultBackendConfig().ResizeRetries+1 {
		t.Fatalf("got %d attempts, want %d", rerr.Attempts, DefaultBackendConfig().ResizeRetries+1)
	}
}

func newInitializedBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend(NewSoftwareGPULibrary(), fakeFontLocator{found: true, data: validTTF}, nil, DefaultBackendConfig())
	if err := b.Init(800, 600); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return b
}

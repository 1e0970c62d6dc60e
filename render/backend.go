// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"golang.org/x/image/font/sfnt"
)

// platformName reports the host OS for BackendInitError diagnostics.
func platformName() string { return runtime.GOOS }

// AdapterInfo describes the GPU adapter chosen during initialization.
type AdapterInfo struct {
	Backend string // e.g. "vulkan", "metal", "dx12"
	Name    string
}

// GPULibrary abstracts adapter/device/queue acquisition so the
// Backend's staging, resize and frame-cycle logic can be exercised
// without a real graphics driver. A production build supplies a
// GPULibrary backed by the platform's actual vulkan/metal/dx12 entry
// points; tests and headless hosts use a software stand-in
// (SoftwareGPULibrary).
type GPULibrary interface {
	// Available reports whether the GPU library could be loaded at all.
	Available() bool
	// RequestAdapter tries backend names in priority order and
	// returns the first one available.
	RequestAdapter(backends []string) (AdapterInfo, bool)
	// RequestDevice acquires a device (and implicitly its queue) for
	// the given adapter.
	RequestDevice(AdapterInfo) error
	// SupportedPresentModes reports the present modes the chosen
	// adapter/surface combination supports.
	SupportedPresentModes() []string
	// RebuildFrameTarget (re)allocates the frame target texture+view
	// at the given size; returns an error on failure (used by both
	// init and resize).
	RebuildFrameTarget(width, height int) error
}

// BackendInitError reports a failure during Backend.Init, carrying
// enough context to diagnose adapter/device/font/format selection
// problems without a live debugger.
type BackendInitError struct {
	SelectedBackend       string
	AdapterInfo           AdapterInfo
	AttemptedSurfaceFormat string
	Platform              string
	Stack                 string
	ExceptionType         string
	ExceptionMessage      string
}

func (e *BackendInitError) Error() string {
	return fmt.Sprintf("render: backend init failed: backend=%s adapter=%+v format=%s: %s",
		e.SelectedBackend, e.AdapterInfo, e.AttemptedSurfaceFormat, e.ExceptionMessage)
}

// SurfaceReconfigureFailedError reports a resize/reconfigure failure
// after exhausting the configured retry budget.
type SurfaceReconfigureFailedError struct {
	Attempts    int
	Width       int
	Height      int
	Format      string
	PresentMode string
}

func (e *SurfaceReconfigureFailedError) Error() string {
	return fmt.Sprintf("render: surface reconfigure failed after %d attempts (size=%dx%d format=%s present_mode=%s)",
		e.Attempts, e.Width, e.Height, e.Format, e.PresentMode)
}

// ErrFrameInFlight is returned by BeginFrame when a frame is already
// open.
var ErrFrameInFlight = fmt.Errorf("render: frame already in flight")

// InvalidThreadError describes a Backend call from a goroutine other
// than its owner. checkOwner builds it only when goroutineID reports
// two different non-zero ids; goroutineID always returns 0, so no
// Backend method returns this error.
type InvalidThreadError struct {
	Owner, Caller uint64
}

func (e *InvalidThreadError) Error() string {
	return fmt.Sprintf("render: backend called from goroutine %d, owned by %d", e.Caller, e.Owner)
}

const surfaceFormatSRGB = "bgra8unorm-srgb"

// BackendConfig carries the configurable knobs of GPU backend
// initialization and resize.
type BackendConfig struct {
	BackendPriority      []string // default: vulkan, metal, dx12
	Vsync                bool
	PresentModeAllowlist []string
	FontSearchPaths      []string
	ResizeRetries        int // default 2
	UploadThresholdPackets int // default 256
}

// DefaultBackendConfig returns the spec's default knob values.
func DefaultBackendConfig() BackendConfig {
	return BackendConfig{
		BackendPriority:        []string{"vulkan", "metal", "dx12"},
		Vsync:                  true,
		PresentModeAllowlist:   []string{"fifo", "mailbox", "immediate"},
		FontSearchPaths:        nil, // nil -> device.DefaultFontSearchPaths()
		ResizeRetries:          2,
		UploadThresholdPackets: 256,
	}
}

// FontLocator discovers and validates a system font file.
type FontLocator interface {
	// Locate returns the first readable candidate path.
	Locate(candidates []string) (string, bool)
	// Read returns the font file's bytes for sfnt validation.
	Read(path string) ([]byte, error)
}

// frameState holds the mutable per-frame fields the Backend owns
// exclusively from its owner goroutine.
type frameState struct {
	inFlight    bool
	uploadMode  string
	uploadBytes int
	width       int
	height      int
}

// Backend is the single-owner-thread GPU renderer: adapter/device/
// queue acquisition, resize/reconfigure with bounded retry, and the
// begin/draw/present/end per-frame cycle with staged upload.
type Backend struct {
	lib    GPULibrary
	fonts  FontLocator
	cfg    BackendConfig
	owner  uint64
	hub    EventSink

	adapter      AdapterInfo
	surfaceFmt   string
	presentMode  string
	fontPath     string
	frame        frameState
	dpiScale     float64
}

// EventSink is the subset of the diagnostics Hub the backend needs to
// emit render.* events; kept as a narrow interface so this package
// does not import diagnostics directly.
type EventSink interface {
	Emit(category, name string, fields map[string]any)
}

// NewBackend constructs a Backend, recording goroutineID() as its
// owner. Call Init before any other method.
func NewBackend(lib GPULibrary, fonts FontLocator, hub EventSink, cfg BackendConfig) *Backend {
	return &Backend{lib: lib, fonts: fonts, hub: hub, cfg: cfg, owner: goroutineID()}
}

func (b *Backend) checkOwner() error {
	if caller := goroutineID(); caller != b.owner && caller != 0 && b.owner != 0 {
		return &InvalidThreadError{Owner: b.owner, Caller: caller}
	}
	return nil
}

// goroutineID always returns 0: Go has no public goroutine-ID API and
// this package does not parse runtime stacks. checkOwner therefore
// never fails, and keeping a Backend on a single goroutine is up to
// the caller.
func goroutineID() uint64 { return 0 }

// Init performs adapter/device/queue acquisition, font discovery,
// surface format/present-mode selection and frame-target allocation.
func (b *Backend) Init(width, height int) error {
	fail := func(err error) error {
		return &BackendInitError{
			SelectedBackend:        b.adapter.Backend,
			AdapterInfo:            b.adapter,
			AttemptedSurfaceFormat: surfaceFormatSRGB,
			Platform:               platformName(),
			Stack:                  string(debug.Stack()),
			ExceptionType:          fmt.Sprintf("%T", err),
			ExceptionMessage:       err.Error(),
		}
	}

	if !b.lib.Available() {
		return fail(fmt.Errorf("gpu library unavailable"))
	}

	priority := b.cfg.BackendPriority
	if len(priority) == 0 {
		priority = []string{"vulkan", "metal", "dx12"}
	}
	adapter, ok := b.lib.RequestAdapter(priority)
	if !ok {
		return fail(fmt.Errorf("no adapter available in priority order %v", priority))
	}
	b.adapter = adapter

	if err := b.lib.RequestDevice(adapter); err != nil {
		return fail(fmt.Errorf("request device: %w", err))
	}

	paths := b.cfg.FontSearchPaths
	path, ok := b.fonts.Locate(paths)
	if !ok {
		return fail(fmt.Errorf("no system font found in %v", paths))
	}
	data, err := b.fonts.Read(path)
	if err != nil {
		return fail(fmt.Errorf("read font %s: %w", path, err))
	}
	if _, err := sfnt.Parse(data); err != nil {
		return fail(fmt.Errorf("invalid font file %s: %w", path, err))
	}
	b.fontPath = path

	b.surfaceFmt = surfaceFormatSRGB

	mode, err := b.selectPresentMode()
	if err != nil {
		return fail(err)
	}
	b.presentMode = mode

	if err := b.lib.RebuildFrameTarget(width, height); err != nil {
		return fail(fmt.Errorf("allocate frame target: %w", err))
	}
	b.frame.width, b.frame.height = width, height

	return nil
}

func (b *Backend) selectPresentMode() (string, error) {
	var preference []string
	if b.cfg.Vsync {
		preference = []string{"fifo", "mailbox", "immediate"}
	} else {
		preference = []string{"mailbox", "immediate", "fifo"}
	}
	supported := b.lib.SupportedPresentModes()
	allowed := b.cfg.PresentModeAllowlist
	for _, want := range preference {
		if !contains(supported, want) {
			continue
		}
		if len(allowed) > 0 && !contains(allowed, want) {
			continue
		}
		return want, nil
	}
	return "", fmt.Errorf("no present mode in preference %v intersects supported %v / allowlist %v", preference, supported, allowed)
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Resize rebuilds the frame target at the new size, retrying up to
// cfg.ResizeRetries times before giving up. The adapter and device
// are reused; only the frame target is rebuilt.
func (b *Backend) Resize(physicalWidth, physicalHeight int, dpiScale float64) error {
	if err := b.checkOwner(); err != nil {
		return err
	}
	retries := b.cfg.ResizeRetries
	if retries <= 0 {
		retries = 2
	}
	attempts := 0
	for attempts <= retries {
		attempts++
		if err := b.lib.RebuildFrameTarget(physicalWidth, physicalHeight); err != nil {
			continue
		}
		b.frame.width, b.frame.height = physicalWidth, physicalHeight
		b.dpiScale = dpiScale
		b.emit("render.resize_event", map[string]any{"width": physicalWidth, "height": physicalHeight, "dpi_scale": dpiScale})
		b.emit("render.viewport_applied", map[string]any{"width": physicalWidth, "height": physicalHeight})
		b.emit("render.surface_reconfigure", map[string]any{"format": b.surfaceFmt, "present_mode": b.presentMode, "attempts": attempts})
		return nil
	}
	return &SurfaceReconfigureFailedError{
		Attempts:    attempts,
		Width:       physicalWidth,
		Height:      physicalHeight,
		Format:      b.surfaceFmt,
		PresentMode: b.presentMode,
	}
}

func (b *Backend) emit(name string, fields map[string]any) {
	if b.hub == nil {
		return
	}
	b.hub.Emit("render", name, fields)
}

// BeginFrame opens a new frame; fails with ErrFrameInFlight if one is
// already open.
func (b *Backend) BeginFrame() error {
	if err := b.checkOwner(); err != nil {
		return err
	}
	if b.frame.inFlight {
		return ErrFrameInFlight
	}
	b.frame.inFlight = true
	return nil
}

// DrawPackets selects and records the staged upload strategy for this
// batch and emits a render.draw_packets event for the named pass. It
// begins no render pass and issues no draw calls; GPULibrary has no
// drawing entry points.
func (b *Backend) DrawPackets(passName string, packets []DrawPacket) error {
	if err := b.checkOwner(); err != nil {
		return err
	}
	if !b.frame.inFlight {
		return fmt.Errorf("render: draw_packets called with no frame in flight")
	}
	mode, size := selectUploadMode(len(packets), b.cfg.UploadThresholdPackets)
	b.frame.uploadMode = mode
	b.frame.uploadBytes = size
	b.emit("render.draw_packets", map[string]any{
		"pass":         passName,
		"packet_count": len(packets),
		"upload_mode":  mode,
	})
	return nil
}

// selectUploadMode picks full-rewrite staging for small batches and a
// ring buffer for large ones, sizing the staging allocation per the
// spec's formulas.
func selectUploadMode(packetCount, threshold int) (mode string, bufferSize int) {
	if threshold <= 0 {
		threshold = 256
	}
	if packetCount <= threshold {
		size := packetCount * 64
		if size < 256 {
			size = 256
		}
		return "full_rewrite", size
	}
	size := packetCount * 64
	if size < 1024 {
		size = 1024
	}
	return "ring_buffer", size
}

// Present checks that a frame is in flight. It finishes and submits no
// command encoder; the Backend keeps none.
func (b *Backend) Present() error {
	if err := b.checkOwner(); err != nil {
		return err
	}
	if !b.frame.inFlight {
		return fmt.Errorf("render: present called with no frame in flight")
	}
	return nil
}

// EndFrame clears the in-flight flag.
func (b *Backend) EndFrame() error {
	if err := b.checkOwner(); err != nil {
		return err
	}
	b.frame.inFlight = false
	return nil
}

// Adapter reports the adapter selected during Init.
func (b *Backend) Adapter() AdapterInfo { return b.adapter }

// SurfaceFormat reports the selected surface format.
func (b *Backend) SurfaceFormat() string { return b.surfaceFmt }

// PresentMode reports the selected present mode.
func (b *Backend) PresentMode() string { return b.presentMode }

// FontPath reports the discovered system font file.
func (b *Backend) FontPath() string { return b.fontPath }

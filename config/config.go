// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package config reduces the engine host's construction footprint using
// functional options layered with profile-file and environment overrides.
// See: http://dave.cheney.net/2014/10/17/functional-options-for-friendly-apis
package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds every env-overridable option the host and renderer need.
// Applications are expected to run fine using Defaults alone.
type Config struct {
	WindowMode   string // windowed | fullscreen | maximized | borderless
	UIAspectMode string // contain | stretch | preserve | fixed

	RenderVsync        bool     // enables fifo preference.
	RenderPresentModes []string // intersection set for present selection.
	RenderBackends     []string // ordered try list for adapter backend.

	DiagnosticsBufferCapacity     int    // ring size.
	DiagnosticsProfileMode        string // off | light | timeline | timeline_sample.
	DiagnosticsProfileSamplingN   int    // 1-in-N sample rate.
	DiagnosticsReplayCapture      bool   // enable/disable recorder.
	DiagnosticsReplayHashInterval int    // frames between checkpoints.
	DiagnosticsCrashBundleEnabled bool   // writer active.
	DiagnosticsReplaySeed         string // falls back to an env var when unset.
	DiagnosticsMetricsWindow      int    // rolling metrics window, in frames.

	RendererRecoveryFailureStreakThreshold int     // reconfigure retry limit.
	RendererRecoveryCooldownMs             float64 // delay between reconfigure attempts.
	RendererUploadThresholdPackets         int      // full-rewrite vs ring-buffer cutoff.

	OverlayToggleKey    string // default "f3".
	CrashBundleOutputDir string // created if missing.
}

// Defaults provides reasonable values so the host runs even if no
// configuration attributes are set.
var Defaults = Config{
	WindowMode:   "windowed",
	UIAspectMode: "contain",

	RenderVsync:        true,
	RenderPresentModes: []string{"fifo", "mailbox", "immediate"},
	RenderBackends:     []string{"vulkan", "metal", "dx12"},

	DiagnosticsBufferCapacity:     2048,
	DiagnosticsProfileMode:        "light",
	DiagnosticsProfileSamplingN:   1,
	DiagnosticsReplayCapture:      false,
	DiagnosticsReplayHashInterval: 60,
	DiagnosticsCrashBundleEnabled: true,
	DiagnosticsReplaySeed:         "",
	DiagnosticsMetricsWindow:      60,

	RendererRecoveryFailureStreakThreshold: 2,
	RendererRecoveryCooldownMs:             16,
	RendererUploadThresholdPackets:         256,

	OverlayToggleKey:     "f3",
	CrashBundleOutputDir: "crash_bundles",
}

// Attr defines optional configuration attributes used to override
// Defaults before environment overrides are layered on.
//
//	cfg := config.New(
//	   config.Vsync(false),
//	   config.ProfileMode("timeline"),
//	)
type Attr func(*Config)

// New starts from Defaults and applies the given attributes.
func New(attrs ...Attr) Config {
	c := Defaults
	c.RenderPresentModes = append([]string(nil), Defaults.RenderPresentModes...)
	c.RenderBackends = append([]string(nil), Defaults.RenderBackends...)
	for _, attr := range attrs {
		attr(&c)
	}
	return c
}

// WindowMode sets the window mode attribute. Unrecognized values are
// ignored, keeping the prior setting.
func WindowMode(mode string) Attr {
	return func(c *Config) {
		switch mode {
		case "windowed", "fullscreen", "maximized", "borderless":
			c.WindowMode = mode
		}
	}
}

// UIAspectMode sets how design-space is mapped onto the window.
func UIAspectMode(mode string) Attr {
	return func(c *Config) {
		switch mode {
		case "contain", "stretch", "preserve", "fixed":
			c.UIAspectMode = mode
		}
	}
}

// Vsync toggles the fifo present-mode preference.
func Vsync(enabled bool) Attr {
	return func(c *Config) { c.RenderVsync = enabled }
}

// PresentModes sets the present-mode intersection list.
func PresentModes(modes ...string) Attr {
	return func(c *Config) {
		if len(modes) > 0 {
			c.RenderPresentModes = modes
		}
	}
}

// Backends sets the adapter backend try order.
func Backends(backends ...string) Attr {
	return func(c *Config) {
		if len(backends) > 0 {
			c.RenderBackends = backends
		}
	}
}

// BufferCapacity sets the diagnostics ring buffer capacity.
func BufferCapacity(n int) Attr {
	return func(c *Config) {
		if n > 0 {
			c.DiagnosticsBufferCapacity = n
		}
	}
}

// ProfileMode sets the profiler mode.
func ProfileMode(mode string) Attr {
	return func(c *Config) {
		switch mode {
		case "off", "light", "timeline", "timeline_sample":
			c.DiagnosticsProfileMode = mode
		}
	}
}

// ProfileSamplingN sets the 1-in-N profiler sample rate. Clamped to a
// minimum of 1.
func ProfileSamplingN(n int) Attr {
	return func(c *Config) {
		if n < 1 {
			n = 1
		}
		c.DiagnosticsProfileSamplingN = n
	}
}

// ReplayCapture toggles the replay recorder.
func ReplayCapture(enabled bool) Attr {
	return func(c *Config) { c.DiagnosticsReplayCapture = enabled }
}

// ReplayHashInterval sets the number of frames between state-hash
// checkpoints. Clamped to a minimum of 1.
func ReplayHashInterval(frames int) Attr {
	return func(c *Config) {
		if frames < 1 {
			frames = 1
		}
		c.DiagnosticsReplayHashInterval = frames
	}
}

// CrashBundleEnabled toggles crash-bundle writing.
func CrashBundleEnabled(enabled bool) Attr {
	return func(c *Config) { c.DiagnosticsCrashBundleEnabled = enabled }
}

// RecoveryFailureStreakThreshold sets the surface-reconfigure retry limit.
func RecoveryFailureStreakThreshold(n int) Attr {
	return func(c *Config) {
		if n > 0 {
			c.RendererRecoveryFailureStreakThreshold = n
		}
	}
}

// UploadThresholdPackets sets the full-rewrite vs ring-buffer cutoff.
func UploadThresholdPackets(n int) Attr {
	return func(c *Config) {
		if n > 0 {
			c.RendererUploadThresholdPackets = n
		}
	}
}

// OverlayToggleKeyOpt sets the key that toggles the debug overlay.
func OverlayToggleKeyOpt(key string) Attr {
	return func(c *Config) {
		if key != "" {
			c.OverlayToggleKey = key
		}
	}
}

// CrashBundleOutputDir sets the directory crash bundles are written to.
func CrashBundleOutputDir(dir string) Attr {
	return func(c *Config) {
		if dir != "" {
			c.CrashBundleOutputDir = dir
		}
	}
}

// yamlProfile mirrors Config with pointer fields so a profile file can
// override only the keys it mentions, leaving everything else at
// whatever the base Config already holds.
type yamlProfile struct {
	WindowMode   *string `yaml:"window_mode"`
	UIAspectMode *string `yaml:"ui_aspect_mode"`

	RenderVsync        *bool    `yaml:"render_vsync"`
	RenderPresentModes []string `yaml:"render_present_modes"`
	RenderBackends     []string `yaml:"render_backends"`

	DiagnosticsBufferCapacity     *int    `yaml:"diagnostics_buffer_capacity"`
	DiagnosticsProfileMode        *string `yaml:"diagnostics_profile_mode"`
	DiagnosticsProfileSamplingN   *int    `yaml:"diagnostics_profile_sampling_n"`
	DiagnosticsReplayCapture      *bool   `yaml:"diagnostics_replay_capture"`
	DiagnosticsReplayHashInterval *int    `yaml:"diagnostics_replay_hash_interval"`
	DiagnosticsCrashBundleEnabled *bool   `yaml:"diagnostics_crash_bundle_enabled"`
	DiagnosticsReplaySeed         *string `yaml:"diagnostics_replay_seed"`
	DiagnosticsMetricsWindow      *int    `yaml:"diagnostics_metrics_window"`

	RendererRecoveryFailureStreakThreshold *int     `yaml:"renderer_recovery_failure_streak_threshold"`
	RendererRecoveryCooldownMs             *float64 `yaml:"renderer_recovery_cooldown_ms"`
	RendererUploadThresholdPackets         *int     `yaml:"renderer_upload_threshold_packets"`

	OverlayToggleKey      *string `yaml:"overlay_toggle_key"`
	CrashBundleOutputDir  *string `yaml:"crash_bundle_output_dir"`
}

// FromYAML decodes a profile file on top of base, returning a new
// Config. Keys absent from the document leave base's value untouched.
func FromYAML(base Config, r io.Reader) (Config, error) {
	var p yamlProfile
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("config: decode profile: %w", err)
	}

	c := base
	if p.WindowMode != nil {
		c.WindowMode = *p.WindowMode
	}
	if p.UIAspectMode != nil {
		c.UIAspectMode = *p.UIAspectMode
	}
	if p.RenderVsync != nil {
		c.RenderVsync = *p.RenderVsync
	}
	if len(p.RenderPresentModes) > 0 {
		c.RenderPresentModes = p.RenderPresentModes
	}
	if len(p.RenderBackends) > 0 {
		c.RenderBackends = p.RenderBackends
	}
	if p.DiagnosticsBufferCapacity != nil {
		c.DiagnosticsBufferCapacity = *p.DiagnosticsBufferCapacity
	}
	if p.DiagnosticsProfileMode != nil {
		c.DiagnosticsProfileMode = *p.DiagnosticsProfileMode
	}
	if p.DiagnosticsProfileSamplingN != nil {
		c.DiagnosticsProfileSamplingN = *p.DiagnosticsProfileSamplingN
	}
	if p.DiagnosticsReplayCapture != nil {
		c.DiagnosticsReplayCapture = *p.DiagnosticsReplayCapture
	}
	if p.DiagnosticsReplayHashInterval != nil {
		c.DiagnosticsReplayHashInterval = *p.DiagnosticsReplayHashInterval
	}
	if p.DiagnosticsCrashBundleEnabled != nil {
		c.DiagnosticsCrashBundleEnabled = *p.DiagnosticsCrashBundleEnabled
	}
	if p.DiagnosticsReplaySeed != nil {
		c.DiagnosticsReplaySeed = *p.DiagnosticsReplaySeed
	}
	if p.DiagnosticsMetricsWindow != nil {
		c.DiagnosticsMetricsWindow = *p.DiagnosticsMetricsWindow
	}
	if p.RendererRecoveryFailureStreakThreshold != nil {
		c.RendererRecoveryFailureStreakThreshold = *p.RendererRecoveryFailureStreakThreshold
	}
	if p.RendererRecoveryCooldownMs != nil {
		c.RendererRecoveryCooldownMs = *p.RendererRecoveryCooldownMs
	}
	if p.RendererUploadThresholdPackets != nil {
		c.RendererUploadThresholdPackets = *p.RendererUploadThresholdPackets
	}
	if p.OverlayToggleKey != nil {
		c.OverlayToggleKey = *p.OverlayToggleKey
	}
	if p.CrashBundleOutputDir != nil {
		c.CrashBundleOutputDir = *p.CrashBundleOutputDir
	}
	return c, nil
}

// envPrefix namespaces every environment override this package reads.
const envPrefix = "ENGINECORE_"

// Load applies environment-variable overrides on top of base. env is
// typically os.Environ() turned into a map, or a fake map in tests.
// Unrecognized or malformed values fall back to base's existing value.
func Load(base Config, env map[string]string) Config {
	c := base
	if v, ok := lookup(env, "WINDOW_MODE"); ok {
		WindowMode(v)(&c)
	}
	if v, ok := lookup(env, "UI_ASPECT_MODE"); ok {
		UIAspectMode(v)(&c)
	}
	if v, ok := lookup(env, "RENDER_VSYNC"); ok {
		c.RenderVsync = flag(v, c.RenderVsync)
	}
	if v, ok := lookup(env, "RENDER_PRESENT_MODES"); ok {
		c.RenderPresentModes = splitList(v)
	}
	if v, ok := lookup(env, "RENDER_BACKENDS"); ok {
		c.RenderBackends = splitList(v)
	}
	if v, ok := lookup(env, "DIAGNOSTICS_BUFFER_CAPACITY"); ok {
		c.DiagnosticsBufferCapacity = intVal(v, c.DiagnosticsBufferCapacity, 1)
	}
	if v, ok := lookup(env, "DIAGNOSTICS_PROFILE_MODE"); ok {
		ProfileMode(v)(&c)
	}
	if v, ok := lookup(env, "DIAGNOSTICS_PROFILE_SAMPLING_N"); ok {
		c.DiagnosticsProfileSamplingN = intVal(v, c.DiagnosticsProfileSamplingN, 1)
	}
	if v, ok := lookup(env, "DIAGNOSTICS_REPLAY_CAPTURE"); ok {
		c.DiagnosticsReplayCapture = flag(v, c.DiagnosticsReplayCapture)
	}
	if v, ok := lookup(env, "DIAGNOSTICS_REPLAY_HASH_INTERVAL"); ok {
		c.DiagnosticsReplayHashInterval = intVal(v, c.DiagnosticsReplayHashInterval, 1)
	}
	if v, ok := lookup(env, "DIAGNOSTICS_CRASH_BUNDLE_ENABLED"); ok {
		c.DiagnosticsCrashBundleEnabled = flag(v, c.DiagnosticsCrashBundleEnabled)
	}
	if v, ok := lookup(env, "DIAGNOSTICS_REPLAY_SEED"); ok && c.DiagnosticsReplaySeed == "" {
		c.DiagnosticsReplaySeed = v
	}
	if v, ok := lookup(env, "DIAGNOSTICS_METRICS_WINDOW"); ok {
		c.DiagnosticsMetricsWindow = intVal(v, c.DiagnosticsMetricsWindow, 1)
	}
	if v, ok := lookup(env, "RENDERER_RECOVERY_FAILURE_STREAK_THRESHOLD"); ok {
		c.RendererRecoveryFailureStreakThreshold = intVal(v, c.RendererRecoveryFailureStreakThreshold, 1)
	}
	if v, ok := lookup(env, "RENDERER_UPLOAD_THRESHOLD_PACKETS"); ok {
		c.RendererUploadThresholdPackets = intVal(v, c.RendererUploadThresholdPackets, 1)
	}
	if v, ok := lookup(env, "OVERLAY_TOGGLE_KEY"); ok {
		c.OverlayToggleKey = v
	}
	if v, ok := lookup(env, "CRASH_BUNDLE_OUTPUT_DIR"); ok {
		c.CrashBundleOutputDir = v
	}
	return c
}

func lookup(env map[string]string, key string) (string, bool) {
	v, ok := env[envPrefix+key]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// flag parses common boolean string forms, falling back to def on
// anything else. Mirrors the original runtime config's _flag helper.
func flag(raw string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

// intVal parses raw as an integer, clamped to minimum, falling back to
// def on a parse failure. Mirrors the original runtime config's _int
// helper.
func intVal(raw string, def, minimum int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	if n < minimum {
		n = minimum
	}
	return n
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestNewAppliesDefaultsThenAttrs(t *testing.T) {
	c := New()
	if c.WindowMode != Defaults.WindowMode {
		t.Fatalf("got window mode %q, want default %q", c.WindowMode, Defaults.WindowMode)
	}

	c = New(Vsync(false), ProfileMode("timeline"), UploadThresholdPackets(128))
	if c.RenderVsync {
		t.Fatalf("Vsync(false) did not apply")
	}
	if c.DiagnosticsProfileMode != "timeline" {
		t.Fatalf("got profile mode %q, want timeline", c.DiagnosticsProfileMode)
	}
	if c.RendererUploadThresholdPackets != 128 {
		t.Fatalf("got upload threshold %d, want 128", c.RendererUploadThresholdPackets)
	}
}

func TestAttrsIgnoreInvalidValues(t *testing.T) {
	c := New(WindowMode("sideways"), ProfileSamplingN(-5))
	if c.WindowMode != Defaults.WindowMode {
		t.Fatalf("invalid window mode was applied: %q", c.WindowMode)
	}
	if c.DiagnosticsProfileSamplingN != 1 {
		t.Fatalf("got sampling n %d, want clamped to 1", c.DiagnosticsProfileSamplingN)
	}
}

func TestFromYAMLOverridesOnlyPresentKeys(t *testing.T) {
	base := New()
	doc := strings.NewReader(`
window_mode: fullscreen
diagnostics_buffer_capacity: 4096
render_backends: [metal, vulkan]
`)
	c, err := FromYAML(base, doc)
	if err != nil {
		t.Fatalf("FromYAML returned error: %v", err)
	}
	if c.WindowMode != "fullscreen" {
		t.Fatalf("got window mode %q, want fullscreen", c.WindowMode)
	}
	if c.DiagnosticsBufferCapacity != 4096 {
		t.Fatalf("got buffer capacity %d, want 4096", c.DiagnosticsBufferCapacity)
	}
	if len(c.RenderBackends) != 2 || c.RenderBackends[0] != "metal" {
		t.Fatalf("got backends %v, want [metal vulkan]", c.RenderBackends)
	}
	// UIAspectMode was absent from the document; base value survives.
	if c.UIAspectMode != base.UIAspectMode {
		t.Fatalf("absent key changed UIAspectMode to %q", c.UIAspectMode)
	}
}

func TestFromYAMLEmptyDocumentIsNoop(t *testing.T) {
	base := New()
	c, err := FromYAML(base, strings.NewReader(""))
	if err != nil {
		t.Fatalf("FromYAML on empty document returned error: %v", err)
	}
	if !reflect.DeepEqual(c, base) {
		t.Fatalf("empty document changed config: %+v vs %+v", c, base)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	base := New()
	env := map[string]string{
		"ENGINECORE_RENDER_VSYNC":                    "off",
		"ENGINECORE_DIAGNOSTICS_PROFILE_SAMPLING_N":  "10",
		"ENGINECORE_RENDER_BACKENDS":                 "dx12, vulkan",
		"ENGINECORE_DIAGNOSTICS_REPLAY_HASH_INTERVAL": "not-a-number",
	}
	c := Load(base, env)
	if c.RenderVsync {
		t.Fatalf("RENDER_VSYNC=off did not disable vsync")
	}
	if c.DiagnosticsProfileSamplingN != 10 {
		t.Fatalf("got sampling n %d, want 10", c.DiagnosticsProfileSamplingN)
	}
	if len(c.RenderBackends) != 2 || c.RenderBackends[0] != "dx12" {
		t.Fatalf("got backends %v, want [dx12 vulkan]", c.RenderBackends)
	}
	// malformed int falls back to the base value rather than zero.
	if c.DiagnosticsReplayHashInterval != base.DiagnosticsReplayHashInterval {
		t.Fatalf("malformed env int changed value to %d", c.DiagnosticsReplayHashInterval)
	}
}

func TestLoadIgnoresUnsetAndBlankEnv(t *testing.T) {
	base := New()
	env := map[string]string{"ENGINECORE_WINDOW_MODE": "   "}
	c := Load(base, env)
	if c.WindowMode != base.WindowMode {
		t.Fatalf("blank env value overrode base: %q", c.WindowMode)
	}
}

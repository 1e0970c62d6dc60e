// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import (
	"math"
	"testing"
)

func TestParseColorFormats(t *testing.T) {
	cases := map[string]Color{
		"#fff":      {1, 1, 1, 1},
		"#000":      {0, 0, 0, 1},
		"#ffffff":   {1, 1, 1, 1},
		"#ffffff80": {1, 1, 1, 128.0 / 255.0},
		"#0f0":      {0, 1, 0, 1},
	}
	for s, want := range cases {
		got := ParseColor(s)
		if math.Abs(got.R-want.R) > 1e-6 || math.Abs(got.G-want.G) > 1e-6 ||
			math.Abs(got.B-want.B) > 1e-6 || math.Abs(got.A-want.A) > 1e-6 {
			t.Errorf("ParseColor(%q) = %+v, want %+v", s, got, want)
		}
	}
}

func TestParseColorInvalidDefaultsToOpaqueWhite(t *testing.T) {
	for _, s := range []string{"", "red", "#ff", "#12345", "#zzzzzz"} {
		if got := ParseColor(s); got != OpaqueWhite {
			t.Errorf("ParseColor(%q) = %+v, want OpaqueWhite", s, got)
		}
	}
}

func TestLinearizeChannelLowAndHighRange(t *testing.T) {
	if got := LinearizeChannel(0.02); math.Abs(got-0.02/12.92) > 1e-9 {
		t.Errorf("low-range got %v", got)
	}
	want := math.Pow((0.5+0.055)/1.055, 2.4)
	if got := LinearizeChannel(0.5); math.Abs(got-want) > 1e-9 {
		t.Errorf("high-range got %v, want %v", got, want)
	}
}

func TestLinearizeChannelClampsOutOfRange(t *testing.T) {
	if got := LinearizeChannel(-1); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
	if got := LinearizeChannel(2); got != 1 {
		t.Errorf("got %v, want 1", got)
	}
}

func TestSRGBAndLinearPassesAlphaThrough(t *testing.T) {
	srgb, linear := SRGBAndLinear(Color{R: 0.5, G: 0.5, B: 0.5, A: 0.3})
	if srgb[3] != 0.3 || linear[3] != 0.3 {
		t.Errorf("alpha not passed through: srgb=%v linear=%v", srgb, linear)
	}
}

// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import (
	"math"
	"strconv"
	"strings"
)

// Color is a straight (non-premultiplied) sRGB-encoded color with
// each channel normalized to [0,1].
type Color struct {
	R, G, B, A float64
}

// OpaqueWhite is the fallback value for an unparseable color string.
var OpaqueWhite = Color{R: 1, G: 1, B: 1, A: 1}

// ParseColor accepts #rrggbb, #rrggbbaa, #rgb, #rgba (case-insensitive).
// Values outside [0,1] after normalization clamp at the edges; an
// invalid string returns OpaqueWhite.
func ParseColor(s string) Color {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return OpaqueWhite
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		return clampColor(Color{
			R: expandNibble(hex[0:1]),
			G: expandNibble(hex[1:2]),
			B: expandNibble(hex[2:3]),
			A: 1,
		})
	case 4:
		return clampColor(Color{
			R: expandNibble(hex[0:1]),
			G: expandNibble(hex[1:2]),
			B: expandNibble(hex[2:3]),
			A: expandNibble(hex[3:4]),
		})
	case 6:
		r, okR := hexByte(hex[0:2])
		g, okG := hexByte(hex[2:4])
		b, okB := hexByte(hex[4:6])
		if !okR || !okG || !okB {
			return OpaqueWhite
		}
		return clampColor(Color{R: r, G: g, B: b, A: 1})
	case 8:
		r, okR := hexByte(hex[0:2])
		g, okG := hexByte(hex[2:4])
		b, okB := hexByte(hex[4:6])
		a, okA := hexByte(hex[6:8])
		if !okR || !okG || !okB || !okA {
			return OpaqueWhite
		}
		return clampColor(Color{R: r, G: g, B: b, A: a})
	default:
		return OpaqueWhite
	}
}

func hexByte(s string) (float64, bool) {
	n, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, false
	}
	return float64(n) / 255.0, true
}

func expandNibble(s string) float64 {
	n, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 1
	}
	doubled := n*16 + n
	return float64(doubled) / 255.0
}

func clampColor(c Color) Color {
	return Color{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: clamp01(c.A),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// LayerFromZ maps a z-depth to an integer layer: layer = round(z*100).
func LayerFromZ(z float64) int32 {
	return int32(math.Round(z * 100))
}

// LinearizeChannel converts one sRGB-encoded channel (clamped to
// [0,1]) to linear space: c <= 0.04045 ? c/12.92 : ((c+0.055)/1.055)^2.4.
func LinearizeChannel(c float64) float64 {
	c = clamp01(c)
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// SRGBAndLinear returns both the sRGB-encoded (as given) and the
// linearized RGBA channels for a color. Alpha passes through
// unchanged in both.
func SRGBAndLinear(c Color) (srgb, linear [4]float64) {
	srgb = [4]float64{c.R, c.G, c.B, c.A}
	linear = [4]float64{
		LinearizeChannel(c.R),
		LinearizeChannel(c.G),
		LinearizeChannel(c.B),
		c.A,
	}
	return srgb, linear
}

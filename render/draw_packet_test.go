// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import "testing"

func TestToDrawPacketDefaultsToOpaqueWhiteWithoutColorDatum(t *testing.T) {
	p := ToDrawPacket(RenderCommand{Kind: KindRect})
	srgb, _ := p.Datum("srgb_rgba")
	got := srgb.([4]float64)
	if got != [4]float64{1, 1, 1, 1} {
		t.Fatalf("got %v, want opaque white", got)
	}
}

func TestToDrawPacketInjectsSRGBAndLinearFromColorDatum(t *testing.T) {
	cmd := RenderCommand{
		Kind: KindRect,
		Data: []Datum{{Name: "color", Value: "#808080"}},
	}
	p := ToDrawPacket(cmd)
	srgbAny, ok := p.Datum("srgb_rgba")
	if !ok {
		t.Fatalf("missing srgb_rgba datum")
	}
	linAny, ok := p.Datum("linear_rgba")
	if !ok {
		t.Fatalf("missing linear_rgba datum")
	}
	srgb := srgbAny.([4]float64)
	lin := linAny.([4]float64)
	if srgb == lin {
		t.Fatalf("expected linearized channels to differ from sRGB for mid-gray")
	}
}

func TestTranslatePassPreservesOrder(t *testing.T) {
	pass := RenderPassSnapshot{Commands: []RenderCommand{
		{Kind: KindRect, Layer: 1},
		{Kind: KindText, Layer: 0},
	}}
	packets := TranslatePass(pass)
	if len(packets) != 2 || packets[0].Kind != KindRect || packets[1].Kind != KindText {
		t.Fatalf("unexpected translation order: %+v", packets)
	}
}

// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

// DrawPacket is the backend-facing translation of a RenderCommand: the
// transform is flattened to its length-16 upload form and the data
// tuple is extended with the command's color, split into its
// sRGB-encoded and linearized channels.
//
// DrawPacket is the CPU-side, backend-agnostic payload produced by
// snapshot composition, ready for Backend.DrawPackets to consume; it
// carries no GPU buffer handles.
type DrawPacket struct {
	Kind      Kind
	Layer     int32
	SortKey   string
	Transform [16]float32
	Data      []Datum
}

// noColorSRGB and noColorLinear are the channels used when a command carries no
// "color" datum: opaque white in both color spaces.
var noColorSRGB, noColorLinear = SRGBAndLinear(OpaqueWhite)

// ToDrawPacket translates a RenderCommand into its DrawPacket,
// injecting "srgb_rgba" and "linear_rgba" data entries derived from
// the command's "color" datum (a #rrggbb[aa]-style string), defaulting
// to opaque white when absent or unparseable.
func ToDrawPacket(cmd RenderCommand) DrawPacket {
	srgb, linear := noColorSRGB, noColorLinear
	if v, ok := cmd.Datum("color"); ok {
		if s, ok := v.(string); ok {
			srgb, linear = SRGBAndLinear(ParseColor(s))
		}
	}

	data := make([]Datum, 0, len(cmd.Data)+2)
	data = append(data, cmd.Data...)
	data = append(data,
		Datum{Name: "srgb_rgba", Value: srgb},
		Datum{Name: "linear_rgba", Value: linear},
	)

	return DrawPacket{
		Kind:      cmd.Kind,
		Layer:     cmd.Layer,
		SortKey:   cmd.SortKey,
		Transform: [16]float32(cmd.Transform),
		Data:      data,
	}
}

// Datum returns the named datum's value and whether it is present.
func (p DrawPacket) Datum(name string) (any, bool) {
	for _, d := range p.Data {
		if d.Name == name {
			return d.Value, true
		}
	}
	return nil, false
}

// TranslatePass translates every command of a sorted
// RenderPassSnapshot into its DrawPacket, in order.
func TranslatePass(pass RenderPassSnapshot) []DrawPacket {
	packets := make([]DrawPacket, len(pass.Commands))
	for i, c := range pass.Commands {
		packets[i] = ToDrawPacket(c)
	}
	return packets
}

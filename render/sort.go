// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

import (
	"fmt"
	"sort"
)

// indexedCommand pairs a command with its original ordinal within the
// pass it is being sorted in, so the final tiebreaker is stable.
type indexedCommand struct {
	cmd     RenderCommand
	ordinal int
}

// sortCommands stably sorts commands by the tuple
// (layer, sort_key, kind, retention_key, stable_data_repr,
// stable_transform_repr, ordinal).
func sortCommands(cmds []RenderCommand) []RenderCommand {
	indexed := make([]indexedCommand, len(cmds))
	for i, c := range cmds {
		indexed[i] = indexedCommand{cmd: c, ordinal: i}
	}
	sort.SliceStable(indexed, func(i, j int) bool {
		a, b := indexed[i], indexed[j]
		if a.cmd.Layer != b.cmd.Layer {
			return a.cmd.Layer < b.cmd.Layer
		}
		if a.cmd.SortKey != b.cmd.SortKey {
			return a.cmd.SortKey < b.cmd.SortKey
		}
		if a.cmd.Kind != b.cmd.Kind {
			return a.cmd.Kind < b.cmd.Kind
		}
		aKey, _ := a.cmd.RetentionKey()
		bKey, _ := b.cmd.RetentionKey()
		if aKey != bKey {
			return aKey < bKey
		}
		aData, bData := stableDataRepr(a.cmd.Data), stableDataRepr(b.cmd.Data)
		if aData != bData {
			return aData < bData
		}
		aXform, bXform := stableTransformRepr(a.cmd.Transform), stableTransformRepr(b.cmd.Transform)
		if aXform != bXform {
			return aXform < bXform
		}
		return a.ordinal < b.ordinal
	})
	out := make([]RenderCommand, len(indexed))
	for i, ic := range indexed {
		out[i] = ic.cmd
	}
	return out
}

// stableDataRepr renders a command's data tuple into a comparable
// string: scalar (int/float/bool/string/nil) values print as-is,
// anything else (nested sequences, unknown types) falls back to its
// Go-syntax debug representation.
func stableDataRepr(data []Datum) string {
	s := ""
	for _, d := range data {
		s += d.Name + "=" + scalarRepr(d.Value) + ";"
	}
	return s
}

func scalarRepr(v any) string {
	switch t := v.(type) {
	case nil:
		return "<nil>"
	case bool, int64, int, float64, float32, string:
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%#v", t)
	}
}

// stableTransformRepr renders a Mat4 into its flat numeric debug form.
func stableTransformRepr(m Mat4) string {
	return fmt.Sprintf("%v", m)
}

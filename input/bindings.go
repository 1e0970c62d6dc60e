// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package input

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidArgument is returned when a binding is registered with an
// empty key or action name.
var ErrInvalidArgument = errors.New("input: invalid argument")

var lower = cases.Lower(language.Und)

// NormalizeKey lower-cases a key identifier using Unicode case
// folding, matching the "normalized lower-case identifiers"
// requirement for multi-byte key names.
func NormalizeKey(key string) string {
	return lower.String(key)
}

// source identifies one binding trigger, e.g. "key_down:w",
// "pointer_down:0", "char:x".
type source string

func keyDownSource(key string) source     { return source("key_down:" + NormalizeKey(key)) }
func pointerDownSource(b int) source      { return source("pointer_down:" + itoa(b)) }
func charSource(ch rune) source           { return source("char:" + string(ch)) }

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Bindings maps input sources to one or more action names. Registering
// more than one action for the same source is allowed; it is surfaced
// as a mapping conflict during resolution rather than rejected.
type Bindings struct {
	bySource map[source][]string
}

// NewBindings returns an empty binding set.
func NewBindings() *Bindings {
	return &Bindings{bySource: map[source][]string{}}
}

// BindKeyDown registers action to fire while key is held down.
func (b *Bindings) BindKeyDown(key, action string) error {
	if strings.TrimSpace(key) == "" || strings.TrimSpace(action) == "" {
		return ErrInvalidArgument
	}
	s := keyDownSource(key)
	b.bySource[s] = append(b.bySource[s], action)
	return nil
}

// BindPointerDown registers action to fire while pointer button is
// held down. Negative button indices are rejected.
func (b *Bindings) BindPointerDown(button int, action string) error {
	if button < 0 || strings.TrimSpace(action) == "" {
		return ErrInvalidArgument
	}
	s := pointerDownSource(button)
	b.bySource[s] = append(b.bySource[s], action)
	return nil
}

// BindChar registers action to fire on every frame in which ch appears
// in the frame's text input.
func (b *Bindings) BindChar(ch rune, action string) error {
	if ch == 0 || strings.TrimSpace(action) == "" {
		return ErrInvalidArgument
	}
	s := charSource(ch)
	b.bySource[s] = append(b.bySource[s], action)
	return nil
}

// actionsFor returns every action bound to source, and whether more
// than one action is bound (a mapping conflict).
func (b *Bindings) actionsFor(s source) (actions []string, conflict bool) {
	actions = b.bySource[s]
	return actions, len(actions) > 1
}

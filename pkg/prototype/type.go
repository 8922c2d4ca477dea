// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package prototype

import "strings"

// Type is a textual type reference, or none.
type Type struct {
	name string
}

// TypeOf returns a type reference for name. A blank name yields NoType.
func TypeOf(name string) Type {
	return Type{name: strings.TrimSpace(name)}
}

// NoType returns the absent type.
func NoType() Type {
	return Type{}
}

// NotNone reports whether the type is set.
func (t Type) NotNone() bool {
	return t.name != ""
}

// IsNone reports whether the type is absent.
func (t Type) IsNone() bool {
	return t.name == ""
}

func (t Type) String() string {
	return t.name
}

// Equal compares normalized names, so `\Foo\Bar` equals `Foo\Bar`.
func (t Type) Equal(other Type) bool {
	return normalizeTypeName(t.name) == normalizeTypeName(other.name)
}

func normalizeTypeName(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), `\`)
}

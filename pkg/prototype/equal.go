// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package prototype

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// compareOpts lets cmp descend into the unexported fields that keep
// prototypes immutable.
var compareOpts = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Equal reports whether two prototypes are structurally identical,
// anywhere in their subtrees.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, compareOpts...)
}

// Diff returns a human-readable difference between two prototypes, or ""
// when they are equal.
func Diff(a, b any) string {
	return cmp.Diff(a, b, compareOpts...)
}

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package types defines shared types used across codebuilder packages.
package types

// SymbolKind identifies the category of a PHP declaration.
type SymbolKind int

const (
	Namespace SymbolKind = iota // namespace declaration
	Use                         // use statement
	Class                       // class declaration
	Interface                   // interface declaration
	Trait                       // trait declaration
	Constant                    // class constant
	Property                    // class or trait property
	Method                      // method declaration
	Parameter                   // method parameter
)

// String returns the human-readable name of the symbol kind.
func (k SymbolKind) String() string {
	switch k {
	case Namespace:
		return "namespace"
	case Use:
		return "use"
	case Class:
		return "class"
	case Interface:
		return "interface"
	case Trait:
		return "trait"
	case Constant:
		return "constant"
	case Property:
		return "property"
	case Method:
		return "method"
	case Parameter:
		return "parameter"
	default:
		return "unknown"
	}
}

// IsClassLike reports whether the kind is a class, interface, or trait.
func (k SymbolKind) IsClassLike() bool {
	return k == Class || k == Interface || k == Trait
}

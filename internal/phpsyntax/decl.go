// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package phpsyntax

import (
	"strings"

	"github.com/petar-djukic/codebuilder/pkg/types"
)

// Namespace is a namespace declaration.
type Namespace struct {
	Name string
	// Span covers the whole declaration including its terminator or body.
	Span types.Span
	// NameSpan covers the namespace name. It is empty and positioned after
	// the keyword for an unnamed braced namespace.
	NameSpan types.Span
	// Body covers the braces of a braced namespace; nil for the semicolon
	// form.
	Body *types.Span
}

// Use is one `use` declaration, which may import several names.
type Use struct {
	Span    types.Span
	Clauses []UseClause
}

// UseClause is one imported name with its optional alias.
type UseClause struct {
	Name  string
	Alias string
	Span  types.Span
}

// Clause is an `extends` or `implements` list.
type Clause struct {
	Span  types.Span
	Names []string
}

// ClassLike is a class, interface, or trait declaration.
type ClassLike struct {
	Kind      types.SymbolKind
	Name      string
	Span      types.Span
	NameSpan  types.Span
	Modifiers []string
	// Extends is the base clause: the parent class, or the parent interfaces
	// of an interface.
	Extends    *Clause
	Implements *Clause
	// Body covers the declaration list including both braces.
	Body types.Span
	// Indent is the whitespace before the declaration on its line.
	Indent  string
	Members []Member
}

// OpenBrace returns the offset just after the opening brace of the body.
func (c ClassLike) OpenBrace() int { return c.Body.Start + 1 }

// CloseBrace returns the offset of the closing brace of the body.
func (c ClassLike) CloseBrace() int { return c.Body.End - 1 }

// MembersOf returns the members of kind in declaration order.
func (c ClassLike) MembersOf(kind types.SymbolKind) []Member {
	var result []Member
	for _, m := range c.Members {
		if m.Kind == kind {
			result = append(result, m)
		}
	}
	return result
}

// Member is a constant, property, or method declaration.
type Member struct {
	Kind types.SymbolKind
	Span types.Span
	// Anchor is where text following the member is inserted: the end of the
	// declaration, or the end of a comment trailing it on the same line.
	Anchor    int
	Indent    string
	Modifiers []string
	// Type is the declared type of a property declaration.
	Type string
	// Elements holds the declared names of a constant or property
	// declaration, one per comma-separated element.
	Elements []Element

	// Method fields.
	Name       string
	HeaderEnd  int
	Body       *types.Span
	ReturnType string
	Parameters []Parameter
}

// HasModifier reports whether the declaration carries modifier.
func (m Member) HasModifier(modifier string) bool {
	for _, mod := range m.Modifiers {
		if strings.EqualFold(mod, modifier) {
			return true
		}
	}
	return false
}

// Visibility returns the visibility modifier text, or the empty string.
func (m Member) Visibility() string {
	for _, mod := range m.Modifiers {
		switch strings.ToLower(mod) {
		case "public", "protected", "private":
			return strings.ToLower(mod)
		}
	}
	return ""
}

// Element finds the element named name.
func (m Member) Element(name string) (Element, bool) {
	for _, e := range m.Elements {
		if e.Name == name {
			return e, true
		}
	}
	return Element{}, false
}

// Element is one name of a constant or property declaration.
type Element struct {
	Name     string
	Span     types.Span
	Value    string
	HasValue bool
	// Shape is the node type of an element whose name could not be
	// resolved. It is empty when Name is set.
	Shape string
}

// Parameter is one formal parameter of a method.
type Parameter struct {
	Name        string
	Type        string
	Default     string
	HasDefault  bool
	ByReference bool
	Variadic    bool
}

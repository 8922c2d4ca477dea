// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package prototype

import (
	"fmt"

	"github.com/petar-djukic/codebuilder/pkg/types"
)

// UseStatement imports a fully qualified name, optionally under an alias.
type UseStatement struct {
	name  string
	alias string
}

// NewUseStatement returns an import of name. Leading backslashes are
// dropped, as PHP resolves use targets from the global namespace.
func NewUseStatement(name, alias string) UseStatement {
	return UseStatement{name: normalizeTypeName(name), alias: alias}
}

func (u UseStatement) Name() string  { return u.name }
func (u UseStatement) Alias() string { return u.alias }

func (u UseStatement) String() string {
	return u.name
}

// SourceCodeParams holds the parts of a source unit.
type SourceCodeParams struct {
	Namespace  string
	Uses       []UseStatement
	ClassLikes []ClassLike
}

// SourceCode describes one PHP file.
type SourceCode struct {
	namespace  string
	uses       Collection[UseStatement]
	classLikes Collection[ClassLike]
}

// NewSourceCode returns a source unit. Duplicate imports are dropped.
func NewSourceCode(p SourceCodeParams) SourceCode {
	return SourceCode{
		namespace:  normalizeTypeName(p.Namespace),
		uses:       NewCollection(p.Uses...),
		classLikes: NewCollection(p.ClassLikes...),
	}
}

// Namespace returns the namespace name, or "" for the global namespace.
func (s SourceCode) Namespace() string { return s.namespace }

func (s SourceCode) UseStatements() Collection[UseStatement] { return s.uses }

// ClassLikes returns classes, interfaces, and traits in declaration order.
func (s SourceCode) ClassLikes() Collection[ClassLike] { return s.classLikes }

func (s SourceCode) Classes() Collection[ClassLike]    { return s.ofKind(types.Class) }
func (s SourceCode) Interfaces() Collection[ClassLike] { return s.ofKind(types.Interface) }
func (s SourceCode) Traits() Collection[ClassLike]     { return s.ofKind(types.Trait) }

func (s SourceCode) ofKind(kind types.SymbolKind) Collection[ClassLike] {
	var items []ClassLike
	for _, c := range s.classLikes.items {
		if c.kind == kind {
			items = append(items, c)
		}
	}
	return Collection[ClassLike]{items: items}
}

// Validate checks every class-like in the unit.
func (s SourceCode) Validate() error {
	for _, c := range s.classLikes.items {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	for _, u := range s.uses.items {
		if u.name == "" {
			return fmt.Errorf("%w: empty use statement", ErrMalformed)
		}
	}
	return nil
}

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package prototype

import (
	"errors"
	"fmt"

	"github.com/petar-djukic/codebuilder/pkg/types"
)

// ErrMalformed is returned by Validate when a description breaks an
// invariant of its kind.
var ErrMalformed = errors.New("malformed description")

// Capabilities describes what a class-like kind may declare. Update and
// render code branch on these flags instead of on the kind itself.
type Capabilities struct {
	AllowsParent          bool // extends clause
	AllowsMultipleParents bool // extends A, B (interfaces)
	AllowsImplements      bool // implements clause (classes)
	AllowsProperties      bool
	AllowsConstants       bool
	AllowsAbstractMethods bool
	BodylessMethods       bool // every method is a signature
}

// CapabilitiesOf returns the capability descriptor of a class-like kind.
func CapabilitiesOf(kind types.SymbolKind) Capabilities {
	switch kind {
	case types.Class:
		return Capabilities{
			AllowsParent:          true,
			AllowsImplements:      true,
			AllowsProperties:      true,
			AllowsConstants:       true,
			AllowsAbstractMethods: true,
		}
	case types.Interface:
		return Capabilities{
			AllowsParent:          true,
			AllowsMultipleParents: true,
			AllowsConstants:       true,
			BodylessMethods:       true,
		}
	case types.Trait:
		return Capabilities{
			AllowsProperties:      true,
			AllowsConstants:       true,
			AllowsAbstractMethods: true,
		}
	default:
		return Capabilities{}
	}
}

// ClassLikeParams holds the optional attributes of a class-like.
type ClassLikeParams struct {
	// Parent is the extended class (classes only).
	Parent Type
	// Interfaces are implemented interfaces for a class, extended
	// interfaces for an interface.
	Interfaces []string
	Constants  []Constant
	Properties []Property
	Methods    []Method
	Abstract   bool
	Final      bool
	// SkipUpdate tells the update engine to leave the declaration alone.
	SkipUpdate bool
}

// ClassLike is a class, interface, or trait.
type ClassLike struct {
	kind       types.SymbolKind
	name       string
	parent     Type
	interfaces Names
	constants  Collection[Constant]
	properties Collection[Property]
	methods    Collection[Method]
	abstract   bool
	final      bool
	skipUpdate bool
}

// NewClassLike returns a class-like of the given kind. Member collections
// keep the first of any duplicate names.
func NewClassLike(kind types.SymbolKind, name string, p ClassLikeParams) ClassLike {
	return ClassLike{
		kind:       kind,
		name:       name,
		parent:     p.Parent,
		interfaces: NewNames(p.Interfaces...),
		constants:  NewCollection(p.Constants...),
		properties: NewCollection(p.Properties...),
		methods:    NewCollection(p.Methods...),
		abstract:   p.Abstract,
		final:      p.Final,
		skipUpdate: p.SkipUpdate,
	}
}

// NewClass returns a class.
func NewClass(name string, p ClassLikeParams) ClassLike {
	return NewClassLike(types.Class, name, p)
}

// NewInterface returns an interface.
func NewInterface(name string, p ClassLikeParams) ClassLike {
	return NewClassLike(types.Interface, name, p)
}

// NewTrait returns a trait.
func NewTrait(name string, p ClassLikeParams) ClassLike {
	return NewClassLike(types.Trait, name, p)
}

func (c ClassLike) Kind() types.SymbolKind           { return c.kind }
func (c ClassLike) Name() string                     { return c.name }
func (c ClassLike) Capabilities() Capabilities       { return CapabilitiesOf(c.kind) }
func (c ClassLike) ExtendsClass() Type               { return c.parent }
func (c ClassLike) ImplementsInterfaces() Names      { return c.interfaces }
func (c ClassLike) ExtendsInterfaces() Names         { return c.interfaces }
func (c ClassLike) Constants() Collection[Constant]  { return c.constants }
func (c ClassLike) Properties() Collection[Property] { return c.properties }
func (c ClassLike) Methods() Collection[Method]      { return c.methods }
func (c ClassLike) IsAbstract() bool                 { return c.abstract }
func (c ClassLike) IsFinal() bool                    { return c.final }

// ApplyUpdate reports whether the update engine should rewrite this
// declaration. It holds unless SkipUpdate was set; builders set that from
// their modification state.
func (c ClassLike) ApplyUpdate() bool { return !c.skipUpdate }

// Validate checks the kind's invariants.
func (c ClassLike) Validate() error {
	if c.name == "" {
		return fmt.Errorf("%w: %s has no name", ErrMalformed, c.kind)
	}
	if !c.kind.IsClassLike() {
		return fmt.Errorf("%w: %s is not class-like (%s)", ErrMalformed, c.name, c.kind)
	}
	caps := c.Capabilities()
	if c.parent.NotNone() && (!caps.AllowsParent || caps.AllowsMultipleParents) {
		return fmt.Errorf("%w: %s %s cannot extend a class", ErrMalformed, c.kind, c.name)
	}
	if c.interfaces.Len() > 0 && !caps.AllowsImplements && !caps.AllowsMultipleParents {
		return fmt.Errorf("%w: %s %s cannot declare interfaces", ErrMalformed, c.kind, c.name)
	}
	if c.properties.Len() > 0 && !caps.AllowsProperties {
		return fmt.Errorf("%w: %s %s cannot declare properties", ErrMalformed, c.kind, c.name)
	}
	if c.constants.Len() > 0 && !caps.AllowsConstants {
		return fmt.Errorf("%w: %s %s cannot declare constants", ErrMalformed, c.kind, c.name)
	}
	for _, m := range c.methods.All() {
		if m.name == "" {
			return fmt.Errorf("%w: %s %s has an unnamed method", ErrMalformed, c.kind, c.name)
		}
		if m.abstract && !caps.AllowsAbstractMethods {
			return fmt.Errorf("%w: %s %s cannot declare abstract method %s", ErrMalformed, c.kind, c.name, m.name)
		}
	}
	for _, p := range c.properties.All() {
		if p.name == "" {
			return fmt.Errorf("%w: %s %s has an unnamed property", ErrMalformed, c.kind, c.name)
		}
	}
	for _, k := range c.constants.All() {
		if k.name == "" {
			return fmt.Errorf("%w: %s %s has an unnamed constant", ErrMalformed, c.kind, c.name)
		}
	}
	return nil
}

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/petar-djukic/codebuilder/pkg/prototype"
	"github.com/petar-djukic/codebuilder/pkg/types"
)

// classLike holds the state shared by class, interface, and trait builders.
// P is the concrete owner type handed to member builders so that End()
// returns to it.
type classLike[P any] struct {
	kind       types.SymbolKind
	name       string
	extends    prototype.Type
	interfaces []string
	abstract   bool
	final      bool
	constants  registry[*ConstantBuilder[P]]
	properties registry[*PropertyBuilder[P]]
	methods    registry[*MethodBuilder[P]]
	tracker
}

func newClassLike[P any](kind types.SymbolKind, name string) classLike[P] {
	return classLike[P]{kind: kind, name: name}
}

// Name returns the declared name.
func (c *classLike[P]) Name() string { return c.name }

// Kind returns class, interface, or trait.
func (c *classLike[P]) Kind() types.SymbolKind { return c.kind }

// Build materializes the class-like. ApplyUpdate is set when the builder
// changed since its last snapshot.
func (c *classLike[P]) Build() prototype.ClassLike {
	return prototype.NewClassLike(c.kind, c.name, c.params(c.IsModified()))
}

// Snapshot records the current output of the class-like and its members.
func (c *classLike[P]) Snapshot() {
	for _, k := range c.constants.all() {
		k.Snapshot()
	}
	for _, p := range c.properties.all() {
		p.Snapshot()
	}
	for _, m := range c.methods.all() {
		m.Snapshot()
	}
	c.mark(c.proto())
}

// IsModified reports whether the built output differs from the last
// snapshot, anywhere in the subtree.
func (c *classLike[P]) IsModified() bool {
	return c.modified(c.proto())
}

// proto builds without consulting the modification state.
func (c *classLike[P]) proto() prototype.ClassLike {
	return prototype.NewClassLike(c.kind, c.name, c.params(false))
}

func (c *classLike[P]) params(applyUpdate bool) prototype.ClassLikeParams {
	p := prototype.ClassLikeParams{
		Parent:     c.extends,
		Interfaces: c.interfaces,
		Abstract:   c.abstract,
		Final:      c.final,
		SkipUpdate: !applyUpdate,
	}
	for _, k := range c.constants.all() {
		p.Constants = append(p.Constants, k.Build())
	}
	for _, pb := range c.properties.all() {
		p.Properties = append(p.Properties, pb.Build())
	}
	for _, m := range c.methods.all() {
		p.Methods = append(p.Methods, m.Build())
	}
	return p
}

func (c *classLike[P]) constant(owner P, name string) *ConstantBuilder[P] {
	return c.constants.lookup(name, func() *ConstantBuilder[P] {
		return &ConstantBuilder[P]{owner: owner, name: name}
	})
}

func (c *classLike[P]) property(owner P, name string) *PropertyBuilder[P] {
	return c.properties.lookup(name, func() *PropertyBuilder[P] {
		return &PropertyBuilder[P]{owner: owner, name: name}
	})
}

func (c *classLike[P]) method(owner P, name string) *MethodBuilder[P] {
	return c.methods.lookup(name, func() *MethodBuilder[P] {
		return &MethodBuilder[P]{owner: owner, name: name}
	})
}

// ClassBuilder assembles a class.
type ClassBuilder struct {
	classLike[*ClassBuilder]
	parent *SourceCodeBuilder
}

// Extends sets the parent class.
func (b *ClassBuilder) Extends(class string) *ClassBuilder {
	b.extends = prototype.TypeOf(class)
	return b
}

// Implements adds implemented interfaces.
func (b *ClassBuilder) Implements(interfaces ...string) *ClassBuilder {
	b.interfaces = append(b.interfaces, interfaces...)
	return b
}

// Abstract marks the class abstract.
func (b *ClassBuilder) Abstract() *ClassBuilder {
	b.abstract = true
	return b
}

// Final marks the class final.
func (b *ClassBuilder) Final() *ClassBuilder {
	b.final = true
	return b
}

// Constant returns the constant builder called name, creating it if needed.
func (b *ClassBuilder) Constant(name string) *ConstantBuilder[*ClassBuilder] {
	return b.constant(b, name)
}

// Property returns the property builder called name, creating it if needed.
func (b *ClassBuilder) Property(name string) *PropertyBuilder[*ClassBuilder] {
	return b.property(b, name)
}

// Method returns the method builder called name, creating it if needed.
func (b *ClassBuilder) Method(name string) *MethodBuilder[*ClassBuilder] {
	return b.method(b, name)
}

// Add moves a member builder created under another class into this one.
func (b *ClassBuilder) Add(child any) error {
	switch c := child.(type) {
	case *MethodBuilder[*ClassBuilder]:
		c.owner.methods.remove(c.name)
		c.owner = b
		b.methods.put(c.name, c)
	case *PropertyBuilder[*ClassBuilder]:
		c.owner.properties.remove(c.name)
		c.owner = b
		b.properties.put(c.name, c)
	case *ConstantBuilder[*ClassBuilder]:
		c.owner.constants.remove(c.name)
		c.owner = b
		b.constants.put(c.name, c)
	default:
		return fmt.Errorf("%w: %T cannot be added to class %s", ErrInvalidChild, child, b.name)
	}
	return nil
}

// End returns the owning source code builder.
func (b *ClassBuilder) End() *SourceCodeBuilder {
	return b.parent
}

// InterfaceBuilder assembles an interface.
type InterfaceBuilder struct {
	classLike[*InterfaceBuilder]
	parent *SourceCodeBuilder
}

// Extends adds extended interfaces.
func (b *InterfaceBuilder) Extends(interfaces ...string) *InterfaceBuilder {
	b.interfaces = append(b.interfaces, interfaces...)
	return b
}

// Constant returns the constant builder called name, creating it if needed.
func (b *InterfaceBuilder) Constant(name string) *ConstantBuilder[*InterfaceBuilder] {
	return b.constant(b, name)
}

// Method returns the method builder called name, creating it if needed.
func (b *InterfaceBuilder) Method(name string) *MethodBuilder[*InterfaceBuilder] {
	return b.method(b, name)
}

// Add moves a method or constant builder created under another interface
// into this one.
func (b *InterfaceBuilder) Add(child any) error {
	switch c := child.(type) {
	case *MethodBuilder[*InterfaceBuilder]:
		c.owner.methods.remove(c.name)
		c.owner = b
		b.methods.put(c.name, c)
	case *ConstantBuilder[*InterfaceBuilder]:
		c.owner.constants.remove(c.name)
		c.owner = b
		b.constants.put(c.name, c)
	default:
		return fmt.Errorf("%w: %T cannot be added to interface %s", ErrInvalidChild, child, b.name)
	}
	return nil
}

// End returns the owning source code builder.
func (b *InterfaceBuilder) End() *SourceCodeBuilder {
	return b.parent
}

// TraitBuilder assembles a trait.
type TraitBuilder struct {
	classLike[*TraitBuilder]
	parent *SourceCodeBuilder
}

// Constant returns the constant builder called name, creating it if needed.
func (b *TraitBuilder) Constant(name string) *ConstantBuilder[*TraitBuilder] {
	return b.constant(b, name)
}

// Property returns the property builder called name, creating it if needed.
func (b *TraitBuilder) Property(name string) *PropertyBuilder[*TraitBuilder] {
	return b.property(b, name)
}

// Method returns the method builder called name, creating it if needed.
func (b *TraitBuilder) Method(name string) *MethodBuilder[*TraitBuilder] {
	return b.method(b, name)
}

// Add moves a member builder created under another trait into this one.
func (b *TraitBuilder) Add(child any) error {
	switch c := child.(type) {
	case *MethodBuilder[*TraitBuilder]:
		c.owner.methods.remove(c.name)
		c.owner = b
		b.methods.put(c.name, c)
	case *PropertyBuilder[*TraitBuilder]:
		c.owner.properties.remove(c.name)
		c.owner = b
		b.properties.put(c.name, c)
	case *ConstantBuilder[*TraitBuilder]:
		c.owner.constants.remove(c.name)
		c.owner = b
		b.constants.put(c.name, c)
	default:
		return fmt.Errorf("%w: %T cannot be added to trait %s", ErrInvalidChild, child, b.name)
	}
	return nil
}

// End returns the owning source code builder.
func (b *TraitBuilder) End() *SourceCodeBuilder {
	return b.parent
}

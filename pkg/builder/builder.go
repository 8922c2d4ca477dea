// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package builder provides a fluent, mutable API for assembling
// prototype.SourceCode descriptions.
//
// Child lookups are idempotent: asking a parent for a child it already holds
// returns the same builder, so one description can be assembled from several
// call sites. Class, Interface, and Trait panic when the name is already
// taken by another kind; the Lookup variants return ErrInvalidChild.
//
// Every builder tracks whether its built output changed since the last
// Snapshot. Class-like builders built with no change set SkipUpdate on the
// prototypes they produce.
//
// Builders are not safe for concurrent use.
package builder

import (
	"errors"
	"fmt"

	"github.com/petar-djukic/codebuilder/pkg/prototype"
	"github.com/petar-djukic/codebuilder/pkg/types"
)

// ErrInvalidChild is returned by Add when the child builder cannot live
// under the receiver, e.g. a property added to an interface.
var ErrInvalidChild = errors.New("invalid child builder")

// tracker remembers the built output captured by the last Snapshot.
type tracker struct {
	baseline any
	taken    bool
}

func (t *tracker) mark(current any) {
	t.baseline = current
	t.taken = true
}

func (t *tracker) modified(current any) bool {
	return !t.taken || !prototype.Equal(t.baseline, current)
}

// registry is an insertion-ordered map of named child builders.
type registry[T any] struct {
	order  []string
	byName map[string]T
}

func (r *registry[T]) get(name string) (T, bool) {
	b, ok := r.byName[name]
	return b, ok
}

// lookup returns the child called name, creating it on a miss.
func (r *registry[T]) lookup(name string, create func() T) T {
	if b, ok := r.byName[name]; ok {
		return b
	}
	b := create()
	r.put(name, b)
	return b
}

// put registers b under name, replacing any child of that name in place.
func (r *registry[T]) put(name string, b T) {
	if r.byName == nil {
		r.byName = make(map[string]T)
	}
	if _, ok := r.byName[name]; !ok {
		r.order = append(r.order, name)
	}
	r.byName[name] = b
}

func (r *registry[T]) remove(name string) {
	if _, ok := r.byName[name]; !ok {
		return
	}
	delete(r.byName, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

func (r *registry[T]) all() []T {
	result := make([]T, 0, len(r.order))
	for _, name := range r.order {
		result = append(result, r.byName[name])
	}
	return result
}

// classLikeNode is implemented by the class, interface, and trait builders.
type classLikeNode interface {
	Name() string
	Kind() types.SymbolKind
	Snapshot()
	IsModified() bool
	Build() prototype.ClassLike
	proto() prototype.ClassLike
}

// SourceCodeBuilder assembles a prototype.SourceCode.
type SourceCodeBuilder struct {
	namespace  string
	uses       []prototype.UseStatement
	classLikes registry[classLikeNode]
	tracker
}

// New returns an empty source code builder.
func New() *SourceCodeBuilder {
	return &SourceCodeBuilder{}
}

// Namespace sets the namespace of the unit.
func (b *SourceCodeBuilder) Namespace(name string) *SourceCodeBuilder {
	b.namespace = name
	return b
}

// Use adds an import. Repeated imports of the same name are ignored.
func (b *SourceCodeBuilder) Use(name string) *SourceCodeBuilder {
	return b.UseAs(name, "")
}

// UseAs adds an aliased import.
func (b *SourceCodeBuilder) UseAs(name, alias string) *SourceCodeBuilder {
	b.uses = append(b.uses, prototype.NewUseStatement(name, alias))
	return b
}

// Class returns the class builder called name, creating it if needed.
// It panics if name is already used by an interface or trait; LookupClass
// reports that as an error instead.
func (b *SourceCodeBuilder) Class(name string) *ClassBuilder {
	return must(b.LookupClass(name))
}

// LookupClass returns the class builder called name, creating it if
// needed. It fails with ErrInvalidChild if name belongs to another kind.
func (b *SourceCodeBuilder) LookupClass(name string) (*ClassBuilder, error) {
	node := b.classLikes.lookup(name, func() classLikeNode {
		return &ClassBuilder{classLike: newClassLike[*ClassBuilder](types.Class, name), parent: b}
	})
	cb, ok := node.(*ClassBuilder)
	if !ok {
		return nil, kindClash(name, types.Class, node.Kind())
	}
	return cb, nil
}

// Interface returns the interface builder called name, creating it if
// needed. It panics if name is already used by a class or trait.
func (b *SourceCodeBuilder) Interface(name string) *InterfaceBuilder {
	return must(b.LookupInterface(name))
}

// LookupInterface is Interface with the kind clash returned as an error.
func (b *SourceCodeBuilder) LookupInterface(name string) (*InterfaceBuilder, error) {
	node := b.classLikes.lookup(name, func() classLikeNode {
		return &InterfaceBuilder{classLike: newClassLike[*InterfaceBuilder](types.Interface, name), parent: b}
	})
	ib, ok := node.(*InterfaceBuilder)
	if !ok {
		return nil, kindClash(name, types.Interface, node.Kind())
	}
	return ib, nil
}

// Trait returns the trait builder called name, creating it if needed. It
// panics if name is already used by a class or interface.
func (b *SourceCodeBuilder) Trait(name string) *TraitBuilder {
	return must(b.LookupTrait(name))
}

// LookupTrait is Trait with the kind clash returned as an error.
func (b *SourceCodeBuilder) LookupTrait(name string) (*TraitBuilder, error) {
	node := b.classLikes.lookup(name, func() classLikeNode {
		return &TraitBuilder{classLike: newClassLike[*TraitBuilder](types.Trait, name), parent: b}
	})
	tb, ok := node.(*TraitBuilder)
	if !ok {
		return nil, kindClash(name, types.Trait, node.Kind())
	}
	return tb, nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Add attaches a class-like builder created under another source code
// builder. The child is moved, not copied: later lookups by its name return
// the same instance.
func (b *SourceCodeBuilder) Add(child any) error {
	switch c := child.(type) {
	case *ClassBuilder:
		c.parent.classLikes.remove(c.name)
		c.parent = b
		b.classLikes.put(c.name, c)
	case *InterfaceBuilder:
		c.parent.classLikes.remove(c.name)
		c.parent = b
		b.classLikes.put(c.name, c)
	case *TraitBuilder:
		c.parent.classLikes.remove(c.name)
		c.parent = b
		b.classLikes.put(c.name, c)
	default:
		return fmt.Errorf("%w: %T cannot be added to a source code builder", ErrInvalidChild, child)
	}
	return nil
}

// Build materializes the description.
func (b *SourceCodeBuilder) Build() prototype.SourceCode {
	return b.build(true)
}

// Snapshot records the current output, for this builder and every
// descendant, as the baseline for IsModified.
func (b *SourceCodeBuilder) Snapshot() {
	for _, c := range b.classLikes.all() {
		c.Snapshot()
	}
	b.mark(b.build(false))
}

// IsModified reports whether the built output differs from the last
// snapshot. A builder that was never snapshotted is modified.
func (b *SourceCodeBuilder) IsModified() bool {
	return b.modified(b.build(false))
}

func (b *SourceCodeBuilder) build(withPolicy bool) prototype.SourceCode {
	nodes := b.classLikes.all()
	classLikes := make([]prototype.ClassLike, len(nodes))
	for i, n := range nodes {
		if withPolicy {
			classLikes[i] = n.Build()
		} else {
			classLikes[i] = n.proto()
		}
	}
	return prototype.NewSourceCode(prototype.SourceCodeParams{
		Namespace:  b.namespace,
		Uses:       b.uses,
		ClassLikes: classLikes,
	})
}

func kindClash(name string, want, have types.SymbolKind) error {
	return fmt.Errorf("%w: %q is already declared as a %s, not a %s", ErrInvalidChild, name, have, want)
}

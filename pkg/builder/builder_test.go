// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/codebuilder/pkg/prototype"
	"github.com/petar-djukic/codebuilder/pkg/types"
)

func TestSourceCodeBuilder_NamespaceAndUses(t *testing.T) {
	b := New()
	b.Namespace("Barfoo")
	b.Use("Foobar")
	b.Use("Barfoo")
	b.Use("Foobar")

	code := b.Build()
	assert.Equal(t, "Barfoo", code.Namespace())
	assert.Equal(t, 2, code.UseStatements().Len())
	assert.Equal(t, "Barfoo", code.UseStatements().Sorted().First().Name())
	assert.Equal(t, "Foobar", code.UseStatements().First().Name())
}

func TestSourceCodeBuilder_UseAs(t *testing.T) {
	code := New().UseAs(`Ramsey\Uuid\Uuid`, "Id").Build()
	u := code.UseStatements().First()
	assert.Equal(t, `Ramsey\Uuid\Uuid`, u.Name())
	assert.Equal(t, "Id", u.Alias())
}

func TestClassBuilder_Dog(t *testing.T) {
	b := New()
	b.Class("Dog").
		Extends("Canine").
		Implements("Teeth").
		Property("one").End().
		Property("two").End().
		Method("method1").End().
		Method("method2")

	code := b.Build()
	dog, ok := code.Classes().Get("Dog")
	require.True(t, ok)

	assert.Equal(t, "Canine", dog.ExtendsClass().String())
	assert.Equal(t, "Teeth", dog.ImplementsInterfaces().First())
	assert.Equal(t, "one", dog.Properties().First().Name())
	assert.Equal(t, "two", dog.Properties().Last().Name())
	assert.Equal(t, "method1", dog.Methods().First().Name())
	assert.Equal(t, "method2", dog.Methods().Last().Name())
}

func TestPropertyBuilder_TypeAndNullDefault(t *testing.T) {
	b := New()
	b.Class("Dog").Property("one").Type("string").DefaultValue(nil)

	dog, _ := b.Build().Classes().Get("Dog")
	one := dog.Properties().First()
	assert.Equal(t, "string", one.Type().String())
	assert.Equal(t, "null", one.DefaultValue().Export())
}

func TestMethodBuilder_Attributes(t *testing.T) {
	b := New()
	b.Class("Dog").Method("bark").
		Visibility(prototype.Private).
		ReturnType("string").
		Static().
		Body().Line("$a = 1;").Line("return 'woof';").End().
		Parameter("times").Type("int").DefaultValue(1).End().
		Parameter("rest").Variadic()

	dog, _ := b.Build().Classes().Get("Dog")
	m := dog.Methods().First()
	assert.Equal(t, prototype.Private, m.Visibility())
	assert.Equal(t, "string", m.ReturnType().String())
	assert.True(t, m.IsStatic())
	assert.False(t, m.IsAbstract())
	assert.Equal(t, []string{"$a = 1;", "return 'woof';"}, m.Body().Lines())
	assert.Equal(t, []string{"times", "rest"}, m.Parameters().Names())

	times, _ := m.Parameters().Get("times")
	assert.Equal(t, "int", times.Type().String())
	assert.Equal(t, "1", times.DefaultValue().Export())
	rest, _ := m.Parameters().Get("rest")
	assert.True(t, rest.IsVariadic())
}

func TestMethodBuilder_Bodies(t *testing.T) {
	b := New()
	c := b.Class("A")
	c.Method("empty")
	c.Method("none").NoBody()
	c.Method("abstract").Abstract()

	a, _ := b.Build().Classes().Get("A")
	empty, _ := a.Methods().Get("empty")
	none, _ := a.Methods().Get("none")
	abstract, _ := a.Methods().Get("abstract")

	assert.True(t, empty.Body().IsEmpty())
	assert.True(t, none.Body().IsNone())
	assert.True(t, abstract.IsAbstract())
}

func TestBuilder_ChildIdentity(t *testing.T) {
	b := New()
	assert.Same(t, b.Class("Dog"), b.Class("Dog"))
	assert.Same(t, b.Interface("Walker"), b.Interface("Walker"))
	assert.Same(t, b.Trait("Legs"), b.Trait("Legs"))

	c := b.Class("Dog")
	assert.Same(t, c.Method("bark"), c.Method("bark"))
	assert.Same(t, c.Property("name"), c.Property("name"))
	assert.Same(t, c.Constant("LEGS"), c.Constant("LEGS"))

	m := c.Method("bark")
	assert.Same(t, m.Parameter("times"), m.Parameter("times"))
	assert.Same(t, m.Body(), m.Body())
	assert.Same(t, c, m.End())
	assert.Same(t, b, c.End())
}

func TestClassBuilder_AddMethod(t *testing.T) {
	b := New()
	other := New()
	method := other.Class("Other").Method("barfoo")

	dog := b.Class("Dog")
	require.NoError(t, dog.Add(method))

	assert.Same(t, method, dog.Method("barfoo"))
	assert.Same(t, dog, method.End())
	other1, _ := other.Build().Classes().Get("Other")
	assert.False(t, other1.Methods().Has("barfoo"), "add moves the child")
}

func TestClassBuilder_AddProperty(t *testing.T) {
	b := New()
	property := New().Class("Other").Property("barfoo").Type("int")

	dog := b.Class("Dog")
	require.NoError(t, dog.Add(property))
	assert.Same(t, property, dog.Property("barfoo"))

	built, _ := b.Build().Classes().Get("Dog")
	p, ok := built.Properties().Get("barfoo")
	require.True(t, ok)
	assert.Equal(t, "int", p.Type().String())
}

func TestAdd_ReplacesSameName(t *testing.T) {
	b := New()
	dog := b.Class("Dog")
	original := dog.Method("bark")
	replacement := New().Class("X").Method("bark").ReturnType("void")

	require.NoError(t, dog.Add(replacement))
	assert.NotSame(t, original, dog.Method("bark"))
	assert.Same(t, replacement, dog.Method("bark"))

	built, _ := b.Build().Classes().Get("Dog")
	assert.Equal(t, 1, built.Methods().Len())
	assert.Equal(t, "void", built.Methods().First().ReturnType().String())
}

func TestAdd_InvalidChild(t *testing.T) {
	b := New()
	classProperty := New().Class("X").Property("p")
	traitMethod := New().Trait("T").Method("m")

	assert.ErrorIs(t, b.Interface("I").Add(classProperty), ErrInvalidChild)
	assert.ErrorIs(t, b.Class("C").Add(traitMethod), ErrInvalidChild)
	assert.ErrorIs(t, b.Class("C").Add("not a builder"), ErrInvalidChild)
	assert.ErrorIs(t, b.Class("C").Method("m").Add(classProperty), ErrInvalidChild)
	assert.ErrorIs(t, b.Add(classProperty), ErrInvalidChild)
}

func TestSourceCodeBuilder_AddClass(t *testing.T) {
	from := New()
	dog := from.Class("Dog")
	to := New()

	require.NoError(t, to.Add(dog))
	assert.Same(t, dog, to.Class("Dog"))
	assert.Same(t, to, dog.End())
	assert.Equal(t, 0, from.Build().ClassLikes().Len())
}

func TestSourceCodeBuilder_KindClashPanics(t *testing.T) {
	b := New()
	b.Class("Dog")
	assert.Panics(t, func() { b.Interface("Dog") })
	assert.Panics(t, func() { b.Trait("Dog") })
}

func TestSourceCodeBuilder_Lookup(t *testing.T) {
	b := New()
	dog, err := b.LookupClass("Dog")
	require.NoError(t, err)
	assert.Same(t, dog, b.Class("Dog"))

	_, err = b.LookupInterface("Dog")
	assert.ErrorIs(t, err, ErrInvalidChild)
	_, err = b.LookupTrait("Dog")
	assert.ErrorIs(t, err, ErrInvalidChild)

	walker, err := b.LookupInterface("Walker")
	require.NoError(t, err)
	assert.Same(t, walker, b.Interface("Walker"))
	_, err = b.LookupClass("Walker")
	assert.ErrorIs(t, err, ErrInvalidChild)
}

func TestInterfaceAndTrait(t *testing.T) {
	b := New()
	b.Interface("Walker").Extends("Mover", "Thing").Method("walk").ReturnType("void")
	b.Trait("Legs").Property("count").Type("int").DefaultValue(4).End().Method("legs")

	code := b.Build()
	walker, ok := code.Interfaces().Get("Walker")
	require.True(t, ok)
	assert.Equal(t, types.Interface, walker.Kind())
	assert.Equal(t, []string{"Mover", "Thing"}, walker.ExtendsInterfaces().All())

	legs, ok := code.Traits().Get("Legs")
	require.True(t, ok)
	assert.Equal(t, "4", legs.Properties().First().DefaultValue().Export())
	assert.NoError(t, code.Validate())
}

func TestModificationTracking(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(b *SourceCodeBuilder)
		change   func(b *SourceCodeBuilder)
		modified bool
	}{
		{
			name:     "nothing changed",
			setup:    func(b *SourceCodeBuilder) { b.Class("Dog").Method("bark") },
			change:   func(b *SourceCodeBuilder) {},
			modified: false,
		},
		{
			name:     "lookup of existing child",
			setup:    func(b *SourceCodeBuilder) { b.Class("Dog").Method("bark") },
			change:   func(b *SourceCodeBuilder) { b.Class("Dog").Method("bark") },
			modified: false,
		},
		{
			name:     "same value set again",
			setup:    func(b *SourceCodeBuilder) { b.Class("Dog").Property("one").Type("string") },
			change:   func(b *SourceCodeBuilder) { b.Class("Dog").Property("one").Type("string") },
			modified: false,
		},
		{
			name:     "new class",
			setup:    func(b *SourceCodeBuilder) { b.Class("Dog") },
			change:   func(b *SourceCodeBuilder) { b.Class("Cat") },
			modified: true,
		},
		{
			name:     "new method",
			setup:    func(b *SourceCodeBuilder) { b.Class("Dog") },
			change:   func(b *SourceCodeBuilder) { b.Class("Dog").Method("bark") },
			modified: true,
		},
		{
			name:     "property type changed",
			setup:    func(b *SourceCodeBuilder) { b.Class("Dog").Property("one").Type("string") },
			change:   func(b *SourceCodeBuilder) { b.Class("Dog").Property("one").Type("int") },
			modified: true,
		},
		{
			name:     "parameter added",
			setup:    func(b *SourceCodeBuilder) { b.Class("Dog").Method("bark") },
			change:   func(b *SourceCodeBuilder) { b.Class("Dog").Method("bark").Parameter("times") },
			modified: true,
		},
		{
			name:     "parameter type changed",
			setup:    func(b *SourceCodeBuilder) { b.Class("Dog").Method("bark").Parameter("times") },
			change:   func(b *SourceCodeBuilder) { b.Class("Dog").Method("bark").Parameter("times").Type("int") },
			modified: true,
		},
		{
			name:     "body line added",
			setup:    func(b *SourceCodeBuilder) { b.Class("Dog").Method("bark") },
			change:   func(b *SourceCodeBuilder) { b.Class("Dog").Method("bark").Body().Line("return;") },
			modified: true,
		},
		{
			name:     "use added",
			setup:    func(b *SourceCodeBuilder) { b.Use("Foo") },
			change:   func(b *SourceCodeBuilder) { b.Use("Bar") },
			modified: true,
		},
		{
			name:     "namespace changed",
			setup:    func(b *SourceCodeBuilder) { b.Namespace("A") },
			change:   func(b *SourceCodeBuilder) { b.Namespace("B") },
			modified: true,
		},
		{
			name:     "interface extends added",
			setup:    func(b *SourceCodeBuilder) { b.Interface("I") },
			change:   func(b *SourceCodeBuilder) { b.Interface("I").Extends("J") },
			modified: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			tt.setup(b)
			assert.True(t, b.IsModified(), "never snapshotted")

			b.Snapshot()
			assert.False(t, b.IsModified())

			tt.change(b)
			assert.Equal(t, tt.modified, b.IsModified())
		})
	}
}

func TestModificationTracking_Descendants(t *testing.T) {
	b := New()
	dog := b.Class("Dog")
	bark := dog.Method("bark")
	times := bark.Parameter("times")
	b.Snapshot()

	assert.False(t, dog.IsModified())
	assert.False(t, bark.IsModified())
	assert.False(t, times.IsModified())

	times.Type("int")
	assert.True(t, times.IsModified())
	assert.True(t, bark.IsModified())
	assert.True(t, dog.IsModified())
	assert.True(t, b.IsModified())
}

func TestBuild_ApplyUpdatePolicy(t *testing.T) {
	b := New()
	b.Class("Dog").Method("bark")
	b.Class("Cat").Method("meow")
	b.Snapshot()

	b.Class("Dog").Method("bark").ReturnType("void")

	code := b.Build()
	dog, _ := code.Classes().Get("Dog")
	cat, _ := code.Classes().Get("Cat")
	assert.True(t, dog.ApplyUpdate(), "changed since snapshot")
	assert.False(t, cat.ApplyUpdate(), "unchanged since snapshot")
}

func TestBuild_NeverSnapshottedAppliesUpdate(t *testing.T) {
	b := New()
	b.Class("Dog")
	dog, _ := b.Build().Classes().Get("Dog")
	assert.True(t, dog.ApplyUpdate())
}

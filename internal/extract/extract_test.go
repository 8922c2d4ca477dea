// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petar-djukic/codebuilder/internal/phpsyntax"
	"github.com/petar-djukic/codebuilder/internal/render"
	"github.com/petar-djukic/codebuilder/pkg/builder"
	"github.com/petar-djukic/codebuilder/pkg/prototype"
	"github.com/petar-djukic/codebuilder/pkg/types"
)

const petSource = `<?php

namespace Zoo;

use Zoo\Food as Meal;

abstract class Dog extends Canine implements Pet
{
    const LEGS = 4;

    private static ?string $name = null;

    protected $age;

    public function bark(int $times = 1, &...$out): string
    {
        if ($times > 1) {
            return 'woof';
        }

        return 'wuf';
    }

    abstract protected function sit();
}

interface Pet extends Named
{
    public function pet(): void;
}
`

func parse(t *testing.T, src string) *phpsyntax.Tree {
	t.Helper()
	tree, err := phpsyntax.Parse(context.Background(), []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func TestSourceCode(t *testing.T) {
	code, err := SourceCode(parse(t, petSource))
	require.NoError(t, err)

	assert.Equal(t, "Zoo", code.Namespace())
	require.Equal(t, 1, code.UseStatements().Len())
	assert.Equal(t, `Zoo\Food`, code.UseStatements().First().Name())
	assert.Equal(t, "Meal", code.UseStatements().First().Alias())

	dog, ok := code.Classes().Get("Dog")
	require.True(t, ok)
	assert.True(t, dog.IsAbstract())
	assert.Equal(t, "Canine", dog.ExtendsClass().String())
	assert.Equal(t, []string{"Pet"}, dog.ImplementsInterfaces().All())

	legs := dog.Constants().First()
	assert.Equal(t, "LEGS", legs.Name())
	assert.Equal(t, "4", legs.Value().Export())

	name, _ := dog.Properties().Get("name")
	assert.Equal(t, prototype.Private, name.Visibility())
	assert.True(t, name.IsStatic())
	assert.Equal(t, "?string", name.Type().String())
	assert.Equal(t, "null", name.DefaultValue().Export())

	age, _ := dog.Properties().Get("age")
	assert.Equal(t, prototype.Protected, age.Visibility())
	assert.True(t, age.Type().IsNone())
	assert.True(t, age.DefaultValue().IsNone())

	bark, _ := dog.Methods().Get("bark")
	assert.Equal(t, "string", bark.ReturnType().String())
	assert.Equal(t, []string{"if ($times > 1) {", "    return 'woof';", "}", "", "return 'wuf';"}, bark.Body().Lines())
	times, _ := bark.Parameters().Get("times")
	assert.Equal(t, "1", times.DefaultValue().Export())
	out, _ := bark.Parameters().Get("out")
	assert.True(t, out.ByReference())
	assert.True(t, out.IsVariadic())

	sit, _ := dog.Methods().Get("sit")
	assert.True(t, sit.IsAbstract())
	assert.True(t, sit.Body().IsNone())
	assert.Equal(t, prototype.Protected, sit.Visibility())

	pet, ok := code.Interfaces().Get("Pet")
	require.True(t, ok)
	assert.Equal(t, []string{"Named"}, pet.ExtendsInterfaces().All())
	assert.True(t, pet.Methods().First().Body().IsNone())
}

func TestSourceCode_RoundTrip(t *testing.T) {
	b := builder.New().Namespace("Zoo").Use(`Zoo\Food`)
	dog := b.Class("Dog").Extends("Canine")
	dog.Constant("LEGS").Value(4)
	dog.Property("name").Type("string").DefaultValue("Rex")
	dog.Method("bark").ReturnType("string").
		Parameter("loud").Type("bool").DefaultValue(false).End().
		Body().Lines("if ($loud) {", "    return 'WOOF';", "}", "", "return 'woof';")
	dog.Method("sleep")
	b.Interface("Pet").Method("pet")
	b.Trait("Legs").Property("legs").DefaultValue(4)

	r := render.New("")
	first := r.SourceCode(b.Build())

	code, err := SourceCode(parse(t, first))
	require.NoError(t, err)
	second := r.SourceCode(code)
	assert.Equal(t, first, second)

	again, err := SourceCode(parse(t, second))
	require.NoError(t, err)
	assert.Equal(t, second, r.SourceCode(again))
}

func TestClassLike_UnsupportedShape(t *testing.T) {
	tree := parse(t, "<?php\nclass A\n{\n}\n")
	node := phpsyntax.ClassLike{
		Kind: types.Class,
		Name: "A",
		Members: []phpsyntax.Member{{
			Kind:     types.Property,
			Elements: []phpsyntax.Element{{Shape: "dynamic_variable_name"}},
		}},
	}

	_, err := ClassLike(tree, node)
	assert.ErrorIs(t, err, phpsyntax.ErrUnsupportedShape)
}

func TestBodyLines(t *testing.T) {
	tests := []struct {
		name  string
		inner string
		want  []string
	}{
		{name: "empty", inner: "\n    ", want: nil},
		{name: "single", inner: "\n        return 1;\n    ", want: []string{"return 1;"}},
		{
			name:  "nested indent kept",
			inner: "\n        if ($a) {\n            b();\n        }\n    ",
			want:  []string{"if ($a) {", "    b();", "}"},
		},
		{
			name:  "inner blank lines kept",
			inner: "\n\n        a();\n   \n        b();\n\n    ",
			want:  []string{"a();", "", "b();"},
		},
		{
			name:  "tabs",
			inner: "\n\t\ta();\n\t\t\tb();\n\t",
			want:  []string{"a();", "\tb();"},
		},
		{
			name:  "mixed indent shrinks to common prefix",
			inner: "\n    a();\n  b();\n",
			want:  []string{"  a();", "b();"},
		},
		{name: "crlf", inner: "\r\n    a();\r\n", want: []string{"a();"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BodyLines(tt.inner))
		})
	}
}

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package render turns prototypes into PHP source text. Rendering is pure:
// the same prototype and indent always give the same text, and rendering an
// extracted copy of rendered output reproduces it exactly.
package render

import (
	"strings"

	"github.com/petar-djukic/codebuilder/pkg/prototype"
	"github.com/petar-djukic/codebuilder/pkg/types"
)

// DefaultIndent is one indentation level when none is configured.
const DefaultIndent = "    "

// Renderer renders prototypes using Indent as one indentation level.
type Renderer struct {
	Indent string
}

// New returns a renderer. An empty indent selects DefaultIndent.
func New(indent string) Renderer {
	if indent == "" {
		indent = DefaultIndent
	}
	return Renderer{Indent: indent}
}

func (r Renderer) indent() string {
	if r.Indent == "" {
		return DefaultIndent
	}
	return r.Indent
}

// SourceCode renders a complete file.
func (r Renderer) SourceCode(code prototype.SourceCode) string {
	parts := []string{"<?php"}
	if ns := code.Namespace(); ns != "" {
		parts = append(parts, r.Namespace(ns))
	}
	if uses := code.UseStatements(); !uses.IsEmpty() {
		lines := make([]string, 0, uses.Len())
		for _, u := range uses.Sorted().All() {
			lines = append(lines, r.UseStatement(u))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	for _, c := range code.ClassLikes().All() {
		parts = append(parts, r.ClassLike(c, ""))
	}
	return strings.Join(parts, "\n\n") + "\n"
}

// Namespace renders a namespace declaration.
func (r Renderer) Namespace(name string) string {
	return "namespace " + name + ";"
}

// UseStatement renders one import.
func (r Renderer) UseStatement(u prototype.UseStatement) string {
	if u.Alias() != "" {
		return "use " + u.Name() + " as " + u.Alias() + ";"
	}
	return "use " + u.Name() + ";"
}

// ClassLike renders a class, interface, or trait with every line prefixed
// by prefix.
func (r Renderer) ClassLike(c prototype.ClassLike, prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(r.ClassLikeHeader(c))
	b.WriteString("\n")
	b.WriteString(prefix)
	b.WriteString("{\n")

	members := r.Members(c, prefix+r.indent())
	if len(members) > 0 {
		b.WriteString(strings.Join(members, "\n\n"))
		b.WriteString("\n")
	}

	b.WriteString(prefix)
	b.WriteString("}")
	return b.String()
}

// ClassLikeHeader renders the declaration line without its body.
func (r Renderer) ClassLikeHeader(c prototype.ClassLike) string {
	var b strings.Builder
	switch c.Kind() {
	case types.Interface:
		b.WriteString("interface ")
		b.WriteString(c.Name())
		if c.ExtendsInterfaces().Len() > 0 {
			b.WriteString(" extends ")
			b.WriteString(strings.Join(c.ExtendsInterfaces().All(), ", "))
		}
	case types.Trait:
		b.WriteString("trait ")
		b.WriteString(c.Name())
	default:
		if c.IsAbstract() {
			b.WriteString("abstract ")
		}
		if c.IsFinal() {
			b.WriteString("final ")
		}
		b.WriteString("class ")
		b.WriteString(c.Name())
		if c.ExtendsClass().NotNone() {
			b.WriteString(" extends ")
			b.WriteString(c.ExtendsClass().String())
		}
		if c.ImplementsInterfaces().Len() > 0 {
			b.WriteString(" implements ")
			b.WriteString(strings.Join(c.ImplementsInterfaces().All(), ", "))
		}
	}
	return b.String()
}

// Members renders constants, then properties, then methods, each prefixed
// by prefix.
func (r Renderer) Members(c prototype.ClassLike, prefix string) []string {
	caps := c.Capabilities()
	var members []string
	for _, k := range c.Constants().All() {
		members = append(members, r.Constant(k, prefix))
	}
	for _, p := range c.Properties().All() {
		members = append(members, r.Property(p, prefix))
	}
	for _, m := range c.Methods().All() {
		members = append(members, r.Method(m, caps, prefix))
	}
	return members
}

// Member renders a single constant, property, or method at prefix. Any
// other value renders as the empty string.
func (r Renderer) Member(member prototype.Named, caps prototype.Capabilities, prefix string) string {
	switch m := member.(type) {
	case prototype.Constant:
		return r.Constant(m, prefix)
	case prototype.Property:
		return r.Property(m, prefix)
	case prototype.Method:
		return r.Method(m, caps, prefix)
	}
	return ""
}

// Constant renders a constant declaration. Public constants omit the
// modifier.
func (r Renderer) Constant(k prototype.Constant, prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	if k.Visibility() != prototype.Public {
		b.WriteString(k.Visibility().String())
		b.WriteString(" ")
	}
	b.WriteString("const ")
	b.WriteString(r.ConstantElement(k))
	b.WriteString(";")
	return b.String()
}

// ConstantElement renders `NAME = value` as it appears inside a constant
// declaration.
func (r Renderer) ConstantElement(k prototype.Constant) string {
	value := k.Value().Export()
	if value == "" {
		value = "null"
	}
	return k.Name() + " = " + value
}

// Property renders a property declaration.
func (r Renderer) Property(p prototype.Property, prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(p.Visibility().String())
	if p.IsStatic() {
		b.WriteString(" static")
	}
	if p.Type().NotNone() {
		b.WriteString(" ")
		b.WriteString(p.Type().String())
	}
	b.WriteString(" ")
	b.WriteString(r.PropertyElement(p))
	b.WriteString(";")
	return b.String()
}

// PropertyElement renders `$name = default` as it appears inside a property
// declaration.
func (r Renderer) PropertyElement(p prototype.Property) string {
	s := "$" + p.Name()
	if p.DefaultValue().NotNone() {
		s += " = " + p.DefaultValue().Export()
	}
	return s
}

// IsBodyless reports whether m renders as a signature ending in `;`.
func IsBodyless(m prototype.Method, caps prototype.Capabilities) bool {
	return caps.BodylessMethods || m.IsAbstract() || m.Body().IsNone()
}

// Method renders a method declaration with its body, every line prefixed by
// prefix.
func (r Renderer) Method(m prototype.Method, caps prototype.Capabilities, prefix string) string {
	header := prefix + r.MethodHeader(m, caps)
	if IsBodyless(m, caps) {
		return header + ";"
	}
	return header + "\n" + r.MethodBody(m.Body(), prefix)
}

// MethodHeader renders modifiers, name, parameters, and return type.
func (r Renderer) MethodHeader(m prototype.Method, caps prototype.Capabilities) string {
	var b strings.Builder
	if m.IsAbstract() && caps.AllowsAbstractMethods {
		b.WriteString("abstract ")
	}
	b.WriteString(m.Visibility().String())
	if m.IsStatic() {
		b.WriteString(" static")
	}
	b.WriteString(" function ")
	b.WriteString(m.Name())
	b.WriteString("(")
	params := m.Parameters().All()
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(r.Parameter(p))
	}
	b.WriteString(")")
	if m.ReturnType().NotNone() {
		b.WriteString(": ")
		b.WriteString(m.ReturnType().String())
	}
	return b.String()
}

// MethodBody renders braces and lines, the braces at prefix and the lines
// one level deeper. Blank lines carry no indentation.
func (r Renderer) MethodBody(body prototype.MethodBody, prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString("{\n")
	for _, line := range body.Lines() {
		if strings.TrimSpace(line) != "" {
			b.WriteString(prefix)
			b.WriteString(r.indent())
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString(prefix)
	b.WriteString("}")
	return b.String()
}

// Parameter renders one parameter.
func (r Renderer) Parameter(p prototype.Parameter) string {
	var b strings.Builder
	if p.Type().NotNone() {
		b.WriteString(p.Type().String())
		b.WriteString(" ")
	}
	if p.ByReference() {
		b.WriteString("&")
	}
	if p.IsVariadic() {
		b.WriteString("...")
	}
	b.WriteString("$")
	b.WriteString(p.Name())
	if p.DefaultValue().NotNone() {
		b.WriteString(" = ")
		b.WriteString(p.DefaultValue().Export())
	}
	return b.String()
}

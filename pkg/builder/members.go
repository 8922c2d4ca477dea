// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"

	"github.com/petar-djukic/codebuilder/pkg/prototype"
)

// ConstantBuilder assembles a constant owned by a P.
type ConstantBuilder[P any] struct {
	owner      P
	name       string
	visibility prototype.Visibility
	value      prototype.DefaultValue
	tracker
}

// Name returns the constant name.
func (b *ConstantBuilder[P]) Name() string { return b.name }

// Visibility sets the access modifier.
func (b *ConstantBuilder[P]) Visibility(v prototype.Visibility) *ConstantBuilder[P] {
	b.visibility = v
	return b
}

// Value sets the constant value from a Go literal.
func (b *ConstantBuilder[P]) Value(v any) *ConstantBuilder[P] {
	b.value = prototype.DefaultOf(v)
	return b
}

// Expression sets the constant value from raw PHP source.
func (b *ConstantBuilder[P]) Expression(src string) *ConstantBuilder[P] {
	b.value = prototype.DefaultExpression(src)
	return b
}

// Build materializes the constant.
func (b *ConstantBuilder[P]) Build() prototype.Constant {
	return prototype.NewConstant(b.name, b.visibility, b.value)
}

// Snapshot records the current output as the IsModified baseline.
func (b *ConstantBuilder[P]) Snapshot() { b.mark(b.Build()) }

// IsModified reports whether the output changed since the last snapshot.
func (b *ConstantBuilder[P]) IsModified() bool { return b.modified(b.Build()) }

// End returns the owner.
func (b *ConstantBuilder[P]) End() P { return b.owner }

// PropertyBuilder assembles a property owned by a P.
type PropertyBuilder[P any] struct {
	owner        P
	name         string
	visibility   prototype.Visibility
	typ          prototype.Type
	defaultValue prototype.DefaultValue
	static       bool
	tracker
}

// Name returns the property name.
func (b *PropertyBuilder[P]) Name() string { return b.name }

// Visibility sets the access modifier.
func (b *PropertyBuilder[P]) Visibility(v prototype.Visibility) *PropertyBuilder[P] {
	b.visibility = v
	return b
}

// Type sets the declared type.
func (b *PropertyBuilder[P]) Type(t string) *PropertyBuilder[P] {
	b.typ = prototype.TypeOf(t)
	return b
}

// DefaultValue sets the default from a Go literal; nil exports as null.
func (b *PropertyBuilder[P]) DefaultValue(v any) *PropertyBuilder[P] {
	b.defaultValue = prototype.DefaultOf(v)
	return b
}

// DefaultExpression sets the default from raw PHP source.
func (b *PropertyBuilder[P]) DefaultExpression(src string) *PropertyBuilder[P] {
	b.defaultValue = prototype.DefaultExpression(src)
	return b
}

// Static marks the property static.
func (b *PropertyBuilder[P]) Static() *PropertyBuilder[P] {
	b.static = true
	return b
}

// Build materializes the property.
func (b *PropertyBuilder[P]) Build() prototype.Property {
	return prototype.NewProperty(b.name, prototype.PropertyParams{
		Visibility:   b.visibility,
		Type:         b.typ,
		DefaultValue: b.defaultValue,
		Static:       b.static,
	})
}

// Snapshot records the current output as the IsModified baseline.
func (b *PropertyBuilder[P]) Snapshot() { b.mark(b.Build()) }

// IsModified reports whether the output changed since the last snapshot.
func (b *PropertyBuilder[P]) IsModified() bool { return b.modified(b.Build()) }

// End returns the owner.
func (b *PropertyBuilder[P]) End() P { return b.owner }

// MethodBuilder assembles a method owned by a P.
type MethodBuilder[P any] struct {
	owner      P
	name       string
	visibility prototype.Visibility
	returnType prototype.Type
	static     bool
	abstract   bool
	noBody     bool
	parameters registry[*ParameterBuilder[P]]
	body       *MethodBodyBuilder[P]
	tracker
}

// Name returns the method name.
func (b *MethodBuilder[P]) Name() string { return b.name }

// Visibility sets the access modifier.
func (b *MethodBuilder[P]) Visibility(v prototype.Visibility) *MethodBuilder[P] {
	b.visibility = v
	return b
}

// ReturnType sets the declared return type.
func (b *MethodBuilder[P]) ReturnType(t string) *MethodBuilder[P] {
	b.returnType = prototype.TypeOf(t)
	return b
}

// Static marks the method static.
func (b *MethodBuilder[P]) Static() *MethodBuilder[P] {
	b.static = true
	return b
}

// Abstract marks the method abstract. Abstract methods render without body.
func (b *MethodBuilder[P]) Abstract() *MethodBuilder[P] {
	b.abstract = true
	return b
}

// NoBody declares a signature-only method.
func (b *MethodBuilder[P]) NoBody() *MethodBuilder[P] {
	b.noBody = true
	return b
}

// Parameter returns the parameter builder called name, creating it if
// needed. Parameters keep the order of their first request.
func (b *MethodBuilder[P]) Parameter(name string) *ParameterBuilder[P] {
	return b.parameters.lookup(name, func() *ParameterBuilder[P] {
		return &ParameterBuilder[P]{owner: b, name: name}
	})
}

// Body returns the body builder of the method.
func (b *MethodBuilder[P]) Body() *MethodBodyBuilder[P] {
	if b.body == nil {
		b.body = &MethodBodyBuilder[P]{owner: b}
	}
	return b.body
}

// Add moves a parameter builder created under another method into this one.
func (b *MethodBuilder[P]) Add(child any) error {
	c, ok := child.(*ParameterBuilder[P])
	if !ok {
		return fmt.Errorf("%w: %T cannot be added to method %s", ErrInvalidChild, child, b.name)
	}
	c.owner.parameters.remove(c.name)
	c.owner = b
	b.parameters.put(c.name, c)
	return nil
}

// Build materializes the method.
func (b *MethodBuilder[P]) Build() prototype.Method {
	p := prototype.MethodParams{
		Visibility: b.visibility,
		ReturnType: b.returnType,
		Static:     b.static,
		Abstract:   b.abstract,
		Body:       prototype.BodyLines(),
	}
	for _, pb := range b.parameters.all() {
		p.Parameters = append(p.Parameters, pb.Build())
	}
	switch {
	case b.noBody:
		p.Body = prototype.NoBody()
	case b.body != nil:
		p.Body = prototype.BodyLines(b.body.lines...)
	}
	return prototype.NewMethod(b.name, p)
}

// Snapshot records the current output as the IsModified baseline.
func (b *MethodBuilder[P]) Snapshot() {
	for _, pb := range b.parameters.all() {
		pb.Snapshot()
	}
	b.mark(b.Build())
}

// IsModified reports whether the output changed since the last snapshot.
func (b *MethodBuilder[P]) IsModified() bool { return b.modified(b.Build()) }

// End returns the owner.
func (b *MethodBuilder[P]) End() P { return b.owner }

// MethodBodyBuilder collects the lines of a method body.
type MethodBodyBuilder[P any] struct {
	owner *MethodBuilder[P]
	lines []string
}

// Line appends a line to the body.
func (b *MethodBodyBuilder[P]) Line(line string) *MethodBodyBuilder[P] {
	b.lines = append(b.lines, line)
	return b
}

// Lines replaces the body with lines.
func (b *MethodBodyBuilder[P]) Lines(lines ...string) *MethodBodyBuilder[P] {
	b.lines = append([]string(nil), lines...)
	return b
}

// End returns the method builder.
func (b *MethodBodyBuilder[P]) End() *MethodBuilder[P] { return b.owner }

// ParameterBuilder assembles a parameter of a method owned by a P.
type ParameterBuilder[P any] struct {
	owner        *MethodBuilder[P]
	name         string
	typ          prototype.Type
	defaultValue prototype.DefaultValue
	byReference  bool
	variadic     bool
	tracker
}

// Name returns the parameter name.
func (b *ParameterBuilder[P]) Name() string { return b.name }

// Type sets the declared type.
func (b *ParameterBuilder[P]) Type(t string) *ParameterBuilder[P] {
	b.typ = prototype.TypeOf(t)
	return b
}

// DefaultValue sets the default from a Go literal; nil exports as null.
func (b *ParameterBuilder[P]) DefaultValue(v any) *ParameterBuilder[P] {
	b.defaultValue = prototype.DefaultOf(v)
	return b
}

// DefaultExpression sets the default from raw PHP source.
func (b *ParameterBuilder[P]) DefaultExpression(src string) *ParameterBuilder[P] {
	b.defaultValue = prototype.DefaultExpression(src)
	return b
}

// ByReference marks the parameter as passed by reference.
func (b *ParameterBuilder[P]) ByReference() *ParameterBuilder[P] {
	b.byReference = true
	return b
}

// Variadic marks the parameter variadic.
func (b *ParameterBuilder[P]) Variadic() *ParameterBuilder[P] {
	b.variadic = true
	return b
}

// Build materializes the parameter.
func (b *ParameterBuilder[P]) Build() prototype.Parameter {
	return prototype.NewParameter(b.name, prototype.ParameterParams{
		Type:         b.typ,
		DefaultValue: b.defaultValue,
		ByReference:  b.byReference,
		Variadic:     b.variadic,
	})
}

// Snapshot records the current output as the IsModified baseline.
func (b *ParameterBuilder[P]) Snapshot() { b.mark(b.Build()) }

// IsModified reports whether the output changed since the last snapshot.
func (b *ParameterBuilder[P]) IsModified() bool { return b.modified(b.Build()) }

// End returns the method builder.
func (b *ParameterBuilder[P]) End() *MethodBuilder[P] { return b.owner }

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package prototype

// Constant is a class or interface constant.
type Constant struct {
	name       string
	visibility Visibility
	value      DefaultValue
}

// NewConstant returns a constant with the given value.
func NewConstant(name string, visibility Visibility, value DefaultValue) Constant {
	return Constant{name: name, visibility: visibility, value: value}
}

func (c Constant) Name() string           { return c.name }
func (c Constant) Visibility() Visibility { return c.visibility }
func (c Constant) Value() DefaultValue    { return c.value }

// PropertyParams holds the optional attributes of a property.
type PropertyParams struct {
	Visibility   Visibility
	Type         Type
	DefaultValue DefaultValue
	Static       bool
}

// Property is a class or trait property.
type Property struct {
	name         string
	visibility   Visibility
	typ          Type
	defaultValue DefaultValue
	static       bool
}

// NewProperty returns a property named name (without the leading `$`).
func NewProperty(name string, p PropertyParams) Property {
	return Property{
		name:         name,
		visibility:   p.Visibility,
		typ:          p.Type,
		defaultValue: p.DefaultValue,
		static:       p.Static,
	}
}

func (p Property) Name() string               { return p.name }
func (p Property) Visibility() Visibility     { return p.visibility }
func (p Property) Type() Type                 { return p.typ }
func (p Property) DefaultValue() DefaultValue { return p.defaultValue }
func (p Property) IsStatic() bool             { return p.static }

// ParameterParams holds the optional attributes of a parameter.
type ParameterParams struct {
	Type         Type
	DefaultValue DefaultValue
	ByReference  bool
	Variadic     bool
}

// Parameter is a method parameter.
type Parameter struct {
	name         string
	typ          Type
	defaultValue DefaultValue
	byReference  bool
	variadic     bool
}

// NewParameter returns a parameter named name (without the leading `$`).
func NewParameter(name string, p ParameterParams) Parameter {
	return Parameter{
		name:         name,
		typ:          p.Type,
		defaultValue: p.DefaultValue,
		byReference:  p.ByReference,
		variadic:     p.Variadic,
	}
}

func (p Parameter) Name() string               { return p.name }
func (p Parameter) Type() Type                 { return p.typ }
func (p Parameter) DefaultValue() DefaultValue { return p.defaultValue }
func (p Parameter) ByReference() bool          { return p.byReference }
func (p Parameter) IsVariadic() bool           { return p.variadic }

// MethodBody is the ordered lines of a method body, or no body at all
// (abstract and interface signatures).
type MethodBody struct {
	lines []string
	none  bool
}

// BodyLines returns a body holding lines. No lines means an empty body.
func BodyLines(lines ...string) MethodBody {
	b := MethodBody{}
	if len(lines) > 0 {
		b.lines = append([]string(nil), lines...)
	}
	return b
}

// NoBody returns the body of a signature-only method.
func NoBody() MethodBody {
	return MethodBody{none: true}
}

// Lines returns a copy of the body lines.
func (b MethodBody) Lines() []string {
	return append([]string(nil), b.lines...)
}

// IsNone reports whether the method has no body.
func (b MethodBody) IsNone() bool { return b.none }

// IsEmpty reports whether the body exists but has no lines.
func (b MethodBody) IsEmpty() bool { return !b.none && len(b.lines) == 0 }

// MethodParams holds the optional attributes of a method.
type MethodParams struct {
	Visibility Visibility
	ReturnType Type
	Parameters []Parameter
	Static     bool
	Abstract   bool
	Body       MethodBody
}

// Method is a method declaration.
type Method struct {
	name       string
	visibility Visibility
	returnType Type
	parameters Collection[Parameter]
	static     bool
	abstract   bool
	body       MethodBody
}

// NewMethod returns a method. Duplicate parameter names keep the first.
func NewMethod(name string, p MethodParams) Method {
	return Method{
		name:       name,
		visibility: p.Visibility,
		returnType: p.ReturnType,
		parameters: NewCollection(p.Parameters...),
		static:     p.Static,
		abstract:   p.Abstract,
		body:       p.Body,
	}
}

func (m Method) Name() string                      { return m.name }
func (m Method) Visibility() Visibility            { return m.visibility }
func (m Method) ReturnType() Type                  { return m.returnType }
func (m Method) Parameters() Collection[Parameter] { return m.parameters }
func (m Method) IsStatic() bool                    { return m.static }
func (m Method) IsAbstract() bool                  { return m.abstract }
func (m Method) Body() MethodBody                  { return m.body }

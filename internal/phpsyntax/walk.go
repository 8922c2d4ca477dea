// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package phpsyntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/petar-djukic/codebuilder/pkg/types"
)

// typeNodes are the node types a declared type can take.
var typeNodes = map[string]bool{
	"named_type":                   true,
	"optional_type":                true,
	"union_type":                   true,
	"intersection_type":            true,
	"primitive_type":               true,
	"bottom_type":                  true,
	"disjunctive_normal_form_type": true,
	"type_list":                    true,
}

var modifierNodes = map[string]bool{
	"visibility_modifier": true,
	"static_modifier":     true,
	"abstract_modifier":   true,
	"final_modifier":      true,
	"readonly_modifier":   true,
	"var_modifier":        true,
}

var classLikeKinds = map[string]types.SymbolKind{
	"class_declaration":     types.Class,
	"interface_declaration": types.Interface,
	"trait_declaration":     types.Trait,
}

// PHPTagEnd returns the offset just after the opening `<?php` tag, or 0
// when the file has none.
func (t *Tree) PHPTagEnd() int {
	for _, c := range children(t.root) {
		if c.Type() == "php_tag" {
			return int(c.EndByte())
		}
	}
	return 0
}

// Namespace returns the first namespace declaration, or nil.
func (t *Tree) Namespace() *Namespace {
	for _, c := range children(t.root) {
		if c.Type() != "namespace_definition" {
			continue
		}
		ns := &Namespace{Span: span(c)}
		name := c.ChildByFieldName("name")
		if name == nil {
			name = childOfType(c, "namespace_name")
		}
		if name != nil {
			ns.Name = trimLeadingSlash(t.Text(name))
			ns.NameSpan = span(name)
		} else {
			ns.NameSpan = types.Span{Start: int(c.StartByte()) + len("namespace"), End: int(c.StartByte()) + len("namespace")}
		}
		body := c.ChildByFieldName("body")
		if body == nil {
			body = childOfType(c, "compound_statement")
		}
		if body != nil {
			s := span(body)
			ns.Body = &s
		}
		return ns
	}
	return nil
}

// UseClauses returns every class import, top level and inside the first
// namespace, in source order. Function and constant imports are skipped.
func (t *Tree) UseClauses() []Use {
	var uses []Use
	for _, n := range t.statements() {
		if n.Type() != "namespace_use_declaration" {
			continue
		}
		if u, ok := t.use(n); ok {
			uses = append(uses, u)
		}
	}
	return uses
}

func (t *Tree) use(n *sitter.Node) (Use, bool) {
	u := Use{Span: span(n)}
	prefix := ""
	for _, c := range children(n) {
		switch c.Type() {
		case "function", "const":
			return Use{}, false
		case "namespace_name", "qualified_name", "name":
			prefix = trimLeadingSlash(t.Text(c))
		case "namespace_use_clause":
			u.Clauses = append(u.Clauses, t.useClause(c, ""))
		case "namespace_use_group":
			for _, g := range children(c) {
				if g.Type() == "namespace_use_clause" || g.Type() == "namespace_use_group_clause" {
					u.Clauses = append(u.Clauses, t.useClause(g, prefix))
				}
			}
		}
	}
	return u, len(u.Clauses) > 0
}

func (t *Tree) useClause(n *sitter.Node, prefix string) UseClause {
	clause := UseClause{Span: span(n)}
	named := namedChildren(n)
	if alias := n.ChildByFieldName("alias"); alias != nil {
		clause.Alias = t.Text(alias)
	} else if aliasing := childOfType(n, "namespace_aliasing_clause"); aliasing != nil {
		if name := childOfType(aliasing, "name"); name != nil {
			clause.Alias = t.Text(name)
		}
		named = named[:len(named)-1]
	} else if len(named) > 1 && named[len(named)-1].Type() == "name" {
		clause.Alias = t.Text(named[len(named)-1])
	}
	if len(named) > 0 {
		clause.Name = trimLeadingSlash(t.Text(named[0]))
	}
	if prefix != "" {
		clause.Name = prefix + `\` + clause.Name
	}
	return clause
}

// ClassLikes returns the class, interface, and trait declarations at the
// top level or inside the first namespace, in source order.
func (t *Tree) ClassLikes() []ClassLike {
	var result []ClassLike
	for _, n := range t.statements() {
		kind, ok := classLikeKinds[n.Type()]
		if !ok {
			continue
		}
		if c, ok := t.classLike(n, kind); ok {
			result = append(result, c)
		}
	}
	return result
}

// FindClassLike returns the declaration named name whose kind is kind.
func (t *Tree) FindClassLike(kind types.SymbolKind, name string) (ClassLike, bool) {
	for _, c := range t.ClassLikes() {
		if c.Kind == kind && c.Name == name {
			return c, true
		}
	}
	return ClassLike{}, false
}

// statements lists top-level statements, descending into namespace bodies.
func (t *Tree) statements() []*sitter.Node {
	var result []*sitter.Node
	for _, c := range children(t.root) {
		result = append(result, c)
		if c.Type() != "namespace_definition" {
			continue
		}
		body := c.ChildByFieldName("body")
		if body == nil {
			body = childOfType(c, "compound_statement")
		}
		if body != nil {
			result = append(result, children(body)...)
		}
	}
	return result
}

func (t *Tree) classLike(n *sitter.Node, kind types.SymbolKind) (ClassLike, bool) {
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")
	if body == nil {
		body = childOfType(n, "declaration_list")
	}
	if name == nil || body == nil {
		return ClassLike{}, false
	}

	c := ClassLike{
		Kind:     kind,
		Name:     t.Text(name),
		Span:     span(n),
		NameSpan: span(name),
		Body:     span(body),
		Indent:   t.lineIndent(int(n.StartByte())),
	}
	for _, child := range children(n) {
		switch child.Type() {
		case "abstract_modifier", "final_modifier", "readonly_modifier":
			c.Modifiers = append(c.Modifiers, strings.ToLower(t.Text(child)))
		case "base_clause":
			c.Extends = t.clause(child)
		case "class_interface_clause":
			c.Implements = t.clause(child)
		}
	}

	for _, child := range children(body) {
		var m Member
		var ok bool
		switch child.Type() {
		case "const_declaration":
			m, ok = t.constant(child), true
		case "property_declaration":
			m, ok = t.property(child), true
		case "method_declaration":
			m, ok = t.method(child)
		}
		if !ok {
			continue
		}
		m.Indent = t.lineIndent(m.Span.Start)
		m.Anchor = t.anchor(child)
		c.Members = append(c.Members, m)
	}
	return c, true
}

func (t *Tree) clause(n *sitter.Node) *Clause {
	c := &Clause{Span: span(n)}
	for _, child := range namedChildren(n) {
		switch child.Type() {
		case "name", "qualified_name":
			c.Names = append(c.Names, trimLeadingSlash(t.Text(child)))
		}
	}
	return c
}

func (t *Tree) constant(n *sitter.Node) Member {
	m := Member{Kind: types.Constant, Span: span(n), Modifiers: t.modifiers(n)}
	for _, el := range children(n) {
		if el.Type() != "const_element" {
			continue
		}
		e := Element{Span: span(el)}
		named := namedChildren(el)
		if len(named) > 0 {
			e.Name = t.Text(named[0])
		}
		if len(named) > 1 {
			e.Value = t.Text(named[len(named)-1])
			e.HasValue = true
		}
		if e.Name == "" {
			e.Shape = el.Type()
		}
		m.Elements = append(m.Elements, e)
	}
	return m
}

func (t *Tree) property(n *sitter.Node) Member {
	m := Member{Kind: types.Property, Span: span(n), Modifiers: t.modifiers(n)}
	if typ := t.declaredType(n); typ != nil {
		m.Type = t.Text(typ)
	}
	for _, el := range children(n) {
		if el.Type() != "property_element" {
			continue
		}
		e := Element{Span: span(el)}
		name, err := t.propertyName(el)
		if err != nil {
			e.Shape = el.Type()
		} else {
			e.Name = name
		}
		if v := t.propertyDefault(el); v != nil {
			e.Value = t.Text(v)
			e.HasValue = true
		}
		m.Elements = append(m.Elements, e)
	}
	return m
}

// propertyName resolves the declared name of a property element: either
// a bare variable name or the left-hand side of an assignment.
func (t *Tree) propertyName(n *sitter.Node) (string, error) {
	switch n.Type() {
	case "variable_name":
		return strings.TrimPrefix(t.Text(n), "$"), nil
	case "assignment_expression":
		left := n.ChildByFieldName("left")
		if left == nil && n.NamedChildCount() > 0 {
			left = n.NamedChild(0)
		}
		if left == nil {
			return "", unsupportedShape(n.Type())
		}
		return t.propertyName(left)
	case "property_element":
		if name := n.ChildByFieldName("name"); name != nil {
			return t.propertyName(name)
		}
		for _, c := range namedChildren(n) {
			switch c.Type() {
			case "variable_name", "assignment_expression":
				return t.propertyName(c)
			}
		}
	}
	return "", unsupportedShape(n.Type())
}

func (t *Tree) propertyDefault(n *sitter.Node) *sitter.Node {
	if v := n.ChildByFieldName("default_value"); v != nil {
		return v
	}
	if init := childOfType(n, "property_initializer"); init != nil {
		named := namedChildren(init)
		if len(named) > 0 {
			return named[len(named)-1]
		}
		return nil
	}
	return valueAfterEquals(n)
}

func (t *Tree) method(n *sitter.Node) (Member, bool) {
	name := n.ChildByFieldName("name")
	if name == nil {
		return Member{}, false
	}
	m := Member{
		Kind:      types.Method,
		Span:      span(n),
		Modifiers: t.modifiers(n),
		Name:      t.Text(name),
	}
	if rt := n.ChildByFieldName("return_type"); rt != nil {
		m.ReturnType = t.Text(rt)
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		body = childOfType(n, "compound_statement")
	}
	if body != nil {
		s := span(body)
		m.Body = &s
	}

	m.HeaderEnd = int(n.EndByte())
	for _, c := range children(n) {
		if body != nil && c.StartByte() == body.StartByte() {
			break
		}
		if c.Type() == ";" {
			break
		}
		if c.Type() != "comment" {
			m.HeaderEnd = int(c.EndByte())
		}
	}

	params := n.ChildByFieldName("parameters")
	if params == nil {
		params = childOfType(n, "formal_parameters")
	}
	if params != nil {
		for _, p := range namedChildren(params) {
			switch p.Type() {
			case "simple_parameter", "variadic_parameter", "property_promotion_parameter":
				m.Parameters = append(m.Parameters, t.parameter(p))
			}
		}
	}
	return m, true
}

func (t *Tree) parameter(n *sitter.Node) Parameter {
	p := Parameter{Variadic: n.Type() == "variadic_parameter"}
	if typ := n.ChildByFieldName("type"); typ != nil {
		p.Type = t.Text(typ)
	} else if typ := t.declaredType(n); typ != nil {
		p.Type = t.Text(typ)
	}
	name := n.ChildByFieldName("name")
	if name == nil {
		name = childOfType(n, "variable_name")
	}
	if name != nil {
		p.Name = strings.TrimPrefix(t.Text(name), "$")
	}
	if v := n.ChildByFieldName("default_value"); v != nil {
		p.Default = t.Text(v)
		p.HasDefault = true
	} else if v := valueAfterEquals(n); v != nil {
		p.Default = t.Text(v)
		p.HasDefault = true
	}
	for _, c := range children(n) {
		switch c.Type() {
		case "reference_modifier", "&":
			p.ByReference = true
		case "...":
			p.Variadic = true
		}
	}
	return p
}

func (t *Tree) modifiers(n *sitter.Node) []string {
	var mods []string
	for _, c := range children(n) {
		if modifierNodes[c.Type()] {
			mods = append(mods, strings.ToLower(t.Text(c)))
		}
	}
	return mods
}

func (t *Tree) declaredType(n *sitter.Node) *sitter.Node {
	if typ := n.ChildByFieldName("type"); typ != nil {
		return typ
	}
	for _, c := range namedChildren(n) {
		if typeNodes[c.Type()] {
			return c
		}
	}
	return nil
}

// anchor returns the end of n, extended over a comment that starts on the
// same line.
func (t *Tree) anchor(n *sitter.Node) int {
	end := int(n.EndByte())
	next := n.NextSibling()
	if next == nil || next.Type() != "comment" {
		return end
	}
	between := string(t.source[end:next.StartByte()])
	if strings.Contains(between, "\n") {
		return end
	}
	return int(next.EndByte())
}

// lineIndent returns the whitespace between the start of the line holding
// offset and offset, or "" when other text precedes offset on that line.
func (t *Tree) lineIndent(offset int) string {
	start := offset
	for start > 0 && t.source[start-1] != '\n' {
		start--
	}
	prefix := string(t.source[start:offset])
	if strings.TrimLeft(prefix, " \t") != "" {
		return ""
	}
	return prefix
}

func span(n *sitter.Node) types.Span {
	return types.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func children(n *sitter.Node) []*sitter.Node {
	count := int(n.ChildCount())
	result := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		if c := n.Child(i); c != nil {
			result = append(result, c)
		}
	}
	return result
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	result := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		if c := n.NamedChild(i); c != nil && c.Type() != "comment" {
			result = append(result, c)
		}
	}
	return result
}

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for _, c := range children(n) {
		if c.Type() == typ {
			return c
		}
	}
	return nil
}

// valueAfterEquals returns the first named node following an `=` token.
func valueAfterEquals(n *sitter.Node) *sitter.Node {
	seen := false
	for _, c := range children(n) {
		if c.Type() == "=" {
			seen = true
			continue
		}
		if seen && c.IsNamed() {
			return c
		}
	}
	return nil
}

func trimLeadingSlash(name string) string {
	return strings.TrimPrefix(strings.TrimSpace(name), `\`)
}

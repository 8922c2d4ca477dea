// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package updater

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/codebuilder/internal/phpsyntax"
	"github.com/petar-djukic/codebuilder/internal/render"
	"github.com/petar-djukic/codebuilder/pkg/prototype"
	"github.com/petar-djukic/codebuilder/pkg/types"
)

const defaultSeparator = "\n\n"

// memberKinds is the order members are reconciled and laid out in.
var memberKinds = []types.SymbolKind{types.Constant, types.Property, types.Method}

// classEditor reconciles one declaration.
type classEditor struct {
	target prototype.ClassLike
	node   phpsyntax.ClassLike
	tree   *phpsyntax.Tree
	r      render.Renderer
	indent string
	log    *zap.Logger
}

func (e *Engine) classLike(target prototype.ClassLike, node phpsyntax.ClassLike, tree *phpsyntax.Tree) ([]types.Edit, error) {
	indent, unit := layout(node, e.renderer().Indent)
	c := &classEditor{
		target: target,
		node:   node,
		tree:   tree,
		r:      render.New(unit),
		indent: indent,
		log:    e.logger().With(zap.String("name", target.Name())),
	}

	edits := c.header()

	var inserts []insertion
	for _, kind := range memberKinds {
		updates, missing, err := c.partition(kind)
		if err != nil {
			return nil, err
		}
		edits = append(edits, updates...)
		if len(missing) > 0 {
			inserts = append(inserts, c.insertion(kind, missing))
		}
	}
	return foldInsertions(edits, mergeInsertions(inserts, c.node, c.tree)), nil
}

// layout returns the member indentation of node and one indentation unit,
// taken from the first indented member. Without members it falls back to
// the declaration indent plus unit.
func layout(node phpsyntax.ClassLike, unit string) (string, string) {
	for _, m := range node.Members {
		if m.Indent == "" {
			continue
		}
		if strings.HasPrefix(m.Indent, node.Indent) && len(m.Indent) > len(node.Indent) {
			return m.Indent, m.Indent[len(node.Indent):]
		}
		return m.Indent, unit
	}
	return node.Indent + unit, unit
}

// header reconciles the parent class and interface lists. Names already
// present are kept even when the description omits them.
func (c *classEditor) header() []types.Edit {
	var edits []types.Edit
	node := c.node
	switch c.target.Kind() {
	case types.Class:
		if parent := c.target.ExtendsClass(); parent.NotNone() {
			switch {
			case node.Extends == nil:
				edits = append(edits, types.Insert(node.NameSpan.End, " extends "+parent.String()))
			case len(node.Extends.Names) != 1 || !sameName(node.Extends.Names[0], parent.String()):
				edits = append(edits, types.Replace(node.Extends.Span.Start, node.Extends.Span.End, "extends "+parent.String()))
			}
		}
		missing := missingNames(c.target.ImplementsInterfaces(), node.Implements)
		if len(missing) == 0 {
			break
		}
		if node.Implements != nil {
			edits = append(edits, types.Insert(node.Implements.Span.End, ", "+strings.Join(missing, ", ")))
			break
		}
		at := node.NameSpan.End
		if node.Extends != nil {
			at = node.Extends.Span.End
		}
		edits = append(edits, types.Insert(at, " implements "+strings.Join(missing, ", ")))

	case types.Interface:
		missing := missingNames(c.target.ExtendsInterfaces(), node.Extends)
		if len(missing) == 0 {
			break
		}
		if node.Extends != nil {
			edits = append(edits, types.Insert(node.Extends.Span.End, ", "+strings.Join(missing, ", ")))
		} else {
			edits = append(edits, types.Insert(node.NameSpan.End, " extends "+strings.Join(missing, ", ")))
		}
	}
	return edits
}

func missingNames(want prototype.Names, have *phpsyntax.Clause) []string {
	var missing []string
	for _, name := range want.All() {
		found := false
		if have != nil {
			for _, existing := range have.Names {
				if sameName(existing, name) {
					found = true
					break
				}
			}
		}
		if !found {
			missing = append(missing, name)
		}
	}
	return missing
}

// partition splits the target members of kind into replacement edits for
// members the file already declares and the members it lacks.
func (c *classEditor) partition(kind types.SymbolKind) ([]types.Edit, []prototype.Named, error) {
	var edits []types.Edit
	var missing []prototype.Named

	switch kind {
	case types.Constant:
		var targets []memberText
		for _, k := range c.target.Constants().All() {
			targets = append(targets, memberText{named: k, declaration: c.r.Constant(k, ""), element: c.r.ConstantElement(k)})
		}
		edits, missing = c.updateElements(kind, targets)
	case types.Property:
		if err := c.checkPropertyShapes(); err != nil {
			return nil, nil, err
		}
		var targets []memberText
		for _, p := range c.target.Properties().All() {
			targets = append(targets, memberText{named: p, declaration: c.r.Property(p, ""), element: c.r.PropertyElement(p)})
		}
		edits, missing = c.updateElements(kind, targets)
	case types.Method:
		for _, m := range c.target.Methods().All() {
			edit, found := c.updateMethod(m)
			if !found {
				missing = append(missing, m)
			} else if edit != nil {
				edits = append(edits, *edit)
			}
		}
	}
	return edits, missing, nil
}

func (c *classEditor) checkPropertyShapes() error {
	for _, m := range c.node.MembersOf(types.Property) {
		for _, el := range m.Elements {
			if el.Shape != "" {
				return fmt.Errorf("%w: %s at offset %d", ErrUnsupportedShape, el.Shape, el.Span.Start)
			}
		}
	}
	return nil
}

// memberText is a constant or property rendered as a whole declaration
// and as the element it contributes to a declaration.
type memberText struct {
	named       prototype.Named
	declaration string
	element     string
}

// prefix is the declaration text before the element: modifiers and type.
func (t memberText) prefix() string {
	return strings.TrimSuffix(t.declaration, t.element+";")
}

// updateElements matches targets to the declarations of kind holding their
// names. A declaration with a single element is compared and replaced
// whole; declarations listing several names go through updateList.
func (c *classEditor) updateElements(kind types.SymbolKind, targets []memberText) ([]types.Edit, []prototype.Named) {
	var edits []types.Edit
	found := make(map[string]bool, len(targets))
	for _, m := range c.node.MembersOf(kind) {
		var matched []memberText
		for _, t := range targets {
			name := t.named.Name()
			if _, ok := m.Element(name); ok && !found[name] {
				matched = append(matched, t)
				found[name] = true
			}
		}
		switch {
		case len(matched) == 0:
		case len(m.Elements) == 1:
			if edit := c.replace(kind, matched[0].named.Name(), m.Span, matched[0].declaration); edit != nil {
				edits = append(edits, *edit)
			}
		default:
			edits = append(edits, c.updateList(kind, m, matched)...)
		}
	}

	var missing []prototype.Named
	for _, t := range targets {
		if !found[t.named.Name()] {
			missing = append(missing, t.named)
		}
	}
	return edits, missing
}

// updateList reconciles a declaration listing several names. While the
// shared modifiers and type still fit every matched target, only the
// changed elements are replaced. Otherwise the declaration is rewritten:
// the elements that no longer fit move out into declarations of their own
// following it.
func (c *classEditor) updateList(kind types.SymbolKind, m phpsyntax.Member, matched []memberText) []types.Edit {
	prefix := c.tree.Slice(types.Span{Start: m.Span.Start, End: m.Elements[0].Span.Start})
	inPlace := make(map[string]memberText, len(matched))
	var split []memberText
	for _, t := range matched {
		if samePrefix(kind, prefix, t.prefix()) {
			inPlace[t.named.Name()] = t
		} else {
			split = append(split, t)
		}
	}

	if len(split) == 0 {
		var edits []types.Edit
		for _, t := range matched {
			el, _ := m.Element(t.named.Name())
			if edit := c.replace(kind, t.named.Name(), el.Span, t.element); edit != nil {
				edits = append(edits, *edit)
			}
		}
		return edits
	}

	var kept []string
	for _, el := range m.Elements {
		if t, ok := inPlace[el.Name]; ok {
			kept = append(kept, t.element)
		} else if !isSplit(split, el.Name) {
			kept = append(kept, c.tree.Slice(el.Span))
		}
	}
	var decls []string
	if len(kept) > 0 {
		decls = append(decls, prefix+strings.Join(kept, ", ")+";")
	}
	for _, t := range split {
		decls = append(decls, t.declaration)
	}

	indent := m.Indent
	if indent == "" {
		indent = c.indent
	}
	c.log.Debug("splitting declaration",
		zap.String("kind", kind.String()),
		zap.Int("moved", len(split)),
		zap.Stringer("span", m.Span))
	return []types.Edit{types.Replace(m.Span.Start, m.Span.End, strings.Join(decls, "\n"+indent))}
}

// samePrefix compares declaration prefixes. A constant without a
// visibility modifier is public.
func samePrefix(kind types.SymbolKind, a, b string) bool {
	a, b = canonical(a), canonical(b)
	if kind == types.Constant {
		a, b = strings.TrimPrefix(a, "public "), strings.TrimPrefix(b, "public ")
	}
	return a == b
}

func isSplit(split []memberText, name string) bool {
	for _, t := range split {
		if t.named.Name() == name {
			return true
		}
	}
	return false
}

// updateMethod compares a method with its existing declaration. A target
// method with an empty body leaves the existing body alone and only the
// signature is reconciled.
func (c *classEditor) updateMethod(m prototype.Method) (*types.Edit, bool) {
	caps := c.target.Capabilities()
	for _, existing := range c.node.MembersOf(types.Method) {
		if existing.Name != m.Name() {
			continue
		}
		if existing.Body != nil && m.Body().IsEmpty() && !render.IsBodyless(m, caps) {
			header := types.Span{Start: existing.Span.Start, End: existing.HeaderEnd}
			return c.replace(types.Method, m.Name(), header, c.r.MethodHeader(m, caps)), true
		}
		rendered := strings.TrimPrefix(c.r.Method(m, caps, existing.Indent), existing.Indent)
		return c.replace(types.Method, m.Name(), existing.Span, rendered), true
	}
	return nil, false
}

// replace returns an edit turning span into text, or nil when the two are
// already the same code.
func (c *classEditor) replace(kind types.SymbolKind, name string, span types.Span, text string) *types.Edit {
	if sameCode(c.tree.Slice(span), text) {
		return nil
	}
	c.log.Debug("replacing member",
		zap.String("kind", kind.String()),
		zap.String("member", name),
		zap.Stringer("span", span))
	edit := types.Replace(span.Start, span.End, text)
	return &edit
}

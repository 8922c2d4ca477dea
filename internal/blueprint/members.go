// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package blueprint

import (
	"fmt"

	"github.com/petar-djukic/codebuilder/pkg/builder"
	"github.com/petar-djukic/codebuilder/pkg/prototype"
)

func (k Constant) apply(b any) error {
	if k.Name == "" {
		return fmt.Errorf("%w: constant without a name", ErrInvalidBlueprint)
	}
	v, err := prototype.ParseVisibility(k.Visibility)
	if err != nil {
		return fmt.Errorf("constant %s: %w", k.Name, err)
	}
	switch cb := b.(type) {
	case *builder.ConstantBuilder[*builder.ClassBuilder]:
		setConstant(cb, v, k)
	case *builder.ConstantBuilder[*builder.InterfaceBuilder]:
		setConstant(cb, v, k)
	case *builder.ConstantBuilder[*builder.TraitBuilder]:
		setConstant(cb, v, k)
	}
	return nil
}

func setConstant[P any](cb *builder.ConstantBuilder[P], v prototype.Visibility, k Constant) {
	cb.Visibility(v)
	if k.Expr != "" {
		cb.Expression(k.Expr)
	} else {
		cb.Value(k.Value)
	}
}

func (p Property) apply(b any) error {
	if p.Name == "" {
		return fmt.Errorf("%w: property without a name", ErrInvalidBlueprint)
	}
	v, err := prototype.ParseVisibility(p.Visibility)
	if err != nil {
		return fmt.Errorf("property %s: %w", p.Name, err)
	}
	switch pb := b.(type) {
	case *builder.PropertyBuilder[*builder.ClassBuilder]:
		setProperty(pb, v, p)
	case *builder.PropertyBuilder[*builder.TraitBuilder]:
		setProperty(pb, v, p)
	}
	return nil
}

func setProperty[P any](pb *builder.PropertyBuilder[P], v prototype.Visibility, p Property) {
	pb.Visibility(v)
	if p.Type != "" {
		pb.Type(p.Type)
	}
	switch {
	case p.Expr != "":
		pb.DefaultExpression(p.Expr)
	case p.Default != nil:
		pb.DefaultValue(p.Default)
	}
	if p.Static {
		pb.Static()
	}
}

func (m Method) apply(b any) error {
	if m.Name == "" {
		return fmt.Errorf("%w: method without a name", ErrInvalidBlueprint)
	}
	v, err := prototype.ParseVisibility(m.Visibility)
	if err != nil {
		return fmt.Errorf("method %s: %w", m.Name, err)
	}
	switch mb := b.(type) {
	case *builder.MethodBuilder[*builder.ClassBuilder]:
		return setMethod(mb, v, m)
	case *builder.MethodBuilder[*builder.InterfaceBuilder]:
		return setMethod(mb, v, m)
	case *builder.MethodBuilder[*builder.TraitBuilder]:
		return setMethod(mb, v, m)
	}
	return nil
}

func setMethod[P any](mb *builder.MethodBuilder[P], v prototype.Visibility, m Method) error {
	mb.Visibility(v)
	if m.Return != "" {
		mb.ReturnType(m.Return)
	}
	if m.Static {
		mb.Static()
	}
	if m.Abstract {
		mb.Abstract()
	}
	for _, p := range m.Parameters {
		if p.Name == "" {
			return fmt.Errorf("%w: method %s has a parameter without a name", ErrInvalidBlueprint, m.Name)
		}
		pb := mb.Parameter(p.Name)
		if p.Type != "" {
			pb.Type(p.Type)
		}
		switch {
		case p.Expr != "":
			pb.DefaultExpression(p.Expr)
		case p.Default != nil:
			pb.DefaultValue(p.Default)
		}
		if p.Reference {
			pb.ByReference()
		}
		if p.Variadic {
			pb.Variadic()
		}
	}
	switch {
	case m.Bodyless:
		mb.NoBody()
	case len(m.Body) > 0:
		mb.Body().Lines(m.Body...)
	}
	return nil
}

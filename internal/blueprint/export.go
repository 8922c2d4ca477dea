// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package blueprint

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/petar-djukic/codebuilder/pkg/prototype"
	"github.com/petar-djukic/codebuilder/pkg/types"
)

// FromSourceCode converts a description back into blueprint form. Values
// are written as expressions so they survive the round trip verbatim.
func FromSourceCode(code prototype.SourceCode) *Blueprint {
	bp := &Blueprint{Namespace: code.Namespace()}
	for _, u := range code.UseStatements().All() {
		use := u.Name()
		if u.Alias() != "" {
			use += " as " + u.Alias()
		}
		bp.Uses = append(bp.Uses, use)
	}
	for _, c := range code.ClassLikes().All() {
		bp.Classes = append(bp.Classes, fromClassLike(c))
	}
	return bp
}

func fromClassLike(c prototype.ClassLike) ClassLike {
	out := ClassLike{
		Name:     c.Name(),
		Abstract: c.IsAbstract(),
		Final:    c.IsFinal(),
	}
	switch c.Kind() {
	case types.Interface:
		out.Kind = "interface"
		out.Extends = c.ExtendsInterfaces().All()
	case types.Trait:
		out.Kind = "trait"
	default:
		if c.ExtendsClass().NotNone() {
			out.Extends = []string{c.ExtendsClass().String()}
		}
		out.Implements = c.ImplementsInterfaces().All()
	}

	for _, k := range c.Constants().All() {
		out.Constants = append(out.Constants, Constant{
			Name:       k.Name(),
			Visibility: visibility(k.Visibility()),
			Expr:       k.Value().Export(),
		})
	}
	for _, p := range c.Properties().All() {
		out.Properties = append(out.Properties, Property{
			Name:       p.Name(),
			Visibility: visibility(p.Visibility()),
			Type:       p.Type().String(),
			Expr:       p.DefaultValue().Export(),
			Static:     p.IsStatic(),
		})
	}
	for _, m := range c.Methods().All() {
		method := Method{
			Name:       m.Name(),
			Visibility: visibility(m.Visibility()),
			Return:     m.ReturnType().String(),
			Static:     m.IsStatic(),
			Abstract:   m.IsAbstract(),
			Bodyless:   m.Body().IsNone() && c.Kind() != types.Interface,
			Body:       m.Body().Lines(),
		}
		for _, p := range m.Parameters().All() {
			method.Parameters = append(method.Parameters, Parameter{
				Name:      p.Name(),
				Type:      p.Type().String(),
				Expr:      p.DefaultValue().Export(),
				Reference: p.ByReference(),
				Variadic:  p.IsVariadic(),
			})
		}
		out.Methods = append(out.Methods, method)
	}
	return out
}

// visibility omits the default.
func visibility(v prototype.Visibility) string {
	if v == prototype.Public {
		return ""
	}
	return v.String()
}

// EncodeYAML encodes bp as YAML.
func (bp *Blueprint) EncodeYAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(bp); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeTOML encodes bp as TOML.
func (bp *Blueprint) EncodeTOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(bp); err != nil {
		return nil, fmt.Errorf("encoding toml: %w", err)
	}
	return buf.Bytes(), nil
}

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package extract rebuilds a source-code description from a parsed PHP
// file. Default values and constant values come back as raw expressions,
// method bodies as de-indented lines.
package extract

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/codebuilder/internal/phpsyntax"
	"github.com/petar-djukic/codebuilder/pkg/prototype"
	"github.com/petar-djukic/codebuilder/pkg/types"
)

// SourceCode describes the namespace, imports, and class-likes of tree.
func SourceCode(tree *phpsyntax.Tree) (prototype.SourceCode, error) {
	p := prototype.SourceCodeParams{}
	if ns := tree.Namespace(); ns != nil {
		p.Namespace = ns.Name
	}
	for _, u := range tree.UseClauses() {
		for _, clause := range u.Clauses {
			p.Uses = append(p.Uses, prototype.NewUseStatement(clause.Name, clause.Alias))
		}
	}
	for _, node := range tree.ClassLikes() {
		c, err := ClassLike(tree, node)
		if err != nil {
			return prototype.SourceCode{}, err
		}
		p.ClassLikes = append(p.ClassLikes, c)
	}
	return prototype.NewSourceCode(p), nil
}

// ClassLike describes one declaration of tree.
func ClassLike(tree *phpsyntax.Tree, node phpsyntax.ClassLike) (prototype.ClassLike, error) {
	p := prototype.ClassLikeParams{}
	for _, mod := range node.Modifiers {
		switch mod {
		case "abstract":
			p.Abstract = true
		case "final":
			p.Final = true
		}
	}

	switch node.Kind {
	case types.Class:
		if node.Extends != nil && len(node.Extends.Names) > 0 {
			p.Parent = prototype.TypeOf(node.Extends.Names[0])
		}
		if node.Implements != nil {
			p.Interfaces = node.Implements.Names
		}
	case types.Interface:
		if node.Extends != nil {
			p.Interfaces = node.Extends.Names
		}
	}

	for _, m := range node.Members {
		visibility, err := prototype.ParseVisibility(m.Visibility())
		if err != nil {
			return prototype.ClassLike{}, err
		}
		switch m.Kind {
		case types.Constant:
			for _, el := range m.Elements {
				if el.Name == "" {
					continue
				}
				p.Constants = append(p.Constants, prototype.NewConstant(el.Name, visibility, prototype.DefaultExpression(el.Value)))
			}
		case types.Property:
			for _, el := range m.Elements {
				if el.Shape != "" {
					return prototype.ClassLike{}, fmt.Errorf("%s %s: %w: %s", node.Kind, node.Name, phpsyntax.ErrUnsupportedShape, el.Shape)
				}
				p.Properties = append(p.Properties, prototype.NewProperty(el.Name, prototype.PropertyParams{
					Visibility:   visibility,
					Type:         typeOf(m.Type),
					DefaultValue: prototype.DefaultExpression(el.Value),
					Static:       m.HasModifier("static"),
				}))
			}
		case types.Method:
			p.Methods = append(p.Methods, method(tree, m, visibility))
		}
	}

	return prototype.NewClassLike(node.Kind, node.Name, p), nil
}

func method(tree *phpsyntax.Tree, m phpsyntax.Member, visibility prototype.Visibility) prototype.Method {
	params := make([]prototype.Parameter, 0, len(m.Parameters))
	for _, param := range m.Parameters {
		params = append(params, prototype.NewParameter(param.Name, prototype.ParameterParams{
			Type:         typeOf(param.Type),
			DefaultValue: prototype.DefaultExpression(param.Default),
			ByReference:  param.ByReference,
			Variadic:     param.Variadic,
		}))
	}

	body := prototype.NoBody()
	if m.Body != nil {
		inner := types.Span{Start: m.Body.Start + 1, End: m.Body.End - 1}
		body = prototype.BodyLines(BodyLines(tree.Slice(inner))...)
	}

	return prototype.NewMethod(m.Name, prototype.MethodParams{
		Visibility: visibility,
		ReturnType: typeOf(m.ReturnType),
		Parameters: params,
		Static:     m.HasModifier("static"),
		Abstract:   m.HasModifier("abstract"),
		Body:       body,
	})
}

func typeOf(name string) prototype.Type {
	if name == "" {
		return prototype.NoType()
	}
	return prototype.TypeOf(name)
}

// BodyLines splits the text between a method's braces into lines, drops
// leading and trailing blank lines, and removes the indentation common to
// every non-blank line.
func BodyLines(inner string) []string {
	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}

	common := ""
	first := true
	for _, line := range lines {
		if line == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			common, first = indent, false
			continue
		}
		for !strings.HasPrefix(indent, common) {
			common = common[:len(common)-1]
		}
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, common)
	}
	return lines
}

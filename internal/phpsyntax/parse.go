// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package phpsyntax parses PHP source with tree-sitter and exposes the
// declarations the update engine works on: the namespace, imports,
// class-likes, and their members, each with byte spans into the source.
package phpsyntax

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/php"

	"github.com/petar-djukic/codebuilder/pkg/types"
)

// ErrSyntax is returned by ParseStrict when the source does not parse
// cleanly.
var ErrSyntax = errors.New("php syntax error")

// Tree is a parsed PHP file. The source it was parsed from is kept so
// spans can be turned back into text.
type Tree struct {
	source []byte
	tree   *sitter.Tree
	root   *sitter.Node
}

// Parse parses source. Syntax errors do not fail the parse: tree-sitter
// recovers and the resulting tree still carries every declaration it could
// recognize. Use HasErrors or ParseStrict to detect them.
func Parse(ctx context.Context, source []byte) (*Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(php.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing php: %w", err)
	}
	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, fmt.Errorf("parsing php: no root node")
	}
	return &Tree{source: source, tree: tree, root: root}, nil
}

// ParseStrict parses source and returns ErrSyntax when the tree contains
// error or missing nodes.
func ParseStrict(ctx context.Context, source []byte) (*Tree, error) {
	t, err := Parse(ctx, source)
	if err != nil {
		return nil, err
	}
	if t.HasErrors() {
		line := t.firstErrorLine()
		t.Close()
		return nil, fmt.Errorf("%w: line %d", ErrSyntax, line)
	}
	return t, nil
}

// Root returns the program node.
func (t *Tree) Root() *sitter.Node { return t.root }

// Source returns the parsed bytes.
func (t *Tree) Source() []byte { return t.source }

// String returns the parsed source as a string.
func (t *Tree) String() string { return string(t.source) }

// Text returns the source text covered by n.
func (t *Tree) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(t.source)
}

// Slice returns the source text covered by span.
func (t *Tree) Slice(span types.Span) string {
	return string(t.source[span.Start:span.End])
}

// HasErrors reports whether tree-sitter had to recover from a syntax error.
func (t *Tree) HasErrors() bool {
	return t.root.HasError()
}

// Close releases the underlying tree-sitter tree.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

func (t *Tree) firstErrorLine() int {
	var find func(n *sitter.Node) *sitter.Node
	find = func(n *sitter.Node) *sitter.Node {
		if n.IsError() || n.IsMissing() {
			return n
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if c != nil && c.HasError() {
				if found := find(c); found != nil {
					return found
				}
			}
		}
		return nil
	}
	if n := find(t.root); n != nil {
		return int(n.StartPoint().Row) + 1
	}
	return 0
}

// ErrUnsupportedShape is returned when a declaration has a form the engine
// cannot resolve a name from.
var ErrUnsupportedShape = errors.New("unsupported declaration shape")

func unsupportedShape(nodeType string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedShape, nodeType)
}

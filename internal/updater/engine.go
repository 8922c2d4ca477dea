// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package updater reconciles a source-code description against an existing
// parsed PHP file. It never rewrites the file itself: it returns the
// smallest list of non-overlapping text edits that bring the file in line
// with the description, leaving comments, formatting, and members the
// description does not mention untouched.
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

// ErrUnsupportedShape is returned when a declaration in the file has a
// form whose name cannot be resolved.
var ErrUnsupportedShape = phpsyntax.ErrUnsupportedShape

// Engine computes edits. The zero value is ready to use.
type Engine struct {
	// Indent is one indentation level for inserted code when the file
	// gives no hint. Defaults to four spaces.
	Indent string
	// Logger receives debug events. Nil disables logging.
	Logger *zap.Logger
}

// Reconcile computes the edits for code against tree using a zero Engine.
func Reconcile(code prototype.SourceCode, tree *phpsyntax.Tree) (*types.EditList, error) {
	var e Engine
	return e.Reconcile(code, tree)
}

// Reconcile returns the edits that make tree's source match code. The
// edits come out in a fixed order: namespace and imports first, then each
// declaration in the order code lists them, constants before properties
// before methods.
func (e *Engine) Reconcile(code prototype.SourceCode, tree *phpsyntax.Tree) (*types.EditList, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	edits := e.fileHeader(code, tree)

	existing := tree.ClassLikes()
	for _, target := range code.ClassLikes().All() {
		node, ok := findClassLike(existing, target)
		if !ok {
			e.logger().Debug("declaration not in file",
				zap.String("kind", target.Kind().String()),
				zap.String("name", target.Name()))
			continue
		}
		if !target.ApplyUpdate() {
			e.logger().Debug("declaration unchanged, skipping",
				zap.String("name", target.Name()))
			continue
		}
		classEdits, err := e.classLike(target, node, tree)
		if err != nil {
			return nil, fmt.Errorf("updating %s %s: %w", target.Kind(), target.Name(), err)
		}
		edits = append(edits, classEdits...)
	}

	list, err := types.NewEditList(edits...)
	if err != nil {
		return nil, fmt.Errorf("collecting edits: %w", err)
	}
	return list, nil
}

func (e *Engine) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

func (e *Engine) renderer() render.Renderer {
	return render.New(e.Indent)
}

func findClassLike(existing []phpsyntax.ClassLike, target prototype.ClassLike) (phpsyntax.ClassLike, bool) {
	for _, c := range existing {
		if c.Kind == target.Kind() && c.Name == target.Name() {
			return c, true
		}
	}
	return phpsyntax.ClassLike{}, false
}

// fileHeader returns the namespace and import edits. Text that has to go
// right after the opening tag is merged into one insertion.
func (e *Engine) fileHeader(code prototype.SourceCode, tree *phpsyntax.Tree) []types.Edit {
	r := e.renderer()
	ns := tree.Namespace()
	var edits []types.Edit
	var atTag strings.Builder

	if want := code.Namespace(); want != "" {
		switch {
		case ns == nil:
			atTag.WriteString("\n\n" + r.Namespace(want))
		case ns.NameSpan.IsEmpty():
			edits = append(edits, types.Insert(ns.NameSpan.Start, " "+want))
		case !sameName(ns.Name, want):
			edits = append(edits, types.Replace(ns.NameSpan.Start, ns.NameSpan.End, want))
		}
	}

	missing := missingUses(code, tree.UseClauses())
	if len(missing) > 0 {
		lines := make([]string, len(missing))
		for i, u := range missing {
			lines[i] = r.UseStatement(u)
		}
		block := strings.Join(lines, "\n")
		uses := tree.UseClauses()
		switch {
		case len(uses) > 0:
			edits = append(edits, types.Insert(uses[len(uses)-1].Span.End, "\n"+block))
		case ns != nil && ns.Body != nil:
			edits = append(edits, types.Insert(ns.Body.Start+1, "\n"+block+"\n"))
		case ns != nil:
			edits = append(edits, types.Insert(ns.Span.End, "\n\n"+block))
		default:
			atTag.WriteString("\n\n" + block)
		}
		e.logger().Debug("adding imports", zap.Int("count", len(missing)))
	}

	if atTag.Len() > 0 {
		edits = append([]types.Edit{types.Insert(tree.PHPTagEnd(), atTag.String())}, edits...)
	}
	return edits
}

// missingUses returns the imports of code that the file does not already
// have, sorted by name.
func missingUses(code prototype.SourceCode, existing []phpsyntax.Use) []prototype.UseStatement {
	var missing []prototype.UseStatement
	for _, u := range code.UseStatements().Sorted().All() {
		found := false
		for _, decl := range existing {
			for _, clause := range decl.Clauses {
				if sameName(clause.Name, u.Name()) {
					found = true
				}
			}
		}
		if !found {
			missing = append(missing, u)
		}
	}
	return missing
}

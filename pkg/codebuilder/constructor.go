// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package codebuilder

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/petar-djukic/codebuilder/internal/editor"
	"github.com/petar-djukic/codebuilder/internal/extract"
	"github.com/petar-djukic/codebuilder/internal/phpsyntax"
	"github.com/petar-djukic/codebuilder/internal/render"
	"github.com/petar-djukic/codebuilder/internal/updater"
	"github.com/petar-djukic/codebuilder/pkg/prototype"
	"github.com/petar-djukic/codebuilder/pkg/types"
)

const (
	defaultIndent      = render.DefaultIndent
	defaultConcurrency = 4
)

// CodeBuilder generates and updates PHP source. It holds no per-file
// state and is safe for concurrent use.
type CodeBuilder struct {
	cfg    Config
	editor *editor.Editor
	engine *updater.Engine
}

// New validates cfg and returns a ready-to-use CodeBuilder.
func New(cfg Config) (*CodeBuilder, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	applyDefaults(&cfg)

	return &CodeBuilder{
		cfg: cfg,
		editor: &editor.Editor{
			Indent: cfg.Indent,
			Strict: cfg.Strict,
			DryRun: cfg.DryRun,
			Logger: cfg.Logger,
		},
		engine: &updater.Engine{Indent: cfg.Indent, Logger: cfg.Logger},
	}, nil
}

// Generate renders code as a complete file.
func (c *CodeBuilder) Generate(code prototype.SourceCode) (string, error) {
	if err := code.Validate(); err != nil {
		return "", err
	}
	return render.New(c.cfg.Indent).SourceCode(code), nil
}

// Reconcile parses source and returns the edits that bring it in line
// with code. source itself is not modified.
func (c *CodeBuilder) Reconcile(ctx context.Context, code prototype.SourceCode, source string) (*types.EditList, error) {
	tree, err := c.parse(ctx, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()
	return c.engine.Reconcile(code, tree)
}

// Apply reconciles code against source and returns the edited text.
func (c *CodeBuilder) Apply(ctx context.Context, code prototype.SourceCode, source string) (string, error) {
	edits, err := c.Reconcile(ctx, code, source)
	if err != nil {
		return "", err
	}
	return edits.Apply(source)
}

// Extract describes the declarations in source.
func (c *CodeBuilder) Extract(ctx context.Context, source string) (prototype.SourceCode, error) {
	tree, err := c.parse(ctx, source)
	if err != nil {
		return prototype.SourceCode{}, err
	}
	defer tree.Close()
	return extract.SourceCode(tree)
}

// Update applies code to the file at path, creating it when missing.
func (c *CodeBuilder) Update(ctx context.Context, path string, code prototype.SourceCode) (*Result, error) {
	r, err := c.editor.UpdateFile(ctx, path, code)
	if err != nil {
		return nil, err
	}
	return toResult(r), nil
}

// UpdateAll applies every job, several files at a time. Results are in
// job order.
func (c *CodeBuilder) UpdateAll(ctx context.Context, jobs []Job) ([]*Result, error) {
	internal := make([]editor.Job, len(jobs))
	for i, j := range jobs {
		internal[i] = editor.Job{Path: j.Path, Code: j.Code}
	}
	rs, err := c.editor.UpdateAll(ctx, internal, c.cfg.Concurrency)
	if err != nil {
		return nil, err
	}
	results := make([]*Result, len(rs))
	for i, r := range rs {
		results[i] = toResult(r)
	}
	c.logger().Debug("updated files", zap.Int("count", len(results)))
	return results, nil
}

func (c *CodeBuilder) parse(ctx context.Context, source string) (*phpsyntax.Tree, error) {
	if c.cfg.Strict {
		return phpsyntax.ParseStrict(ctx, []byte(source))
	}
	return phpsyntax.Parse(ctx, []byte(source))
}

func (c *CodeBuilder) logger() *zap.Logger {
	if c.cfg.Logger == nil {
		return zap.NewNop()
	}
	return c.cfg.Logger
}

func toResult(r *editor.Result) *Result {
	return &Result{
		Path:    r.Path,
		Created: r.Created,
		Edits:   r.Edits,
		Diff:    r.Diff,
		Content: r.Content,
	}
}

// validateConfig checks the fields New cannot default.
func validateConfig(cfg Config) error {
	if strings.Trim(cfg.Indent, " \t") != "" {
		return fmt.Errorf("Indent must contain only spaces or tabs, got %q", cfg.Indent)
	}
	if cfg.Concurrency < 0 {
		return fmt.Errorf("Concurrency must not be negative, got %d", cfg.Concurrency)
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Indent == "" {
		cfg.Indent = defaultIndent
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = defaultConcurrency
	}
}

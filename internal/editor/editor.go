// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package editor applies source-code descriptions to PHP files on disk.
// Existing files are parsed, reconciled, and patched in place; missing
// files are generated whole. Writes are atomic.
package editor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/petar-djukic/codebuilder/internal/phpsyntax"
	"github.com/petar-djukic/codebuilder/internal/render"
	"github.com/petar-djukic/codebuilder/internal/updater"
	"github.com/petar-djukic/codebuilder/pkg/prototype"
)

// Editor updates files. The zero value writes changes with default
// indentation and no logging.
type Editor struct {
	Indent string      // One indentation level for generated code
	Strict bool        // Refuse files with syntax errors
	DryRun bool        // Compute results without writing
	Logger *zap.Logger // Nil disables logging
}

// Job pairs a file with the description to apply to it.
type Job struct {
	Path string
	Code prototype.SourceCode
}

// Result describes what UpdateFile did to one file.
type Result struct {
	Path    string // File that was updated or created
	Created bool   // True when the file did not exist and was generated
	Edits   int    // Number of edits applied to an existing file
	Diff    string // Unified diff of the change, empty when unchanged
	Content string // Resulting file content
}

// Changed reports whether the file content differs from what was on disk.
func (r *Result) Changed() bool {
	return r.Created || r.Edits > 0
}

// UpdateFile applies code to the file at path. A missing file is created
// from the whole rendered description.
func (e *Editor) UpdateFile(ctx context.Context, path string, code prototype.SourceCode) (*Result, error) {
	original, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return e.createFile(path, code)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	parse := phpsyntax.Parse
	if e.Strict {
		parse = phpsyntax.ParseStrict
	}
	tree, err := parse(ctx, original)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	defer tree.Close()

	engine := updater.Engine{Indent: e.Indent, Logger: e.logger().With(zap.String("path", path))}
	edits, err := engine.Reconcile(code, tree)
	if err != nil {
		return nil, fmt.Errorf("reconciling %s: %w", path, err)
	}

	result := &Result{Path: path, Edits: edits.Len(), Content: string(original)}
	if edits.IsEmpty() {
		e.logger().Debug("file up to date", zap.String("path", path))
		return result, nil
	}

	updated, err := edits.Apply(string(original))
	if err != nil {
		return nil, fmt.Errorf("applying edits to %s: %w", path, err)
	}
	result.Content = updated
	result.Diff = Diff(path, string(original), updated)

	if !e.DryRun {
		if err := atomicWrite(path, []byte(updated)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", path, err)
		}
	}
	e.logger().Info("updated file",
		zap.String("path", path),
		zap.Int("edits", result.Edits),
		zap.Bool("dry_run", e.DryRun))
	return result, nil
}

// createFile renders code into a new file at path.
func (e *Editor) createFile(path string, code prototype.SourceCode) (*Result, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}
	content := render.New(e.Indent).SourceCode(code)
	result := &Result{
		Path:    path,
		Created: true,
		Content: content,
		Diff:    Diff(path, "", content),
	}
	if e.DryRun {
		return result, nil
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := atomicWrite(path, []byte(content)); err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	e.logger().Info("created file", zap.String("path", path))
	return result, nil
}

// UpdateAll runs UpdateFile for every job with at most concurrency files
// in flight. Each file is parsed into its own tree. Results are returned in
// job order. The first error cancels the remaining jobs.
func (e *Editor) UpdateAll(ctx context.Context, jobs []Job, concurrency int) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := e.UpdateFile(ctx, job.Path, job.Code)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Editor) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// ReplaceFile overwrites path with content, creating parent directories as
// needed.
func ReplaceFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return atomicWrite(path, content)
}

// atomicWrite writes data to a temp file in the same directory, then renames
// it to the target path. This prevents partial writes from corrupting files.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	// Preserve original file permissions if the file exists.
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	f, err := os.CreateTemp(dir, ".codebuilder-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}

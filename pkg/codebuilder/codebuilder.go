// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package codebuilder is the public entry point for generating PHP source
// from a description and for updating existing PHP files to match one.
//
// Descriptions are assembled with package builder:
//
//	b := builder.New()
//	b.Namespace(`App\Model`).Class("User").Property("id").Type("int")
//
//	cb, _ := codebuilder.New(codebuilder.Config{})
//	src, _ := cb.Generate(b.Build())
package codebuilder

import (
	"errors"

	"go.uber.org/zap"

	"github.com/petar-djukic/codebuilder/pkg/prototype"
)

// ErrInvalidConfig is returned by New for a config it cannot use.
var ErrInvalidConfig = errors.New("invalid config")

// Config configures a CodeBuilder.
type Config struct {
	Indent      string      // One indentation level (default four spaces)
	Strict      bool        // Refuse to update files with syntax errors
	DryRun      bool        // Compute updates without writing files
	Concurrency int         // Files updated at once by UpdateAll (default 4)
	Logger      *zap.Logger // Nil disables logging
}

// Result holds the outcome of updating one file.
type Result struct {
	Path    string // File that was updated or created
	Created bool   // True when the file was generated from scratch
	Edits   int    // Number of edits applied to an existing file
	Diff    string // Unified diff of the change, empty when unchanged
	Content string // Resulting file content
}

// Changed reports whether the file differs from what was on disk.
func (r *Result) Changed() bool {
	return r.Created || r.Edits > 0
}

// Job pairs a file with the description to apply to it.
type Job struct {
	Path string
	Code prototype.SourceCode
}

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/petar-djukic/codebuilder/internal/blueprint"
	"github.com/petar-djukic/codebuilder/internal/editor"
	"github.com/petar-djukic/codebuilder/pkg/codebuilder"
)

// newCodeBuilder builds a CodeBuilder from the bound flags and config.
func newCodeBuilder() (*codebuilder.CodeBuilder, error) {
	cb, err := codebuilder.New(codebuilder.Config{
		Indent:      viper.GetString("indent"),
		Strict:      viper.GetBool("strict"),
		DryRun:      viper.GetBool("dry-run"),
		Concurrency: viper.GetInt("concurrency"),
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("initialization failed: %w", err)
	}
	return cb, nil
}

// newGenerateCmd creates the "generate" command.
func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <blueprint>",
		Short: "Render a blueprint as a new PHP file",
		Long:  "Generate renders the whole blueprint. The result goes to stdout unless --out names a file, which is overwritten.",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}
	cmd.Flags().StringP("out", "o", "", "File to write instead of stdout")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	b, err := blueprint.Load(args[0])
	if err != nil {
		return err
	}
	cb, err := newCodeBuilder()
	if err != nil {
		return err
	}
	src, err := cb.Generate(b.Build())
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if out == "" || viper.GetBool("dry-run") {
		fmt.Fprint(cmd.OutOrStdout(), src)
		return nil
	}
	if err := editor.ReplaceFile(out, []byte(src)); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	logger.Info("generated file", zap.String("path", out))
	return nil
}

// newUpdateCmd creates the "update" command.
func newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <blueprint> <file>...",
		Short: "Update PHP files to match a blueprint",
		Long: `Update applies the blueprint to each file. Declarations the blueprint names
are reconciled member by member; members it does not mention are kept. Missing
files are generated from the whole blueprint.`,
		Args: cobra.MinimumNArgs(2),
		RunE: runUpdate,
	}
}

func runUpdate(cmd *cobra.Command, args []string) error {
	b, err := blueprint.Load(args[0])
	if err != nil {
		return err
	}
	cb, err := newCodeBuilder()
	if err != nil {
		return err
	}

	code := b.Build()
	jobs := make([]codebuilder.Job, 0, len(args)-1)
	for _, path := range args[1:] {
		jobs = append(jobs, codebuilder.Job{Path: path, Code: code})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	results, err := cb.UpdateAll(ctx, jobs)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	for _, r := range results {
		switch {
		case r.Created:
			fmt.Fprintf(w, "%s: created\n", r.Path)
		case r.Edits == 0:
			fmt.Fprintf(w, "%s: up to date\n", r.Path)
		default:
			fmt.Fprintf(w, "%s: %d edits\n", r.Path, r.Edits)
		}
		if viper.GetBool("diff") && r.Diff != "" {
			fmt.Fprint(w, r.Diff)
		}
	}
	return nil
}

// newExtractCmd creates the "extract" command.
func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <file>",
		Short: "Print the blueprint of an existing PHP file",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	cmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or toml")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	cb, err := newCodeBuilder()
	if err != nil {
		return err
	}
	code, err := cb.Extract(cmd.Context(), string(src))
	if err != nil {
		return fmt.Errorf("extracting %s: %w", args[0], err)
	}

	bp := blueprint.FromSourceCode(code)
	format, _ := cmd.Flags().GetString("format")
	var out []byte
	switch format {
	case "yaml", "yml":
		out, err = bp.EncodeYAML()
	case "toml":
		out, err = bp.EncodeTOML()
	default:
		return fmt.Errorf("%w: %q", blueprint.ErrUnknownFormat, format)
	}
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

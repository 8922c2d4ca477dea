// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command codebuilder generates PHP classes from blueprint files and
// updates existing PHP files to match them.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "0.1.0"

var logger = zap.NewNop()

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codebuilder",
		Short: "Generate and update PHP source from blueprints",
		Long: `codebuilder renders PHP classes, interfaces, and traits described in YAML or
TOML blueprints. Existing files are updated in place: only the declarations
that differ are rewritten, and everything else is left as it was.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if viper.GetBool("verbose") {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	// Global flags.
	rootCmd.PersistentFlags().String("indent", "", "Indentation unit for generated code (default four spaces)")
	rootCmd.PersistentFlags().Bool("strict", false, "Refuse to update files with syntax errors")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Compute changes without writing files")
	rootCmd.PersistentFlags().Bool("diff", false, "Print a unified diff of every change")
	rootCmd.PersistentFlags().Int("concurrency", 4, "Files updated in parallel")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	// Bind flags to viper.
	for _, name := range []string{"indent", "strict", "dry-run", "diff", "concurrency", "verbose"} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}

	// Env vars: CODEBUILDER_INDENT, CODEBUILDER_STRICT, etc.
	viper.SetEnvPrefix("CODEBUILDER")
	viper.AutomaticEnv()

	// Config file.
	viper.SetConfigName(".codebuilder")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.ReadInConfig() // Ignore error; config file is optional.

	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print codebuilder version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "codebuilder %s\n", version)
		},
	}
}

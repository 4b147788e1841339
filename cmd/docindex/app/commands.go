/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package app provides the commands of the docindex tool.
package app

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/suparena/docregistry"
)

// NewRootCmd creates the docindex command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "docindex",
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		Short:             "Merge documentation index payloads",
		Long: `docindex decodes implementor and sidebar payloads, merges them per page
the way the documentation client does, and prints or saves the merged indexes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (text, json)")
	flags.String("table", "", "DynamoDB table for saved snapshots")
	flags.String("region", "", "AWS region of the snapshot table")
	flags.StringSlice("env-file", []string{".env"}, "Env files to load before reading configuration")

	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// setup loads env files and configuration and returns the command logger.
func setup(cmd *cobra.Command) (Config, *slog.Logger, error) {
	envFiles, err := cmd.Flags().GetStringSlice("env-file")
	if err != nil {
		return Config{}, nil, err
	}
	if err := loadDotEnv(envFiles...); err != nil {
		return Config{}, nil, err
	}

	v, err := newViper(cmd.Flags())
	if err != nil {
		return Config{}, nil, err
	}
	cfg := configFrom(v)
	return cfg, newLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr()), nil
}

func newVersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := docregistry.GetVersionInfo()
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}

			if format == "json" {
				output, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to format version info: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(output))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "docindex version %s\n", info.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(cmd.OutOrStdout(), "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", info.GoVersion)
			return nil
		},
	}
	versionCmd.Flags().String("format", "", "Output format (json)")
	return versionCmd
}

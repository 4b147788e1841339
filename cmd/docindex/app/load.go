/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/suparena/docregistry"
	"github.com/suparena/docregistry/datastore"
	"github.com/suparena/docregistry/datastore/ddb"
	"github.com/suparena/docregistry/internal/ctxlog"
	"github.com/suparena/docregistry/processor"
	"github.com/suparena/docregistry/storagemodels"
)

// newSetStore opens the snapshot datastore. Tests replace it.
var newSetStore = func(cfg Config) (datastore.DataStore[storagemodels.ImplementorSet], error) {
	if cfg.Table == "" {
		return nil, fmt.Errorf("no snapshot table configured, set --table or %s_DDB_TABLE", EnvPrefix)
	}
	return ddb.NewDynamodbDataStore[storagemodels.ImplementorSet](cfg.AccessKey, cfg.SecretKey, cfg.Region, cfg.Table)
}

func newLoadCmd() *cobra.Command {
	loadCmd := &cobra.Command{
		Use:   "load PATH...",
		Short: "Decode payload files and print the merged page indexes",
		Long: `Decode legacy implementor and sidebar scripts and YAML or JSON manifests found
at the given paths, merge them per page and print the result as manifests.
Directories are walked recursively. Malformed files are logged and skipped.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runLoad,
	}
	loadCmd.Flags().String("format", "yaml", "Output format (yaml, json)")
	loadCmd.Flags().Bool("save", false, "Save the merged implementors to the snapshot table")
	return loadCmd
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format, err := processor.ParseFormat(formatStr)
	if err != nil {
		return err
	}
	save, err := cmd.Flags().GetBool("save")
	if err != nil {
		return err
	}

	envs, err := processor.Load(ctx, args...)
	if err != nil {
		return err
	}

	site := docregistry.NewSite(docregistry.WithAutoInstall())
	n := site.DispatchAll(ctx, envs)
	logger.Info("Payloads merged.", "payloads", len(envs), "dispatched", n, "pages", len(site.Names()))

	if err := processor.Encode(cmd.OutOrStdout(), format, site.Envelopes()); err != nil {
		return fmt.Errorf("failed to encode pages: %w", err)
	}

	if !save {
		return nil
	}
	return saveSite(ctx, logger, cfg, site)
}

func saveSite(ctx context.Context, logger *slog.Logger, cfg Config, site *docregistry.Site) error {
	store, err := newSetStore(cfg)
	if err != nil {
		return err
	}
	snapshots := docregistry.NewSnapshotStore(store)

	total := 0
	for _, name := range site.Names() {
		page, _ := site.Lookup(name)
		if impls := page.Implementors(); impls == nil || len(impls.Crates()) == 0 {
			continue
		}
		n, err := snapshots.Save(ctx, page)
		if err != nil {
			return fmt.Errorf("failed to save page %s: %w", name, err)
		}
		total += n
	}
	logger.Info("Snapshots saved.", "table", cfg.Table, "sets", total)
	return nil
}

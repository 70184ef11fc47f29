// Package cli provides the compdash command line interface for inspecting
// and maintaining a dashboard data directory.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"compdash/internal/core"
	"compdash/internal/storage"
	"compdash/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DataDir string
	Storage string
	Verbose bool
}

// NewRootCommand creates the root command for the compdash CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "compdash",
		Short: "Compliance dashboard data layer",
		Long: `Inspect and maintain a compliance dashboard data directory:
list and aggregate requirements, move collections through CSV, and purge.`,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.DataDir, "data-dir", "", "data directory (default $COMPDASH_DATA_DIR or ~/.compdash)")
	cmd.PersistentFlags().StringVar(&opts.Storage, "storage", "", "storage backend (file|badger)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	// Add subcommands
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewPurgeCommand(opts))

	return cmd
}

// openStore builds the configured adapter, creates a store over it, and loads
// the persisted collections. The returned cleanup closes the adapter.
func openStore(opts *RootOptions) (*store.Store, func(), error) {
	cfg, err := core.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.Storage != "" {
		if opts.Storage != core.StorageFile && opts.Storage != core.StorageBadger {
			return nil, nil, fmt.Errorf("invalid storage %q: must be %q or %q", opts.Storage, core.StorageFile, core.StorageBadger)
		}
		cfg.Storage = opts.Storage
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	logger := core.NewLogger(cfg.LogLevel)

	var adapter storage.Adapter
	switch cfg.Storage {
	case core.StorageBadger:
		bcfg := storage.DefaultBadgerConfig(cfg.DataDir)
		bcfg.Logger = logger
		adapter, err = storage.NewBadgerAdapter(bcfg)
	default:
		adapter, err = storage.NewFileAdapter(cfg.DataDir, logger)
	}
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = adapter.Close() }

	s := store.New(adapter, logger)
	if _, err := s.Dispatch(store.LoadCollections{}); err != nil {
		cleanup()
		return nil, nil, err
	}
	return s, cleanup, nil
}

// await drains the mirror-write channel so the command does not exit before
// the data directory reflects the action. Warnings go to stderr via the
// store's logger; they do not fail the command.
func await(res *store.Result) {
	if res == nil || res.Persisted == nil {
		return
	}
	for range res.Persisted {
	}
}

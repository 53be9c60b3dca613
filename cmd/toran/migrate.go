package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arthur-debert/toran/inventory/storage"
	"github.com/arthur-debert/toran/types"
)

// migratedKeys are copied between backends
var migratedKeys = []string{types.InventoryKey, types.ThemeKey}

func newMigrateCmd(a *app) *cobra.Command {
	var (
		toBackend string
		toFile    string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy the inventory and settings to another backend",
		Long: `Copy the stored inventory and theme from the configured backend to another
one. Existing values at the destination are overwritten; the source is left
untouched.

Examples:
  toran migrate --to-backend sqlite --to-file inventory.db
  toran --backend sqlite -f inventory.db migrate --to-backend json --to-file inventory.json -n`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := storage.ParseBackend(toBackend)
			if err != nil {
				return NewValidationError("migrate", "backend", toBackend, "Valid backends: json, sqlite, memory")
			}
			if backend != storage.BackendMemory && toFile == "" {
				return &CLIError{
					Operation:   "migrate",
					Cause:       "--to-file is required",
					Suggestions: []string{CommonSuggestions.RunHelp},
				}
			}
			if backend == a.cfg.Backend && sameFile(toFile, a.cfg.File) {
				return &CLIError{
					Operation:   "migrate",
					Cause:       "source and destination are the same",
					Suggestions: []string{CommonSuggestions.CheckFlags},
				}
			}

			src, err := a.openKV()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				for _, key := range migratedKeys {
					_, found, err := src.Get(key)
					if err != nil {
						return NewStoreError("migrate", err)
					}
					if found {
						fmt.Fprintf(out, "would copy %s\n", key)
					}
				}
				return nil
			}

			dst, err := storage.Open(backend, toFile, storage.WithLogger(a.logger.Named("storage")))
			if err != nil {
				return NewStoreError("open destination", err, CommonSuggestions.CheckPerms)
			}
			defer func() {
				if err := dst.Close(); err != nil {
					a.logger.Warn("failed to close destination", zap.Error(err))
				}
			}()

			copied, err := storage.Copy(dst, src, migratedKeys...)
			if err != nil {
				return NewStoreError("migrate", err)
			}

			a.logger.Info("migrated",
				zap.String("to_backend", string(backend)),
				zap.String("to_file", toFile),
				zap.Int("keys", copied))
			fmt.Fprintf(out, "Copied %d keys to %s (%s)\n", copied, toFile, backend)
			return nil
		},
	}
	cmd.Flags().StringVar(&toBackend, "to-backend", "", "destination backend: json|sqlite|memory")
	cmd.Flags().StringVar(&toFile, "to-file", "", "destination data file")
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "list the keys that would be copied")
	_ = cmd.MarkFlagRequired("to-backend")
	return cmd
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arthur-debert/toran/inventory/export"
	"github.com/arthur-debert/toran/inventory/imports"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		outputDir string
		archive   bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the inventory as CSV",
		Long: `Export every item, in display order, to toran_inventory.csv in the
output directory. The file is replaced if it already exists.

With --archive a zip bundle is written instead: the full CSV, one CSV per
category and db.json holding the snapshot. Bundles can be read back with
'toran import'.

Examples:
  toran export
  toran export --output ~/Downloads
  toran export --archive --output backups`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			items := store.Items()

			if archive {
				now := time.Now()
				path := filepath.Join(outputDir, export.ArchiveFilename(now))
				if err := export.WriteArchive(export.BuildArchive(items, now), path); err != nil {
					return NewStoreError("export archive", err, CommonSuggestions.CheckPerms)
				}
				a.logger.Info("archive exported", zap.String("path", path), zap.Int("items", len(items)))
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", len(items), path)
				return nil
			}

			path, err := export.Download(export.NewCSVArtifact(items), outputDir)
			if err != nil {
				return NewStoreError("export csv", err, CommonSuggestions.CheckPerms)
			}
			a.logger.Info("csv exported", zap.String("path", path), zap.Int("items", len(items)))
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d items to %s\n", len(items), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory to write the export to")
	cmd.Flags().BoolVar(&archive, "archive", false, "write a zip bundle instead of a single CSV")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import items from a CSV export or zip bundle",
		Long: `Import items from a file produced by 'toran export'. Items keep the order
of the file and land at the top of the inventory.

Rows whose SKU already exists or that fail validation are reported and
skipped; the other rows are still imported.

Examples:
  toran import toran_inventory.csv
  toran import toran-export-20250101-120000.zip --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := imports.ReadFile(args[0])
			if err != nil {
				return &CLIError{
					Operation:   "import",
					Cause:       "could not read import file",
					Details:     err.Error(),
					Suggestions: []string{"Use a .csv or .zip file written by 'toran export'"},
					Underlying:  err,
				}
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}

			result, err := imports.ApplyWithOptions(store, items, imports.Options{DryRun: dryRun})
			if err != nil {
				return NewStoreError("import", err, CommonSuggestions.TryDryRun)
			}

			a.logger.Info("import finished",
				zap.Int("imported", result.Summary.SuccessfulImports),
				zap.Int("failed", result.Summary.FailedImports),
				zap.Bool("dry_run", dryRun))

			if a.cfg.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			writeImportResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "check the file without changing the inventory")
	return cmd
}

func writeImportResult(w io.Writer, result *imports.Result) {
	verb := "Imported"
	if result.Summary.DryRun {
		verb = "Would import"
	}
	fmt.Fprintf(w, "%s %d of %d items\n", verb, result.Summary.SuccessfulImports, result.Summary.TotalItems)
	for _, failure := range result.Failed {
		fmt.Fprintf(w, "  skipped %s: %s\n", failure.SKU, failure.Error)
	}
}

// ABOUTME: CLI commands for exporting and importing the logged-in user's data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:         "export <format>",
	Short:       "Export your data",
	Annotations: map[string]string{needsKey: needsSession},
	Long: `Export the logged-in user's training and body stats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown tables (for documentation/sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --since        Only include days from this date on (markdown only)

EXAMPLES:

  fitness export json                         # Export all data as JSON
  fitness export json -o backup.json          # Save to file
  fitness export yaml                         # Export as YAML
  fitness export markdown --since 2024-01-01  # Export data from 2024 onward`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var (
			data []byte
			err  error
		)
		switch args[0] {
		case "json":
			data, err = store.ExportJSON(ctx)
		case "yaml":
			data, err = store.ExportYAML(ctx)
		case "markdown", "md":
			var since string
			if exportSince != "" {
				if since, err = models.NormalizeDay(exportSince, time.Now()); err != nil {
					return err
				}
			}
			var md string
			md, err = store.ExportMarkdown(ctx, since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			printSuccess(cmd.OutOrStdout(), "Exported to %s", exportOutput)
			return nil
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:         "import <file>",
	Short:       "Import data from a JSON export",
	Annotations: map[string]string{needsKey: needsSession},
	Long: `Import training and body stats from a JSON export into the logged-in user.

Training days that already exist are merged by adding group counts. Body stats
for an existing day are replaced. The import is all or nothing: if any record
fails, nothing from the file is saved.

EXAMPLES:

  fitness import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		if err := store.ImportJSON(cmd.Context(), data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		printSuccess(cmd.OutOrStdout(), "Imported %s", args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include days from this date on")

	rootCmd.AddCommand(exportCmd, importCmd)
}

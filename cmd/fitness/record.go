// ABOUTME: CLI commands for the training log.
// ABOUTME: record add merges into an existing day; record list shows recent records.
package main

import (
	"fmt"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var (
	recordDate      string
	recordExercises string
	recordCounts    string
	recordLimit     int
)

var recordCmd = &cobra.Command{
	Use:         "record",
	Aliases:     []string{"r"},
	Short:       "Log and review training",
	Annotations: map[string]string{needsKey: needsSession},
	Long: `Log the exercises you did on a day and how many groups of each.

One record exists per day. Saving a day that already has a record adds the new
counts to it: exercises already listed keep their place and new ones are
appended in the order you give them.

COMMANDS:

  add    Save exercises for a day
  list   Show recent records, most recently created first`,
}

var recordAddCmd = &cobra.Command{
	Use:   "add [name=count ...]",
	Short: "Save exercises for a day",
	Long: `Save exercises for a day (default today).

Give entries as name=count pairs, or as two comma-separated lists.

Examples:
  fitness record add squat=3 bench=4
  fitness record add plank --date yesterday
  fitness record add --exercises "squat，bench" --counts "3,4" --date 2024-03-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			names  []string
			counts []int
			err    error
		)
		switch {
		case len(args) > 0 && (recordExercises != "" || recordCounts != ""):
			return fmt.Errorf("use either name=count arguments or --exercises/--counts, not both")
		case len(args) > 0:
			names, counts, err = parseEntries(args)
		case recordExercises != "" || recordCounts != "":
			names, counts, err = parseLists(recordExercises, recordCounts)
		default:
			return fmt.Errorf("nothing to record: give name=count arguments or --exercises and --counts")
		}
		if err != nil {
			return err
		}

		day, err := models.NormalizeDay(recordDate, time.Now())
		if err != nil {
			return err
		}

		out, err := store.SaveTrainingRecord(cmd.Context(), day, names, counts)
		if err != nil {
			return fmt.Errorf("failed to save training record: %w", err)
		}

		w := cmd.OutOrStdout()
		if out.Kind == models.Merged {
			printSuccess(w, "Added to %s", models.DisplayDay(day))
		} else {
			printSuccess(w, "Recorded %s", models.DisplayDay(day))
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", faint.Sprintf("id %d", out.ID), formatTally(names, counts))
		return nil
	},
}

var recordListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show recent training records",
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := store.GetTrainingRecords(cmd.Context(), recordLimit)
		if err != nil {
			return fmt.Errorf("failed to list training records: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(records) == 0 {
			_, _ = fmt.Fprintln(w, "No training records found.")
			return nil
		}
		for _, r := range records {
			printTrainingRecord(w, r)
		}
		return nil
	},
}

func init() {
	recordAddCmd.Flags().StringVarP(&recordDate, "date", "d", "", "day: YYYYMMDD, YYYY-MM-DD, today or yesterday (default today)")
	recordAddCmd.Flags().StringVar(&recordExercises, "exercises", "", "comma-separated exercise names")
	recordAddCmd.Flags().StringVar(&recordCounts, "counts", "", "comma-separated group counts, same order as --exercises")
	recordListCmd.Flags().IntVarP(&recordLimit, "limit", "n", models.DefaultLimit, "max number of results")

	recordCmd.AddCommand(recordAddCmd, recordListCmd)
	rootCmd.AddCommand(recordCmd)
}

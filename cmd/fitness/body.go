// ABOUTME: CLI commands for body measurements.
// ABOUTME: body add replaces the day's entry; list and latest read history.
package main

import (
	"fmt"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var (
	bodyDate   string
	bodyHeight float64
	bodyWeight float64
	bodyFat    float64
	bodyBMR    float64
	bodyLimit  int
)

var bodyCmd = &cobra.Command{
	Use:         "body",
	Aliases:     []string{"b"},
	Short:       "Log and review body measurements",
	Annotations: map[string]string{needsKey: needsSession},
	Long: `Track height, weight, and optionally body fat and basal metabolic rate.

One entry exists per day. Saving a day again replaces the whole entry, so
optional values you leave out are cleared. Listings show BMI computed from
height and weight; it is not stored.

COMMANDS:

  add      Save a measurement
  list     Show measurements, newest day first
  latest   Show the newest measurement`,
}

var bodyAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Save a body measurement",
	Long: `Save a body measurement for a day (default today).

Examples:
  fitness body add --height 180 --weight 80.5
  fitness body add --height 180 --weight 80.1 --body-fat 18.2 --bmr 1750 --date 2024-03-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if bodyHeight <= 0 || bodyWeight <= 0 {
			return fmt.Errorf("--height and --weight are required and must be positive")
		}
		day, err := models.NormalizeDay(bodyDate, time.Now())
		if err != nil {
			return err
		}

		in := models.NewBodyStatsInput(day, bodyHeight, bodyWeight)
		if cmd.Flags().Changed("body-fat") {
			in.WithBodyFat(bodyFat)
		}
		if cmd.Flags().Changed("bmr") {
			in.WithBasalMetabolicRate(bodyBMR)
		}

		id, err := store.SaveBodyStats(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("failed to save body stats: %w", err)
		}

		w := cmd.OutOrStdout()
		printSuccess(w, "Saved body stats for %s", models.DisplayDay(day))
		_, _ = fmt.Fprintf(w, "  %s %.1f cm  %.1f kg\n", faint.Sprintf("id %d", id), bodyHeight, bodyWeight)
		return nil
	},
}

var bodyListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show body measurements",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := store.GetBodyStatsHistory(cmd.Context(), bodyLimit)
		if err != nil {
			return fmt.Errorf("failed to list body stats: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(stats) == 0 {
			_, _ = fmt.Fprintln(w, "No body stats found.")
			return nil
		}
		for _, b := range stats {
			printBodyStats(w, b)
		}
		return nil
	},
}

var bodyLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the newest body measurement",
	RunE: func(cmd *cobra.Command, args []string) error {
		latest, ok, err := store.GetLatestBodyStats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get latest body stats: %w", err)
		}

		w := cmd.OutOrStdout()
		if !ok {
			_, _ = fmt.Fprintln(w, "No body stats found.")
			return nil
		}
		printBodyStats(w, *latest)
		return nil
	},
}

func init() {
	bodyAddCmd.Flags().StringVarP(&bodyDate, "date", "d", "", "day: YYYYMMDD, YYYY-MM-DD, today or yesterday (default today)")
	bodyAddCmd.Flags().Float64Var(&bodyHeight, "height", 0, "height in cm")
	bodyAddCmd.Flags().Float64Var(&bodyWeight, "weight", 0, "weight in kg")
	bodyAddCmd.Flags().Float64Var(&bodyFat, "body-fat", 0, "body fat percentage")
	bodyAddCmd.Flags().Float64Var(&bodyBMR, "bmr", 0, "basal metabolic rate in kcal")
	bodyListCmd.Flags().IntVarP(&bodyLimit, "limit", "n", models.DefaultLimit, "max number of results")

	bodyCmd.AddCommand(bodyAddCmd, bodyListCmd, bodyLatestCmd)
	rootCmd.AddCommand(bodyCmd)
}

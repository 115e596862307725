// ABOUTME: CLI command for generating workout plans from the catalog.
// ABOUTME: --save records the generated plan as a training day.
package main

import (
	"fmt"
	"time"

	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/plan"
	"github.com/spf13/cobra"
)

var (
	planMinutes       int
	planMuscle        string
	planMaxDifficulty int
	planSave          string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate workout plans",
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fill a session with exercises for one muscle",
	Long: fmt.Sprintf(`Fill the requested minutes with catalog exercises that target a muscle.

Each slot takes %d minutes. Exercises at or below --max-difficulty are used in
catalog order and repeated as needed; when none are easy enough every exercise
for the muscle is used instead.

Examples:
  fitness plan generate --minutes 30 --muscle chest --max-difficulty 3
  fitness plan generate --minutes 20 --muscle legs --max-difficulty 2 --save today`, plan.MinutesPerExercise),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadCatalog()
		if err != nil {
			return err
		}
		p, err := plan.Generate(lib, plan.Request{
			Minutes:       planMinutes,
			Muscle:        planMuscle,
			MaxDifficulty: planMaxDifficulty,
		})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		_, _ = heading.Fprintf(w, "%d-minute %s plan\n", p.Minutes(), planMuscle)
		for i, ex := range p.Slots {
			_, _ = fmt.Fprintf(w, "  %2d. %s %s\n", i+1, padRight(ex.Name, 20),
				faint.Sprintf("difficulty %d/5 · %s", ex.Difficulty, orDash(ex.Equipment)))
		}

		if !cmd.Flags().Changed("save") {
			return nil
		}
		if err := openSession(cmd); err != nil {
			return err
		}
		day, err := models.NormalizeDay(planSave, time.Now())
		if err != nil {
			return err
		}
		t := p.Tally()
		out, err := store.SaveTrainingRecord(cmd.Context(), day, t.Names(), t.Counts())
		if err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}
		printSuccess(w, "Saved plan to %s %s", models.DisplayDay(day), faint.Sprintf("(%s, id %d)", out.Kind, out.ID))
		return nil
	},
}

func init() {
	planGenerateCmd.Flags().IntVarP(&planMinutes, "minutes", "m", 30, "session length in minutes")
	planGenerateCmd.Flags().StringVar(&planMuscle, "muscle", "", "target muscle")
	planGenerateCmd.Flags().IntVar(&planMaxDifficulty, "max-difficulty", 3, "hardest difficulty to include, 1-5")
	planGenerateCmd.Flags().StringVar(&planSave, "save", "", "record the plan as training on this day (today, yesterday, YYYY-MM-DD)")

	planCmd.AddCommand(planGenerateCmd)
	rootCmd.AddCommand(planCmd)
}

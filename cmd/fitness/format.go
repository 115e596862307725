// ABOUTME: Terminal formatting helpers shared by the CLI commands.
// ABOUTME: Colour, padding and record rendering.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/models"
)

var (
	faint   = color.New(color.Faint)
	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
	heading = color.New(color.Bold)
)

func printSuccess(w io.Writer, format string, args ...any) {
	_, _ = success.Fprintf(w, "✓ "+format+"\n", args...)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// formatTally renders exercises as "squat×3, bench×4".
func formatTally(exercises []string, counts []int) string {
	if len(exercises) == 0 {
		return faint.Sprint("(no exercises)")
	}
	parts := make([]string, len(exercises))
	for i, name := range exercises {
		parts[i] = fmt.Sprintf("%s×%d", name, counts[i])
	}
	return strings.Join(parts, ", ")
}

func formatOptional(v *float64, unit string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f%s", *v, unit)
}

func printTrainingRecord(w io.Writer, r models.TrainingRecord) {
	_, _ = fmt.Fprintf(w, "%s %s %s\n",
		faint.Sprint(padRight(fmt.Sprint(r.ID), 5)),
		models.DisplayDay(r.Timestamp),
		formatTally(r.Exercises, r.GroupCounts))
}

func printBodyStats(w io.Writer, b models.BodyStats) {
	_, _ = fmt.Fprintf(w, "%s %s  height %.1f cm  weight %.1f kg  BMI %s  body fat %s  BMR %s\n",
		faint.Sprint(padRight(fmt.Sprint(b.ID), 5)),
		models.DisplayDay(b.Timestamp),
		b.Height, b.Weight,
		formatBMI(b),
		formatOptional(b.BodyFat, "%"),
		formatOptional(b.BasalMetabolicRate, " kcal"))
}

func formatBMI(b models.BodyStats) string {
	bmi, ok := b.BMI()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", bmi)
}

func printExercise(w io.Writer, ex models.Exercise) {
	_, _ = fmt.Fprintf(w, "%s %s %s\n",
		faint.Sprint(ex.ID[:min(8, len(ex.ID))]),
		heading.Sprint(padRight(ex.Name, 20)),
		faint.Sprintf("%s · difficulty %d/5 · %s", strings.Join(ex.TargetMuscles, ", "), ex.Difficulty, orDash(ex.Equipment)))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

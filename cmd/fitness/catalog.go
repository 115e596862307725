// ABOUTME: CLI commands for the exercise catalog.
// ABOUTME: The catalog is a JSON file; add and delete write it back.
package main

import (
	"fmt"
	"strings"

	"github.com/harperreed/fitness/internal/models"
	"github.com/spf13/cobra"
)

var (
	exName        string
	exMuscles     string
	exEquipment   string
	exDifficulty  int
	exDescription string
)

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"ex"},
	Short:   "Manage the exercise catalog",
	Long: `Manage the exercise library used by plan generation.

The catalog lives at ~/.local/share/fitness/fitness_library.json unless
--catalog, FITNESS_CATALOG_PATH or the config file says otherwise. Exercises
are addressed by id or a unique id prefix.

COMMANDS:

  list     Show every exercise
  add      Add an exercise
  search   Find exercises by name, equipment or muscle
  show     Show one exercise in full
  delete   Remove an exercise`,
}

var catalogListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadCatalog()
		if err != nil {
			return err
		}
		return printExercises(cmd, lib.List())
	},
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search exercises",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadCatalog()
		if err != nil {
			return err
		}
		return printExercises(cmd, lib.Search(args[0]))
	},
}

var catalogAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an exercise",
	Long: `Add an exercise to the catalog.

Examples:
  fitness catalog add --name "Push-up" --muscles chest,triceps --difficulty 2
  fitness catalog add --name Dip --muscles "chest，triceps" --equipment "parallel bars" --difficulty 3`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadCatalog()
		if err != nil {
			return err
		}
		added, err := lib.Add(models.Exercise{
			Name:          exName,
			TargetMuscles: splitList(exMuscles),
			Equipment:     exEquipment,
			Difficulty:    models.Difficulty(exDifficulty),
			Description:   exDescription,
		})
		if err != nil {
			return fmt.Errorf("failed to add exercise: %w", err)
		}
		if err := lib.Save(); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Added %s %s", added.Name, faint.Sprintf("(%s)", added.ID[:8]))
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadCatalog()
		if err != nil {
			return err
		}
		ex, err := lib.Get(args[0])
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		_, _ = heading.Fprintln(w, ex.Name)
		_, _ = fmt.Fprintf(w, "  id          %s\n", ex.ID)
		_, _ = fmt.Fprintf(w, "  muscles     %s\n", strings.Join(ex.TargetMuscles, ", "))
		_, _ = fmt.Fprintf(w, "  equipment   %s\n", orDash(ex.Equipment))
		_, _ = fmt.Fprintf(w, "  difficulty  %d/5\n", ex.Difficulty)
		if ex.Description != "" {
			_, _ = fmt.Fprintf(w, "\n%s\n", ex.Description)
		}
		return nil
	},
}

var catalogDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an exercise",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadCatalog()
		if err != nil {
			return err
		}
		removed, err := lib.Delete(args[0])
		if err != nil {
			return err
		}
		if err := lib.Save(); err != nil {
			return err
		}
		printSuccess(cmd.OutOrStdout(), "Deleted %s", removed.Name)
		return nil
	},
}

func printExercises(cmd *cobra.Command, exercises []models.Exercise) error {
	w := cmd.OutOrStdout()
	if len(exercises) == 0 {
		_, _ = fmt.Fprintln(w, "No matching exercises.")
		return nil
	}
	for _, ex := range exercises {
		printExercise(w, ex)
	}
	return nil
}

func init() {
	catalogAddCmd.Flags().StringVar(&exName, "name", "", "exercise name")
	catalogAddCmd.Flags().StringVar(&exMuscles, "muscles", "", "comma-separated target muscles")
	catalogAddCmd.Flags().StringVar(&exEquipment, "equipment", "", "equipment needed")
	catalogAddCmd.Flags().IntVar(&exDifficulty, "difficulty", 1, "difficulty 1-5")
	catalogAddCmd.Flags().StringVar(&exDescription, "description", "", "how to perform it")

	catalogCmd.AddCommand(catalogListCmd, catalogSearchCmd, catalogAddCmd, catalogShowCmd, catalogDeleteCmd)
	rootCmd.AddCommand(catalogCmd)
}

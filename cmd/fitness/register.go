// ABOUTME: CLI commands for accounts and sessions.
// ABOUTME: register creates a user; whoami checks the configured credentials.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:         "register <username>",
	Short:       "Create a user",
	Annotations: map[string]string{needsKey: needsStore},
	Long: `Create a user with a password. Usernames are unique.

The password comes from --password or FITNESS_PASSWORD. It is stored hashed
and never written to the config file.

Examples:
  fitness register alice --password s3cret`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if cfg.Password == "" {
			return fmt.Errorf("a password is required: pass --password or set FITNESS_PASSWORD")
		}
		id, err := store.Register(cmd.Context(), name, cfg.Password)
		if err != nil {
			return fmt.Errorf("failed to register %s: %w", name, err)
		}
		printSuccess(cmd.OutOrStdout(), "Registered %s %s", name, faint.Sprintf("(id %d)", id))
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:         "whoami",
	Short:       "Log in with the configured credentials and show the user",
	Annotations: map[string]string{needsKey: needsSession},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := store.CurrentUser()
		if !ok {
			_, _ = warning.Fprintln(cmd.OutOrStdout(), "Not logged in.")
			return nil
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", heading.Sprint(id.Username), faint.Sprintf("(id %d)", id.UserID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd, whoamiCmd)
}

// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio MCP server; logs in first when credentials are configured.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/harperreed/fitness/internal/logger"
	"github.com/harperreed/fitness/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:         "mcp",
	Short:       "Start MCP server",
	Annotations: map[string]string{needsKey: needsStore},
	Long: `Start the Model Context Protocol (MCP) server for assistant integration.

The server communicates via stdin/stdout. When --user and --password (or
FITNESS_USER and FITNESS_PASSWORD) are set it logs in before serving;
otherwise a client logs in with the login tool.

CONFIGURATION:

  {
    "mcpServers": {
      "fitness": {
        "command": "fitness",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  register               Create a user
  login                  Log in, replacing any current session
  logout                 End the session
  whoami                 Show the logged-in user
  save_training_record   Save exercises for a day (merges into the day)
  list_training_records  Recent training records
  save_body_stats        Save body stats for a day (replaces the day)
  list_body_stats        Body stats, newest day first
  get_latest_body_stats  Newest body stats
  search_exercises       Search the exercise catalog
  generate_plan          Fill a session with exercises for a muscle

AVAILABLE RESOURCES:

  fitness://training/recent   Recent training records
  fitness://body/latest       Latest body stats`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := loadCatalog()
		if err != nil {
			return err
		}
		if cfg.User != "" && cfg.Password != "" {
			if err := openSession(cmd); err != nil {
				return err
			}
		}

		server, err := mcp.NewServer(store, lib, logger.Get())
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

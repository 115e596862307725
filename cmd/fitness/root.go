// ABOUTME: Root Cobra command for fitness CLI.
// ABOUTME: Loads config, opens the store and logs in via PersistentPre/PostRunE.
package main

import (
	"errors"
	"fmt"

	"github.com/harperreed/fitness/internal/catalog"
	"github.com/harperreed/fitness/internal/config"
	"github.com/harperreed/fitness/internal/logger"
	"github.com/harperreed/fitness/internal/models"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/spf13/cobra"
)

// needsKey annotates a command with what it requires before RunE.
const needsKey = "needs"

const (
	needsNothing = ""
	needsStore   = "store"
	needsSession = "session"
)

var (
	cfg   *config.Config
	store *storage.DB

	dbPath      string
	catalogPath string
	logLevel    string
	username    string
	password    string
)

var rootCmd = &cobra.Command{
	Use:   "fitness",
	Short: "Training log and body metrics tracker",
	Long: `Fitness records what you trained and how your body changes, per day.

WHAT IT TRACKS:

  Training    exercises and group counts per day; saving the same day again adds to it
  Body stats  height, weight, optional body fat and BMR per day; saving again replaces it
  Catalog     a library of exercises used to generate workout plans

QUICK START:

  $ fitness register alice --password s3cret
  $ export FITNESS_USER=alice FITNESS_PASSWORD=s3cret
  $ fitness record add squat=3 bench=4          # Log today's training
  $ fitness record add squat=2 --date yesterday
  $ fitness body add --height 180 --weight 80.5  # Log body stats
  $ fitness record list                          # Recent training
  $ fitness plan generate --minutes 30 --muscle chest --max-difficulty 3

SESSIONS:

  Commands that read or write your records log in first, using --user and
  --password or FITNESS_USER and FITNESS_PASSWORD. One user is logged in at
  a time; the session ends when the command exits.

MCP INTEGRATION:

  Run 'fitness mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "fitness": { "command": "fitness", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Records are stored in SQLite at ~/.local/share/fitness/fitness.db.
  Override with --db, FITNESS_DB_PATH or ~/.config/fitness/config.json.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		switch requirement(cmd) {
		case needsStore:
			return openStore()
		case needsSession:
			return openSession(cmd)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore()
	},
}

// Execute runs the root command.
func Execute() error {
	err := friendly(rootCmd.Execute())
	if cerr := closeStore(); err == nil {
		err = cerr
	}
	return err
}

// requirement returns the nearest needs annotation on cmd or its parents.
func requirement(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if v, ok := c.Annotations[needsKey]; ok {
			return v
		}
	}
	return needsNothing
}

func loadConfig() error {
	loaded, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		loaded.DBPath = dbPath
	}
	if catalogPath != "" {
		loaded.CatalogPath = catalogPath
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if username != "" {
		loaded.User = username
	}
	if password != "" {
		loaded.Password = password
	}
	cfg = loaded

	// Each run applies its own --log-level.
	logger.Reset()
	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})
	return nil
}

func openStore() error {
	if store != nil {
		return nil
	}
	db, err := cfg.OpenStorage(logger.Get())
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	store = db
	return nil
}

// openSession opens the store and logs in with the configured credentials.
func openSession(cmd *cobra.Command) error {
	if err := openStore(); err != nil {
		return err
	}
	if _, ok := store.CurrentUser(); ok {
		return nil
	}
	if cfg.User == "" || cfg.Password == "" {
		return fmt.Errorf("%w: pass --user and --password or set %sUSER and %sPASSWORD",
			models.ErrUnauthenticated, config.EnvPrefix, config.EnvPrefix)
	}
	if _, err := store.Login(cmd.Context(), cfg.User, cfg.Password); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func closeStore() error {
	if store == nil {
		return nil
	}
	store.Logout()
	err := store.Close()
	store = nil
	return err
}

func loadCatalog() (*catalog.Catalog, error) {
	lib, err := catalog.Load(cfg.GetCatalogPath())
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return lib, nil
}

// friendly rewrites store errors into hints for the terminal.
func friendly(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrUserNotFound), errors.Is(err, models.ErrInvalidCredentials):
		return fmt.Errorf("%w (check --user / --password)", err)
	case errors.Is(err, models.ErrNotFound):
		return fmt.Errorf("%w (ids are listed by 'fitness catalog list')", err)
	case errors.Is(err, models.ErrStorageUnavailable):
		return fmt.Errorf("%w (is the database path writable?)", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default ~/.local/share/fitness/fitness.db)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "exercise catalog path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVarP(&username, "user", "u", "", "username to log in as")
	rootCmd.PersistentFlags().StringVarP(&password, "password", "p", "", "password to log in with")
}

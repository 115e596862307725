// ABOUTME: Fitness configuration: JSON file under XDG_CONFIG_HOME with FITNESS_* env overrides.
// ABOUTME: Resolves the database and catalog paths and opens the store.

package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/fitness/internal/storage"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "FITNESS_"

// Config stores fitness tool configuration.
type Config struct {
	// DataDir is the root directory for data storage. fitness.db and
	// fitness_library.json live here unless overridden.
	// Supports ~ expansion. Defaults to ~/.local/share/fitness.
	DataDir string `json:"data_dir,omitempty" env:"DATA_DIR, overwrite"`

	// DBPath overrides the database file location.
	DBPath string `json:"db_path,omitempty" env:"DB_PATH, overwrite"`

	// CatalogPath overrides the exercise catalog location.
	CatalogPath string `json:"catalog_path,omitempty" env:"CATALOG_PATH, overwrite"`

	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty" env:"LOG_LEVEL, overwrite"`

	// User and Password log in non-interactive commands. The password is
	// only ever read from the environment.
	User     string `json:"user,omitempty" env:"USER, overwrite"`
	Password string `json:"-" env:"PASSWORD, overwrite"`
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetDBPath returns the database path.
func (c *Config) GetDBPath() string {
	if c.DBPath != "" {
		return ExpandPath(c.DBPath)
	}
	if c.DataDir == "" {
		return storage.DefaultDBPath()
	}
	return filepath.Join(c.GetDataDir(), "fitness.db")
}

// GetCatalogPath returns the exercise catalog path.
func (c *Config) GetCatalogPath() string {
	if c.CatalogPath != "" {
		return ExpandPath(c.CatalogPath)
	}
	return filepath.Join(c.GetDataDir(), "fitness_library.json")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite store at GetDBPath.
func (c *Config) OpenStorage(log zerolog.Logger) (*storage.DB, error) {
	return storage.Open(c.GetDBPath(), log)
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitness", "config.json")
}

// Load reads config from disk and applies FITNESS_* environment variables.
func Load() (*Config, error) {
	return LoadWith(envconfig.OsLookuper())
}

// LoadWith is Load with an explicit source for environment values. Names are
// looked up with EnvPrefix applied.
func LoadWith(lookuper envconfig.Lookuper) (*Config, error) {
	cfg, err := readFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookuper),
	}); err != nil {
		return nil, fmt.Errorf("apply environment: %w", err)
	}
	return cfg, nil
}

func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes config to disk. Password is never written.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

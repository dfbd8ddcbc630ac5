package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DBPath       string `yaml:"db_path"`
	DefaultUser  string `yaml:"default_user"`
	LogLevel     string `yaml:"log_level"`
	Output       string `yaml:"output"`
	ImportAtomic bool   `yaml:"import_atomic"`
}

// Load loads configuration from multiple sources with precedence:
// 1. Environment variables
// 2. ./.env.local (dotenv) - walks up parent directories to find it
// 3. ~/.config/tabula/config.yaml (YAML)
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel: "info",
		Output:   "table",
	}

	// Load .env.local if it exists (walking up parent directories)
	if envPath := findEnvLocal(); envPath != "" {
		_ = godotenv.Load(envPath)
	}

	// YAML config is optional, so we don't fail if it doesn't exist
	_ = loadYAMLConfig(cfg)

	// Override with environment variables
	if dbPath := getEnvOrFile("TABULA_DB_PATH", "TABULA_DB_PATH_FILE"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel := os.Getenv("TABULA_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if output := os.Getenv("TABULA_OUTPUT"); output != "" {
		cfg.Output = output
	}
	if defaultUser := os.Getenv("TABULA_USER"); defaultUser != "" {
		cfg.DefaultUser = defaultUser
	}
	if atomic := os.Getenv("TABULA_IMPORT_ATOMIC"); atomic != "" {
		if v, err := strconv.ParseBool(atomic); err == nil {
			cfg.ImportAtomic = v
		}
	}

	// Set defaults if not configured
	if cfg.DBPath == "" {
		// Check for project-local database first
		if _, err := os.Stat(".tabula/tabula.db"); err == nil {
			cfg.DBPath = ".tabula/tabula.db"
		} else {
			// Fall back to user-global database
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			cfg.DBPath = filepath.Join(homeDir, ".local", "share", "tabula", "tabula.db")
		}
	}

	return cfg, nil
}

// loadYAMLConfig loads configuration from ~/.config/tabula/config.yaml
func loadYAMLConfig(cfg *Config) error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(homeDir, ".config", "tabula", "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// getEnvOrFile gets an environment variable value, or reads it from a file
// if the _FILE variant is set
func getEnvOrFile(envVar, fileVar string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}

	if filePath := os.Getenv(fileVar); filePath != "" {
		data, err := os.ReadFile(filePath)
		if err == nil {
			return string(data)
		}
	}

	return ""
}

// findEnvLocal searches for .env.local starting from cwd and walking up
// parent directories. Stops at the user's home directory.
// Returns the path to .env.local if found, empty string otherwise.
func findEnvLocal() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if _, err := os.Stat(".env.local"); err == nil {
			return ".env.local"
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	homeDir = filepath.Clean(homeDir)
	dir := filepath.Clean(cwd)

	for {
		envPath := filepath.Join(dir, ".env.local")
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}

		if dir == homeDir {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// GetUserID returns the current user identifier from environment or config.
// Priority: TABULA_USER_ID > TABULA_USER > config.default_user
func (c *Config) GetUserID() string {
	if userID := os.Getenv("TABULA_USER_ID"); userID != "" {
		return userID
	}
	if user := os.Getenv("TABULA_USER"); user != "" {
		return user
	}
	return c.DefaultUser
}

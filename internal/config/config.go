// Package config provides application configuration with support for
// command-line flags, environment variables, and .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDB       = "AUDIOLOG_DB"
	EnvWebRoot  = "AUDIOLOG_WEB_ROOT"
	EnvUsername = "AUDIOLOG_USERNAME"
	EnvPassword = "AUDIOLOG_PASSWORD"
	EnvLogFile  = "AUDIOLOG_LOG_FILE"
	EnvLogLevel = "AUDIOLOG_LOG_LEVEL"
)

// Config holds the application configuration.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string
	// WebRoot is the document root used by the external HTML layer.
	WebRoot string
	// Username and Password are the credential pair authorizing an
	// ingestion run.
	Username string
	Password string
	LogFile  string
	LogLevel string
}

// Flags carries values parsed from the command line. Empty fields fall
// through to the environment.
type Flags struct {
	DBPath   string
	Username string
	LogFile  string
	LogLevel string
}

// Load resolves configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(envFile string, flags Flags) (*Config, error) {
	// godotenv never overrides variables already present in the
	// environment, which gives env > .env for free.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		DBPath:   firstOf(flags.DBPath, os.Getenv(EnvDB)),
		WebRoot:  os.Getenv(EnvWebRoot),
		Username: firstOf(flags.Username, os.Getenv(EnvUsername)),
		Password: os.Getenv(EnvPassword),
		LogFile:  firstOf(flags.LogFile, os.Getenv(EnvLogFile)),
		LogLevel: firstOf(flags.LogLevel, os.Getenv(EnvLogLevel), "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for basic sanity.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("database file is required (set --db_file or " + EnvDB + ")")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "critical":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}

// firstOf returns the first non-empty value.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

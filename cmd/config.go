package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/etnz/dkbl/statement"
	"github.com/etnz/dkbl/suggest"
)

// Environment variables holding the default configuration.
// They are also passed to extensions.
const (
	EnvOutput      = "DKBL_OUTPUT"
	EnvConfirm     = "DKBL_CONFIRM"
	EnvBank        = "DKBL_BANK"
	EnvVerbose     = "DKBL_VERBOSE"
	EnvGeminiModel = "DKBL_GEMINI_MODEL"
	EnvSQLitePath  = "DKBL_SQLITE_PATH"
)

// Confirmation modes.
const (
	ConfirmAsk = "ask"
	ConfirmYes = "yes"
	ConfirmNo  = "no"
)

// Config holds the settings shared by all commands.
type Config struct {
	Output      string // output folder
	Confirm     string // ask, yes or no
	Bank        string // export format
	Verbose     bool
	GeminiModel string
	SQLitePath  string // defaults to dkbl.sqlite in the output folder
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() Config {
	return Config{
		Output:      getEnv(EnvOutput, "."),
		Confirm:     getEnv(EnvConfirm, ConfirmAsk),
		Bank:        getEnv(EnvBank, "dkb"),
		Verbose:     getEnvBool(EnvVerbose, false),
		GeminiModel: getEnv(EnvGeminiModel, suggest.DefaultModel),
		SQLitePath:  getEnv(EnvSQLitePath, ""),
	}
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Output == "" {
		errs = append(errs, errors.New("output folder cannot be empty"))
	}
	if modes := []string{ConfirmAsk, ConfirmYes, ConfirmNo}; !slices.Contains(modes, c.Confirm) {
		errs = append(errs, fmt.Errorf("invalid confirmation mode %q: must be one of %v", c.Confirm, modes))
	}
	if _, err := statement.Lookup(c.Bank); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DatabasePath returns the SQLite archive path.
func (c Config) DatabasePath() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.Output, "dkbl.sqlite")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

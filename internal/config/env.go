package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// dotEnvFile is read from the working directory.
const dotEnvFile = ".env"

// envLookup resolves a variable and reports which layer supplied it.
type envLookup func(key string) (value string, source ConfigSource, ok bool)

// newEnvLookup prefers the real environment and falls back to dotenv.
func newEnvLookup(dotenv map[string]string) envLookup {
	return func(key string) (string, ConfigSource, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, SourceEnv, true
		}
		if v, ok := dotenv[key]; ok && v != "" {
			return v, SourceDotEnv, true
		}
		return "", "", false
	}
}

// readDotEnv parses a .env file. A missing file is not an error.
func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return values, nil
}

// loadFromEnv overrides config from TASKER_* variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, lookup envLookup, sources map[string]ConfigSource) error {
	setString := func(key, field string, target *string) {
		if v, source, ok := lookup(key); ok {
			*target = v
			if sources != nil {
				sources[field] = source
			}
		}
	}
	setBool := func(key, field string, target *bool) error {
		v, source, ok := lookup(key)
		if !ok {
			return nil
		}
		b, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*target = b
		if sources != nil {
			sources[field] = source
		}
		return nil
	}

	setString("TASKER_FILE", "tasks_file", &cfg.TasksFile)
	setString("TASKER_LOG_DIR", "log_dir", &cfg.LogDir)
	setString("TASKER_LIST_FORMAT", "list_format", &cfg.ListFormat)
	setString("TASKER_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("TASKER_LOG_FORMAT", "log_format", &cfg.LogFormat)

	if err := setBool("TASKER_JOURNAL", "journal", &cfg.Journal); err != nil {
		return err
	}
	if err := setBool("TASKER_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps); err != nil {
		return err
	}
	return setBool("TASKER_LOG_CALLER", "log_caller", &cfg.LogCaller)
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceDotEnv   ConfigSource = ".env file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultTasksFile  = "tasks.json"
	DefaultLogDir     = "~/.tasker"
	DefaultListFormat = "text"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// ListFormats are the accepted values of list_format.
var ListFormats = []string{"text", "json", "yaml"}

// Config holds the full configuration for tasker.
type Config struct {
	// Default file for save/load when the user just presses enter
	TasksFile string `toml:"tasks_file"`

	// Session journal
	LogDir  string `toml:"log_dir"`
	Journal bool   `toml:"journal"`

	// Output format of the list command
	ListFormat string `toml:"list_format"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Project root (computed)
	ProjectRoot string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"tasks_file",
		"log_dir",
		"journal",
		"list_format",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TasksFile = DefaultTasksFile
	cfg.LogDir = DefaultLogDir
	cfg.Journal = false
	cfg.ListFormat = DefaultListFormat
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}

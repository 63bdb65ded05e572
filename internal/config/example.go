package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasker configuration file
# Values can be overridden by a .env file, TASKER_* environment variables,
# or CLI flags.

# Default file offered by save and load (relative to the working directory)
tasks_file = "tasks.json"

# Record a JSONL journal of every operation in a session
journal = false

# Journal directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.tasker"

# Output of "tasker list": text, json, or yaml
list_format = "text"

# Console logging
log_level = "info"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false
`
}

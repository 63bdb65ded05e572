// Package config tests configuration loading.
package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

var taskerEnv = []string{
	"TASKER_FILE",
	"TASKER_LOG_DIR",
	"TASKER_JOURNAL",
	"TASKER_LIST_FORMAT",
	"TASKER_LOG_LEVEL",
	"TASKER_LOG_FORMAT",
	"TASKER_LOG_TIMESTAMPS",
	"TASKER_LOG_CALLER",
}

// isolate points every config location at fresh temp dirs and returns the
// working directory.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, key := range taskerEnv {
		t.Setenv(key, "")
	}
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.TasksFile != DefaultTasksFile {
		t.Errorf("TasksFile: got %q, want %q", cfg.TasksFile, DefaultTasksFile)
	}
	if cfg.LogDir != DefaultLogDir {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, DefaultLogDir)
	}
	if cfg.Journal {
		t.Error("Journal: got true, want false")
	}
	if cfg.ListFormat != "text" || cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadDefaultsOnly(t *testing.T) {
	_, work := isolate(t)

	cws, err := LoadWithSources(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config
	if cfg.TasksFile != filepath.Join(work, DefaultTasksFile) {
		t.Errorf("TasksFile: got %q", cfg.TasksFile)
	}
	if strings.HasPrefix(cfg.LogDir, "~") {
		t.Errorf("LogDir not expanded: %q", cfg.LogDir)
	}
	for _, field := range cws.Fields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
	if cws.ActiveFile() != "" {
		t.Errorf("ActiveFile: got %q, want none", cws.ActiveFile())
	}
}

func TestLoadLayering(t *testing.T) {
	home, _ := isolate(t)

	writeFile(t, filepath.Join(home, ".tasker", "tasker.toml"), `
tasks_file = "user.json"
log_level = "debug"
journal = true
`)
	writeFile(t, "tasker.toml", `
tasks_file = "project.json"
list_format = "yaml"
`)
	writeFile(t, ".env", "TASKER_LOG_FORMAT=json\nTASKER_LIST_FORMAT=json\n")
	t.Setenv("TASKER_LIST_FORMAT", "text")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cws, err := LoadWithSources(fs, []string{"--log-level", "warn"})
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	if filepath.Base(cfg.TasksFile) != "project.json" {
		t.Errorf("TasksFile: got %q, want project.json", cfg.TasksFile)
	}
	if !cfg.Journal {
		t.Error("Journal: want true from user file")
	}
	if cfg.ListFormat != "text" {
		t.Errorf("ListFormat: got %q, want text (environment beats .env)", cfg.ListFormat)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat: got %q, want json from .env", cfg.LogFormat)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel: got %q, want warn from flag", cfg.LogLevel)
	}

	want := map[string]ConfigSource{
		"tasks_file":  SourceProjFile,
		"journal":     SourceUserFile,
		"list_format": SourceEnv,
		"log_format":  SourceDotEnv,
		"log_level":   SourceFlag,
		"log_dir":     SourceDefault,
	}
	for field, source := range want {
		if got := cws.Sources[field]; got != source {
			t.Errorf("source of %s: got %q, want %q", field, got, source)
		}
	}
	if len(cws.Files) != 2 || cws.ActiveFile() != "tasker.toml" {
		t.Errorf("Files: got %v", cws.Files)
	}
}

func TestLoadConfigFileUnknownKey(t *testing.T) {
	isolate(t)
	writeFile(t, ".tasker.toml", "tasks_fiel = \"typo.json\"\n")

	_, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err == nil {
		t.Fatal("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "tasks_fiel") {
		t.Errorf("error should name the key: %v", err)
	}
}

func TestLoadInvalidListFormat(t *testing.T) {
	isolate(t)
	_, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), []string{"--format", "xml"})
	if err == nil || !strings.Contains(err.Error(), "list_format") {
		t.Errorf("expected list_format error, got %v", err)
	}
}

func TestLoadFromEnvInvalidBool(t *testing.T) {
	isolate(t)
	t.Setenv("TASKER_JOURNAL", "maybe")

	_, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err == nil || !strings.Contains(err.Error(), "TASKER_JOURNAL") {
		t.Errorf("expected TASKER_JOURNAL error, got %v", err)
	}
}

func TestParseFlagsLeavesArgs(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if err := parseFlags(cfg, fs, []string{"--file", "mine.json", "--journal", "list", "extra"}, nil); err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.TasksFile != "mine.json" || !cfg.Journal {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if got := fs.Args(); len(got) != 2 || got[0] != "list" {
		t.Errorf("remaining args: got %v", got)
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"1", true, false},
		{"true", true, false},
		{"YES", true, false},
		{" on ", true, false},
		{"0", false, false},
		{"off", false, false},
		{"F", false, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := boolFromString(tt.input)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("boolFromString(%q): got (%v, %v)", tt.input, got, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("TASKER_TEST_DIR", "/srv/tasks")

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"~/test", filepath.Join(home, "test")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
		{"$TASKER_TEST_DIR/x.json", "/srv/tasks/x.json"},
	}
	if runtime.GOOS != "windows" {
		tests = append(tests, struct {
			input string
			want  string
		}{`~\test`, `~\test`})
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := expandPath(tt.input); got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	isolate(t)
	writeFile(t, "tasker.toml", ExampleConfig())

	cfg, err := Load(flag.NewFlagSet("test", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("example config does not load: %v", err)
	}
	if filepath.Base(cfg.TasksFile) != DefaultTasksFile {
		t.Errorf("TasksFile: got %q", cfg.TasksFile)
	}
}

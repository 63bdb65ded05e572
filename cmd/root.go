// Package cmd implements the CLI command structure for tasker.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/tasker-go/internal/config"
	"github.com/nibzard/tasker-go/internal/logging"
	"github.com/nibzard/tasker-go/internal/shell"
	"github.com/nibzard/tasker-go/internal/todo"
	"github.com/nibzard/tasker-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries the streams and settings shared by every subcommand.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	cws    *config.ConfigWithSources
	cfg    *config.Config
	logger *log.Logger
}

// Run executes the tasker CLI on the process streams.
func Run(ctx context.Context, args []string) error {
	return RunWithIO(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

// RunWithIO executes the tasker CLI reading from in and writing to out and
// errOut.
func RunWithIO(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasker", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		printUsage(fs, errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a := &app{
		in:     in,
		out:    out,
		errOut: errOut,
		cws:    cws,
		cfg:    cws.Config,
	}
	a.logger = logging.NewConsoleFromConfig(errOut, a.cfg.LogLevel, a.cfg.LogFormat, a.cfg.LogTimestamps, a.cfg.LogCaller)

	if *help {
		printUsage(fs, out)
		return nil
	}
	if *showVersion {
		return a.versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "shell" as default
	subcommand := "shell"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}
	a.logger.Debug("dispatch", "command", subcommand, "config", cws.ActiveFile())

	switch subcommand {
	case "shell":
		return a.shellCommand(ctx, remainingArgs)
	case "list", "ls":
		return a.listCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "validate":
		return a.validateCommand(remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "journal":
		return a.journalCommand(remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, out)
		return nil
	default:
		// An existing file opens the shell with it preloaded
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			return a.shellCommand(ctx, append([]string{subcommand}, remainingArgs...))
		}
		fmt.Fprintf(errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// fileArg returns the optional single file argument, falling back to the
// configured tasks file. Relative paths are resolved against the project root.
func (a *app) fileArg(args []string) (string, bool, error) {
	if len(args) > 1 {
		return "", false, fmt.Errorf("unexpected arguments: %v", args[1:])
	}
	path := a.cfg.TasksFile
	given := len(args) == 1
	if given {
		path = args[0]
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(a.cfg.ProjectRoot, path)
	}
	return path, given, nil
}

// shellCommand runs the interactive menu, optionally preloading a file.
func (a *app) shellCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasker shell", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, given, err := a.fileArg(fs.Args())
	if err != nil {
		return err
	}

	registry := todo.NewRegistry()
	if given {
		msg, err := registry.LoadFromFile(path)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, msg)
	}

	journal, err := a.openJournal()
	if err != nil {
		return err
	}
	defer func() {
		if err := journal.Close(); err != nil {
			a.logger.Error("closing journal", "err", err)
		}
	}()

	sh := shell.New(registry, a.in, a.out,
		shell.WithLogger(a.logger),
		shell.WithJournal(journal),
		shell.WithDefaultFile(path),
	)
	return sh.Run(ctx)
}

// openJournal starts a session journal when enabled. A nil journal records
// nothing.
func (a *app) openJournal() (*logging.Journal, error) {
	if !a.cfg.Journal {
		return nil, nil
	}
	journal, err := logging.NewJournal(a.cfg.LogDir, a.cfg.ProjectRoot)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	a.logger.Debug("journal opened", "path", journal.Path)
	return journal, nil
}

// listCommand prints the tasks stored in a file.
func (a *app) listCommand(args []string) error {
	fs := flag.NewFlagSet("tasker list", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	format := fs.String("format", a.cfg.ListFormat, "Output format (text|json|yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, _, err := a.fileArg(fs.Args())
	if err != nil {
		return err
	}

	registry := todo.NewRegistry()
	if _, err := registry.LoadFromFile(path); err != nil {
		return err
	}
	return writeTasks(a.out, registry.List(), *format)
}

func writeTasks(w io.Writer, tasks []todo.Task, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "text", "":
		if len(tasks) == 0 {
			fmt.Fprintln(w, "No tasks.")
			return nil
		}
		for _, task := range tasks {
			fmt.Fprint(w, task.Render())
		}
		return nil
	case "json":
		data, err := todo.EncodeTasks(tasks)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "yaml":
		if tasks == nil {
			tasks = []todo.Task{}
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (expected %s)", format, strings.Join(config.ListFormats, ", "))
	}
}

// tuiCommand launches the read-only browser.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasker tui", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, _, err := a.fileArg(fs.Args())
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, path, ui.WithInput(a.in), ui.WithOutput(a.out))
}

// validateCommand checks a task file against the file schema.
func (a *app) validateCommand(args []string) error {
	fs := flag.NewFlagSet("tasker validate", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	if err := fs.Parse(args); err != nil {
		return err
	}
	path, _, err := a.fileArg(fs.Args())
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &todo.OpError{Op: "validate", Subject: path, Kind: todo.ErrNotFound, Err: err}
		}
		return &todo.OpError{Op: "validate", Subject: path, Kind: todo.ErrIO, Err: err}
	}

	fmt.Fprintf(a.out, "Task file: %s\n", path)
	tasks, err := todo.DecodeTasks(data)
	if err != nil {
		var verrs todo.ValidationErrors
		if errors.As(err, &verrs) {
			fmt.Fprintln(a.out, "  ❌ Validation failed:")
			for _, e := range verrs {
				fmt.Fprintf(a.out, "     - %v\n", e)
			}
		} else {
			fmt.Fprintf(a.out, "  ❌ %v\n", err)
		}
		return fmt.Errorf("validation failed")
	}

	fmt.Fprintf(a.out, "  ✅ Valid (%d task(s))\n", len(tasks))
	if dups := duplicateNames(tasks); len(dups) > 0 {
		fmt.Fprintf(a.out, "  ⚠️  Duplicate names, only the first is reachable: %s\n", strings.Join(dups, ", "))
	}
	return nil
}

func duplicateNames(tasks []todo.Task) []string {
	seen := make(map[string]int, len(tasks))
	var dups []string
	for _, t := range tasks {
		seen[t.Name]++
		if seen[t.Name] == 2 {
			dups = append(dups, t.Name)
		}
	}
	return dups
}

// configCommand shows effective configuration values and their sources.
func (a *app) configCommand(args []string) error {
	fs := flag.NewFlagSet("tasker config", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *example {
		fmt.Fprint(a.out, config.ExampleConfig())
		return nil
	}

	if len(a.cws.Files) == 0 {
		fmt.Fprintln(a.out, "Config files: (none)")
	} else {
		fmt.Fprintln(a.out, "Config files:")
		for _, f := range a.cws.Files {
			fmt.Fprintf(a.out, "  %s\n", f)
		}
	}
	fmt.Fprintln(a.out)
	for _, field := range a.cws.Fields() {
		fmt.Fprintf(a.out, "%-15s = %-30s (%s)\n", field, a.cfg.Value(field), a.cws.Sources[field])
	}
	return nil
}

// journalCommand prints the latest session journal for the project.
func (a *app) journalCommand(args []string) error {
	fs := flag.NewFlagSet("tasker journal", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	n := fs.Int("n", 0, "Number of events to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	dir, err := logging.FindJournalDir(a.cfg.LogDir, a.cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding journal directory: %w", err)
	}
	path, err := logging.FindLatestJournal(dir)
	if err != nil {
		return fmt.Errorf("finding latest journal: %w", err)
	}
	if path == "" {
		fmt.Fprintln(a.out, "No journals found.")
		return nil
	}

	events, err := logging.ReadEvents(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Journal: %s\n\n", path)
	logging.WriteEvents(a.out, events, *n)
	return nil
}

// versionCommand prints version information.
func (a *app) versionCommand() error {
	fmt.Fprintf(a.out, "tasker version %s (%s/%s)\n", Version, runtime.GOOS, runtime.GOARCH)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasker - A small interactive task tracker")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasker [options] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  shell [file]     Interactive menu (default command), optionally preloading a file")
	fmt.Fprintln(w, "  list [file]      Print the tasks stored in a file")
	fmt.Fprintln(w, "  tui [file]       Browse a task file in a terminal UI")
	fmt.Fprintln(w, "  validate [file]  Check a task file against the file schema")
	fmt.Fprintln(w, "  config           Show effective configuration and where it came from")
	fmt.Fprintln(w, "  journal          Show the latest session journal")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'list' command):")
	fmt.Fprintln(w, "  -format string")
	fmt.Fprintln(w, "        Output format (text|json|yaml)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Journal Options (use with 'journal' command):")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of events to show (0 = all)")
}

// Package shell implements the interactive menu loop that drives a task
// registry from line-oriented input.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasker-go/internal/logging"
	"github.com/nibzard/tasker-go/internal/todo"
)

// Option configures a Shell.
type Option func(*Shell)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Shell) {
		s.logger = logger
	}
}

// WithJournal records every operation to j.
func WithJournal(j *logging.Journal) Option {
	return func(s *Shell) {
		s.journal = j
	}
}

// WithDefaultFile sets the path offered by save and load.
func WithDefaultFile(path string) Option {
	return func(s *Shell) {
		s.defaultFile = path
	}
}

// Shell is one interactive session over a registry it does not own.
type Shell struct {
	registry    *todo.Registry
	in          *bufio.Reader
	out         io.Writer
	logger      *log.Logger
	journal     *logging.Journal
	defaultFile string
	unsaved     int
}

// New creates a shell reading commands from in and writing to out.
func New(registry *todo.Registry, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		registry: registry,
		in:       bufio.NewReader(in),
		out:      out,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type command struct {
	key     string
	aliases []string
	label   string
	run     func(*Shell) error
}

var commands = []command{
	{"1", []string{"add", "a"}, "Add task", (*Shell).add},
	{"2", []string{"find", "f"}, "Find task", (*Shell).find},
	{"3", []string{"edit", "e"}, "Edit task", (*Shell).edit},
	{"4", []string{"remove", "rm", "r"}, "Remove task", (*Shell).remove},
	{"5", []string{"list", "ls", "l"}, "List tasks", (*Shell).list},
	{"6", []string{"save", "s"}, "Save to file", (*Shell).save},
	{"7", []string{"load", "o"}, "Load from file", (*Shell).load},
	{"8", []string{"quit", "exit", "q"}, "Quit", nil},
}

func lookupCommand(input string) (command, bool) {
	input = strings.ToLower(strings.TrimSpace(input))
	for _, c := range commands {
		if input == c.key {
			return c, true
		}
		for _, alias := range c.aliases {
			if input == alias {
				return c, true
			}
		}
	}
	return command{}, false
}

// errQuit ends the loop without error.
var errQuit = errors.New("quit")

// Run executes the menu loop until the user quits, input ends, or ctx is
// cancelled. End of input is a normal exit.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, err := s.prompt("Choose an option: ")
		if err != nil {
			return endOfInput(err)
		}
		if strings.TrimSpace(choice) == "" {
			continue
		}

		cmd, ok := lookupCommand(choice)
		if !ok {
			fmt.Fprintf(s.out, "Unknown option %q\n\n", strings.TrimSpace(choice))
			continue
		}
		if cmd.run == nil {
			err = s.quit()
		} else {
			err = cmd.run(s)
		}
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			return endOfInput(err)
		}
		fmt.Fprintln(s.out)
	}
}

func endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Shell) printMenu() {
	fmt.Fprintln(s.out, "Task Tracker")
	for _, c := range commands {
		fmt.Fprintf(s.out, "  %s. %s\n", c.key, c.label)
	}
}

// prompt writes label and reads one line without its line ending. A final
// line without a newline is returned before io.EOF.
func (s *Shell) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			fmt.Fprintln(s.out)
			return "", io.EOF
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptName asks until a non-blank name is given.
func (s *Shell) promptName(label string) (string, error) {
	for {
		name, err := s.prompt(label)
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)
		if name != "" {
			return name, nil
		}
		fmt.Fprintln(s.out, "Task name cannot be empty.")
	}
}

// promptPriority parses the answer, warning when it falls back to Low.
func (s *Shell) promptPriority(label string) (todo.Priority, string, error) {
	raw, err := s.prompt(label)
	if err != nil {
		return todo.PriorityLow, "", err
	}
	p, ok := todo.ParsePriority(raw)
	if !ok && strings.TrimSpace(raw) != "" {
		fmt.Fprintf(s.out, "Unrecognized priority %q, using %s.\n", strings.TrimSpace(raw), p)
		s.logger.Warn("priority defaulted", "input", raw, "priority", p)
	}
	return p, raw, nil
}

func (s *Shell) promptPath(label string) (string, error) {
	if s.defaultFile != "" {
		label = fmt.Sprintf("%s [%s]: ", label, s.defaultFile)
	} else {
		label += ": "
	}
	path, err := s.prompt(label)
	if err != nil {
		return "", err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		path = s.defaultFile
	}
	return path, nil
}

// report prints the outcome of an operation and records it.
func (s *Shell) report(op, subject, msg string, err error) {
	event := logging.Event{Op: op, Subject: subject, OK: err == nil, Message: msg}
	if err != nil {
		event.Error = err.Error()
		fmt.Fprintf(s.out, "Error: %v\n", err)
		s.logger.Debug("operation failed", "op", op, "subject", subject, "kind", todo.KindOf(err))
	} else {
		fmt.Fprintln(s.out, msg)
		s.logger.Debug("operation succeeded", "op", op, "subject", subject)
	}
	if jerr := s.journal.Record(event); jerr != nil {
		s.logger.Error("journal write failed", "err", jerr)
	}
}

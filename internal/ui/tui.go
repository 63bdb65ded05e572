// Package ui provides optional terminal interfaces.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/tasker-go/internal/todo"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	output io.Writer
	input  io.Reader
}

// WithOutput renders to w instead of stdout.
func WithOutput(w io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.output = w
	}
}

// WithInput reads keys from r instead of stdin.
func WithInput(r io.Reader) TUIOption {
	return func(c *tuiConfig) {
		c.input = r
	}
}

// RunTUI opens a read-only browser over the tasks stored at path.
func RunTUI(ctx context.Context, path string, opts ...TUIOption) error {
	c := &tuiConfig{output: os.Stdout, input: os.Stdin}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(c.output) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(path)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithOutput(c.output),
		tea.WithInput(c.input),
	)
	_, err := program.Run()
	return err
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	detailStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	priorityStyles = map[todo.Priority]lipgloss.Style{
		todo.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("70")),
		todo.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		todo.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
)

type tuiModel struct {
	path     string
	registry *todo.Registry
	tasks    []todo.Task
	cursor   int
	loadErr  error
	status   string
	showHelp bool
}

// loadedMsg carries the outcome of reading the task file.
type loadedMsg struct {
	registry *todo.Registry
	message  string
	err      error
}

func newTUIModel(path string) *tuiModel {
	return &tuiModel{path: path}
}

func (m *tuiModel) Init() tea.Cmd {
	return loadCmd(m.path)
}

func loadCmd(path string) tea.Cmd {
	return func() tea.Msg {
		r := todo.NewRegistry()
		msg, err := r.LoadFromFile(path)
		return loadedMsg{registry: r, message: msg, err: err}
	}
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.tasks)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			if len(m.tasks) > 0 {
				m.cursor = len(m.tasks) - 1
			}
		case "r", "f5":
			m.status = "Reloading..."
			return m, loadCmd(m.path)
		case "h", "?":
			m.showHelp = !m.showHelp
		}
	case loadedMsg:
		m.applyLoad(msg)
	}
	return m, nil
}

// applyLoad keeps the previous tasks on screen when a reload fails.
func (m *tuiModel) applyLoad(msg loadedMsg) {
	m.loadErr = msg.err
	if msg.err != nil {
		m.status = ""
		return
	}
	m.registry = msg.registry
	m.tasks = msg.registry.List()
	m.status = msg.message
	if m.cursor >= len(m.tasks) {
		m.cursor = max(len(m.tasks)-1, 0)
	}
}

func (m *tuiModel) selected() (todo.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return todo.Task{}, false
	}
	return m.tasks[m.cursor], true
}

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Tracker") + "\n")
	b.WriteString(dimStyle.Render(m.path) + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading task file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
	}

	switch {
	case m.registry == nil && m.loadErr == nil:
		b.WriteString("Loading...\n\n")
	case len(m.tasks) == 0 && m.registry != nil:
		b.WriteString("  No tasks.\n\n")
	case len(m.tasks) > 0:
		writeList(&b, m.tasks, m.cursor)
		if task, ok := m.selected(); ok {
			b.WriteString(detailStyle.Render(strings.TrimRight(task.Render(), "\n")) + "\n\n")
		}
	}

	if m.status != "" {
		b.WriteString(dimStyle.Render(m.status) + "\n")
	}
	writeFooter(&b)
	return b.String()
}

func writeList(b *strings.Builder, tasks []todo.Task, cursor int) {
	for i, task := range tasks {
		line := formatTask(task)
		if i == cursor {
			b.WriteString(selectedStyle.Render("> "+line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")
}

func formatTask(t todo.Task) string {
	label := fmt.Sprintf("%-6s", t.PriorityLabel())
	if style, ok := priorityStyles[t.Priority]; ok {
		label = style.Render(label)
	}
	return label + " " + t.Name
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up, k        Previous task\n")
	b.WriteString("  down, j      Next task\n")
	b.WriteString("  g, G         First or last task\n")
	b.WriteString("  r, F5        Reload file\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	b.WriteString("  q, ctrl+c    Quit\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString(dimStyle.Render("Press h for help | r to reload | q to quit") + "\n")
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/tasker-go/internal/todo"
)

func writeTasks(t *testing.T, names ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	r := todo.NewRegistry()
	for _, name := range names {
		r.Add(todo.NewTask(name, "about "+name, todo.PriorityMedium))
	}
	if _, err := r.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}
	return path
}

// loaded runs the model's init command and feeds its result back.
func loaded(t *testing.T, path string) *tuiModel {
	t.Helper()
	m := newTUIModel(path)
	msg := m.Init()()
	m.Update(msg)
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelLoadsTasks(t *testing.T) {
	m := loaded(t, writeTasks(t, "first", "second"))
	if m.loadErr != nil {
		t.Fatalf("loadErr: %v", m.loadErr)
	}
	if len(m.tasks) != 2 {
		t.Fatalf("tasks: got %d, want 2", len(m.tasks))
	}

	view := m.View()
	for _, want := range []string{"Task Tracker", "first", "second", "Task Name: first", "Loaded 2 task(s)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModelNavigation(t *testing.T) {
	m := loaded(t, writeTasks(t, "a", "b", "c"))

	steps := []struct {
		key  string
		want int
	}{
		{"down", 1},
		{"j", 2},
		{"j", 2},
		{"up", 1},
		{"k", 0},
		{"k", 0},
		{"G", 2},
		{"g", 0},
	}
	for _, step := range steps {
		m.Update(key(step.key))
		if m.cursor != step.want {
			t.Fatalf("after %q: cursor %d, want %d", step.key, m.cursor, step.want)
		}
	}

	m.Update(key("j"))
	if task, _ := m.selected(); task.Name != "b" {
		t.Errorf("selected: got %q, want b", task.Name)
	}
	if !strings.Contains(m.View(), "Task Name: b") {
		t.Error("detail pane should show the selected task")
	}
}

func TestModelMissingFile(t *testing.T) {
	m := loaded(t, filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(m.loadErr, todo.ErrNotFound) {
		t.Fatalf("loadErr: got %v, want not found", m.loadErr)
	}
	if !strings.Contains(m.View(), "Error loading task file") {
		t.Error("view should show the load error")
	}
}

func TestModelReloadKeepsTasksOnError(t *testing.T) {
	path := writeTasks(t, "a", "b")
	m := loaded(t, path)
	m.Update(key("j"))

	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, cmd := m.Update(key("r"))
	if cmd == nil {
		t.Fatal("reload should return a command")
	}
	m.Update(cmd())

	if !errors.Is(m.loadErr, todo.ErrDeserialization) {
		t.Errorf("loadErr: got %v", m.loadErr)
	}
	if len(m.tasks) != 2 || m.cursor != 1 {
		t.Errorf("previous tasks should stay: %d tasks, cursor %d", len(m.tasks), m.cursor)
	}
}

func TestModelReloadClampsCursor(t *testing.T) {
	path := writeTasks(t, "a", "b", "c")
	m := loaded(t, path)
	m.Update(key("G"))

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	r := todo.NewRegistry()
	r.Add(todo.NewTask("only", "", todo.PriorityLow))
	if _, err := r.SaveToFile(path); err != nil {
		t.Fatal(err)
	}
	_, cmd := m.Update(key("r"))
	m.Update(cmd())

	if m.cursor != 0 {
		t.Errorf("cursor: got %d, want 0", m.cursor)
	}
}

func TestModelEmptyFile(t *testing.T) {
	m := loaded(t, writeTasks(t))
	if !strings.Contains(m.View(), "No tasks.") {
		t.Errorf("view:\n%s", m.View())
	}
	m.Update(key("j"))
	if m.cursor != 0 {
		t.Errorf("cursor moved on empty list: %d", m.cursor)
	}
}

func TestModelHelpAndQuit(t *testing.T) {
	m := loaded(t, writeTasks(t, "a"))

	m.Update(key("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not shown")
	}
	m.Update(key("h"))
	if strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("help screen not toggled off")
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestRunTUIRequiresTTY(t *testing.T) {
	var out bytes.Buffer
	err := RunTUI(context.Background(), "tasks.json", WithOutput(&out))
	if err == nil || !strings.Contains(err.Error(), "TTY") {
		t.Errorf("expected TTY error, got %v", err)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a TTY")
	}
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTTY(f) {
		t.Error("regular file is not a TTY")
	}
}

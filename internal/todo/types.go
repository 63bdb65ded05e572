// Package todo holds the in-memory task registry and its JSON file format.
package todo

import (
	"fmt"
	"strings"
	"time"
)

// AddedOnLayout formats CreatedAt for display (DD-MM-YYYY HH:MM:SS).
const AddedOnLayout = "02-01-2006 15:04:05"

// separator closes every rendered task block.
const separator = "-------------------------"

// Task is a single tracked to-do item.
type Task struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	Priority    Priority  `json:"priority" yaml:"priority"`
	CreatedAt   time.Time `json:"add_time" yaml:"add_time"`
}

// NewTask creates a task stamped with the current local time.
func NewTask(name, description string, priority Priority) Task {
	return Task{
		Name:        name,
		Description: description,
		Priority:    priority,
		CreatedAt:   time.Now(),
	}
}

// IsZero returns true if the task has no name.
func (t Task) IsZero() bool {
	return t.Name == ""
}

// PriorityLabel returns the display label of the task's priority.
func (t Task) PriorityLabel() string {
	return t.Priority.String()
}

// Render returns a human-readable block describing the task, ending with
// a separator line and a trailing newline.
func (t Task) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Task Name: %s\n", t.Name)
	fmt.Fprintf(&b, "Description: %s\n", t.Description)
	fmt.Fprintf(&b, "Priority: %s\n", t.PriorityLabel())
	fmt.Fprintf(&b, "Added on: %s\n", t.CreatedAt.Format(AddedOnLayout))
	b.WriteString(separator + "\n")
	return b.String()
}

// Equal reports whether two tasks carry the same field values. Creation
// times are compared as instants, so a task survives a file round trip.
func (t Task) Equal(other Task) bool {
	return t.Name == other.Name &&
		t.Description == other.Description &&
		t.Priority == other.Priority &&
		t.CreatedAt.Equal(other.CreatedAt)
}

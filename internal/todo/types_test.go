package todo

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input  string
		want   Priority
		wantOK bool
	}{
		{"Low", PriorityLow, true},
		{"medium", PriorityMedium, true},
		{"HIGH", PriorityHigh, true},
		{"  High  ", PriorityHigh, true},
		{"urgent", PriorityLow, false},
		{"", PriorityLow, false},
		{"Med", PriorityLow, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParsePriority(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParsePriority(%q): got (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPriorityString(t *testing.T) {
	want := map[Priority]string{
		PriorityLow:    "Low",
		PriorityMedium: "Medium",
		PriorityHigh:   "High",
	}
	for _, p := range Priorities() {
		if got := p.String(); got != want[p] {
			t.Errorf("String(%d): got %q, want %q", int(p), got, want[p])
		}
	}
	if got := Priority(9).String(); got != "Priority(9)" {
		t.Errorf("String(9): got %q", got)
	}
}

func TestPriorityUnmarshalStrict(t *testing.T) {
	var p Priority
	if err := json.Unmarshal([]byte(`"Medium"`), &p); err != nil {
		t.Fatalf("Unmarshal Medium: %v", err)
	}
	if p != PriorityMedium {
		t.Errorf("got %v, want Medium", p)
	}
	if err := json.Unmarshal([]byte(`"medium"`), &p); err == nil {
		t.Error("expected error for lowercase tag in file data")
	}
	if err := json.Unmarshal([]byte(`"Urgent"`), &p); err == nil {
		t.Error("expected error for unknown tag")
	}
}

func TestNewTask(t *testing.T) {
	before := time.Now()
	task := NewTask("Complete project", "Finish by Friday", PriorityHigh)
	after := time.Now()

	if task.Name != "Complete project" || task.Description != "Finish by Friday" || task.Priority != PriorityHigh {
		t.Errorf("unexpected task fields: %+v", task)
	}
	if task.CreatedAt.Before(before) || task.CreatedAt.After(after) {
		t.Errorf("CreatedAt %v not within [%v, %v]", task.CreatedAt, before, after)
	}
	if task.CreatedAt.Location() != time.Local {
		t.Errorf("CreatedAt location: got %v, want Local", task.CreatedAt.Location())
	}
}

func TestRender(t *testing.T) {
	task := Task{
		Name:        "Complete project",
		Description: "Finish the project by the end of the week.",
		Priority:    PriorityHigh,
		CreatedAt:   time.Date(2026, time.October, 9, 7, 5, 3, 0, time.Local),
	}

	want := "Task Name: Complete project\n" +
		"Description: Finish the project by the end of the week.\n" +
		"Priority: High\n" +
		"Added on: 09-10-2026 07:05:03\n" +
		"-------------------------\n"
	if got := task.Render(); got != want {
		t.Errorf("Render:\ngot:\n%s\nwant:\n%s", got, want)
	}
	if got := task.PriorityLabel(); got != "High" {
		t.Errorf("PriorityLabel: got %q, want High", got)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"plain", errors.New("boom"), nil},
		{"not found", opError("edit", "x", ErrNotFound, nil), ErrNotFound},
		{"io", opError("load", "p", ErrIO, errors.New("disk")), ErrIO},
		{"wrapped", errors.Join(errors.New("ctx"), opError("save", "p", ErrAlreadyExists, nil)), ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpErrorMessage(t *testing.T) {
	err := opError("load", "tasks.json", ErrIO, errors.New("permission denied"))
	want := `load "tasks.json": i/o error: permission denied`
	if got := err.Error(); got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/0", "[0]"},
		{"/0/priority", "[0].priority"},
		{"#/12/add_time", "[12].add_time"},
		{"/a~1b/c~0d", "a/b.c~d"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
		}
	}
}

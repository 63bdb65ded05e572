package todo

import (
	"fmt"
	"strings"
)

// Priority is the importance of a task. It has no ordering semantics.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// priorityNames is the single mapping between priorities and their text.
// The same string is the display label and the serialized tag.
var priorityNames = [...]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
}

// Priorities returns every priority in declaration order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Valid reports whether p is one of the declared priorities.
func (p Priority) Valid() bool {
	return p >= PriorityLow && int(p) < len(priorityNames)
}

// String returns the display label ("Low", "Medium" or "High").
func (p Priority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("Priority(%d)", int(p))
	}
	return priorityNames[p]
}

// ParsePriority parses user input case-insensitively. Unrecognized input
// yields PriorityLow with ok set to false so the caller can warn.
func ParsePriority(s string) (p Priority, ok bool) {
	if p, err := priorityFromTag(strings.TrimSpace(s), true); err == nil {
		return p, true
	}
	return PriorityLow, false
}

// priorityFromTag looks s up in priorityNames.
func priorityFromTag(s string, foldCase bool) (Priority, error) {
	for i, name := range priorityNames {
		if s == name || (foldCase && strings.EqualFold(s, name)) {
			return Priority(i), nil
		}
	}
	return PriorityLow, fmt.Errorf("unknown priority %q", s)
}

// MarshalText encodes the priority as its tag name.
func (p Priority) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority %d", int(p))
	}
	return []byte(priorityNames[p]), nil
}

// UnmarshalText decodes a tag name. Unlike ParsePriority it is strict:
// a file carrying an unknown tag is malformed.
func (p *Priority) UnmarshalText(text []byte) error {
	v, err := priorityFromTag(string(text), false)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// MarshalYAML encodes the priority as its tag name.
func (p Priority) MarshalYAML() (interface{}, error) {
	text, err := p.MarshalText()
	if err != nil {
		return nil, err
	}
	return string(text), nil
}

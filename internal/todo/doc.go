// Package todo holds the in-memory task registry and its JSON file format.
//
// A Registry is an ordered list of Task values keyed by name. Lookups are
// exact and case-sensitive, and when several tasks share a name the first
// one in insertion order is the one found, edited, or removed.
//
// # File Format
//
// SaveToFile writes the whole registry as a single JSON array:
//
//	[
//	  {
//	    "name": "Write report",
//	    "description": "Quarterly numbers",
//	    "priority": "High",
//	    "add_time": "2026-10-19T09:30:00.123456789+02:00"
//	  }
//	]
//
// When writing task files, the package uses:
//   - 2-space indentation
//   - Trailing newline
//   - Priority as its tag name ("Low", "Medium", "High")
//   - add_time as RFC 3339 with a zone offset
//
// Files are never overwritten: SaveToFile refuses any existing path.
// LoadFromFile validates the file against an embedded JSON Schema and
// replaces the registry contents only after the whole file decoded.
//
// # Errors
//
// Every failing operation returns an *OpError whose kind is one of
// ErrNotFound, ErrAlreadyExists, ErrIO, ErrSerialization or
// ErrDeserialization. Callers branch with errors.Is or KindOf.
package todo

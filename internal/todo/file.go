package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// SaveToFile writes every task to a new file at path as a JSON array.
// It never overwrites: an existing path fails with ErrAlreadyExists and is
// left untouched. A partially written file is removed.
func (r *Registry) SaveToFile(path string) (string, error) {
	if _, err := os.Lstat(path); err == nil {
		return "", opError("save", path, ErrAlreadyExists, fs.ErrExist)
	}

	data, err := EncodeTasks(r.tasks)
	if err != nil {
		return "", opError("save", path, ErrSerialization, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", opError("save", path, ErrAlreadyExists, err)
		}
		return "", opError("save", path, ErrIO, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", opError("save", path, ErrIO, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", opError("save", path, ErrIO, err)
	}

	return fmt.Sprintf("Saved %d task(s) to '%s'", len(r.tasks), path), nil
}

// LoadFromFile replaces the registry contents with the tasks stored at
// path. The registry is only modified when the whole file is valid.
func (r *Registry) LoadFromFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", opError("load", path, ErrNotFound, err)
		}
		return "", opError("load", path, ErrIO, err)
	}

	tasks, err := DecodeTasks(data)
	if err != nil {
		return "", opError("load", path, ErrDeserialization, err)
	}

	r.replace(tasks)
	return fmt.Sprintf("Loaded %d task(s) from '%s'", len(tasks), path), nil
}

// DecodeTasks validates data against the task file schema and decodes it.
// Creation times are converted to local time.
func DecodeTasks(data []byte) ([]Task, error) {
	if err := ValidateData(data); err != nil {
		return nil, err
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse task file: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	for i := range tasks {
		tasks[i].CreatedAt = tasks[i].CreatedAt.Local()
	}
	return tasks, nil
}

// EncodeTasks marshals tasks in the file format: 2-space indentation and
// a trailing newline. A nil list encodes as an empty array.
func EncodeTasks(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal task file: %w", err)
	}

	// Add trailing newline
	return append(data, '\n'), nil
}

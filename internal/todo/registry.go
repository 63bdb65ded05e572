package todo

import "fmt"

// Registry is an ordered collection of tasks. Insertion order is display
// order. The registry owns its tasks: values passed in are copied, and
// values handed out are copies.
//
// A Registry is not safe for concurrent use.
type Registry struct {
	tasks []Task
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of tasks.
func (r *Registry) Len() int {
	return len(r.tasks)
}

// Add appends a task. Names are not required to be unique.
func (r *Registry) Add(task Task) {
	r.tasks = append(r.tasks, task)
}

// FindIndex returns the position of the first task whose name equals name
// exactly.
func (r *Registry) FindIndex(name string) (int, bool) {
	for i := range r.tasks {
		if r.tasks[i].Name == name {
			return i, true
		}
	}
	return -1, false
}

// Find returns a copy of the first task named name.
func (r *Registry) Find(name string) (Task, bool) {
	i, ok := r.FindIndex(name)
	if !ok {
		return Task{}, false
	}
	return r.tasks[i], true
}

// Edit replaces the name, description and priority of the first task named
// name. The stored creation time is kept; replacement.CreatedAt is ignored.
func (r *Registry) Edit(name string, replacement Task) (string, error) {
	i, ok := r.FindIndex(name)
	if !ok {
		return "", opError("edit", name, ErrNotFound, nil)
	}
	stored := &r.tasks[i]
	stored.Name = replacement.Name
	stored.Description = replacement.Description
	stored.Priority = replacement.Priority
	return fmt.Sprintf("Task '%s' edited successfully", stored.Name), nil
}

// Remove deletes the first task named name, keeping the order of the rest.
func (r *Registry) Remove(name string) (string, error) {
	i, ok := r.FindIndex(name)
	if !ok {
		return "", opError("remove", name, ErrNotFound, nil)
	}
	copy(r.tasks[i:], r.tasks[i+1:])
	r.tasks[len(r.tasks)-1] = Task{}
	r.tasks = r.tasks[:len(r.tasks)-1]
	return fmt.Sprintf("Task '%s' removed successfully", name), nil
}

// List returns every task in insertion order.
func (r *Registry) List() []Task {
	tasks := make([]Task, len(r.tasks))
	copy(tasks, r.tasks)
	return tasks
}

// replace swaps in a fully decoded task list.
func (r *Registry) replace(tasks []Task) {
	r.tasks = tasks
}

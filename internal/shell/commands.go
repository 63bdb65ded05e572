package shell

import (
	"fmt"
	"strings"

	"github.com/nibzard/tasker-go/internal/todo"
)

func (s *Shell) add() error {
	name, err := s.promptName("Task name: ")
	if err != nil {
		return err
	}
	description, err := s.prompt("Description: ")
	if err != nil {
		return err
	}
	priority, _, err := s.promptPriority("Priority (Low/Medium/High): ")
	if err != nil {
		return err
	}

	s.registry.Add(todo.NewTask(name, description, priority))
	s.unsaved++
	s.report("add", name, fmt.Sprintf("Task '%s' added successfully", name), nil)
	return nil
}

func (s *Shell) find() error {
	name, err := s.promptName("Task name: ")
	if err != nil {
		return err
	}
	task, ok := s.registry.Find(name)
	if !ok {
		s.report("find", name, "", &todo.OpError{Op: "find", Subject: name, Kind: todo.ErrNotFound})
		return nil
	}
	fmt.Fprint(s.out, task.Render())
	return nil
}

// edit asks for replacement values. Blank answers keep the current value.
func (s *Shell) edit() error {
	name, err := s.promptName("Task to edit: ")
	if err != nil {
		return err
	}
	current, ok := s.registry.Find(name)
	if !ok {
		s.report("edit", name, "", &todo.OpError{Op: "edit", Subject: name, Kind: todo.ErrNotFound})
		return nil
	}

	replacement := current
	newName, err := s.prompt(fmt.Sprintf("New name [%s]: ", current.Name))
	if err != nil {
		return err
	}
	if v := strings.TrimSpace(newName); v != "" {
		replacement.Name = v
	}
	description, err := s.prompt(fmt.Sprintf("New description [%s]: ", current.Description))
	if err != nil {
		return err
	}
	if description != "" {
		replacement.Description = description
	}
	priority, raw, err := s.promptPriority(fmt.Sprintf("New priority [%s]: ", current.PriorityLabel()))
	if err != nil {
		return err
	}
	if strings.TrimSpace(raw) != "" {
		replacement.Priority = priority
	}

	msg, err := s.registry.Edit(name, replacement)
	if err == nil {
		s.unsaved++
	}
	s.report("edit", name, msg, err)
	return nil
}

func (s *Shell) remove() error {
	name, err := s.promptName("Task to remove: ")
	if err != nil {
		return err
	}
	msg, err := s.registry.Remove(name)
	if err == nil {
		s.unsaved++
	}
	s.report("remove", name, msg, err)
	return nil
}

func (s *Shell) list() error {
	tasks := s.registry.List()
	if len(tasks) == 0 {
		fmt.Fprintln(s.out, "No tasks.")
		return nil
	}
	for _, task := range tasks {
		fmt.Fprint(s.out, task.Render())
	}
	fmt.Fprintf(s.out, "%d task(s)\n", len(tasks))
	return nil
}

func (s *Shell) save() error {
	path, err := s.promptPath("Save to")
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(s.out, "No file given.")
		return nil
	}
	msg, err := s.registry.SaveToFile(path)
	if err == nil {
		s.unsaved = 0
	}
	s.report("save", path, msg, err)
	return nil
}

func (s *Shell) load() error {
	path, err := s.promptPath("Load from")
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(s.out, "No file given.")
		return nil
	}
	msg, err := s.registry.LoadFromFile(path)
	if err == nil {
		s.unsaved = 0
	}
	s.report("load", path, msg, err)
	return nil
}

// quit asks for confirmation when changes have not been saved.
func (s *Shell) quit() error {
	if s.unsaved > 0 {
		answer, err := s.prompt(fmt.Sprintf("%d unsaved change(s) will be lost. Quit anyway? [y/N]: ", s.unsaved))
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
		default:
			return nil
		}
	}
	fmt.Fprintln(s.out, "Goodbye.")
	return errQuit
}

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskmate-app/taskmate/internal/engine"
	"github.com/taskmate-app/taskmate/internal/models"
)

// RunTimer runs the pomodoro countdown TUI until the user quits.
func RunTimer(eng *engine.Engine, pending []models.Task, bound *models.Task, record SessionRecorder) error {
	model := NewTimerModel(eng, pending, bound, record)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := finalModel.(TimerModel); ok && m.sessionsSaved > 0 {
		fmt.Printf("Saved %d pomodoro session(s)\n", m.sessionsSaved)
	}
	return nil
}

// RunAddTask runs the interactive add/edit form and reports the result.
func RunAddTask(prefilled map[string]string, editing bool, save TaskSaver) error {
	model := NewAddTaskModel(prefilled, editing, save)

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := finalModel.(AddTaskModel)
	if !ok {
		return nil
	}
	switch {
	case m.cancelled:
		fmt.Println("Cancelled, nothing saved.")
	case m.err != nil:
		return m.err
	case m.created != nil:
		if m.editing {
			fmt.Printf("Updated task: %s\n", m.created.Title)
		} else {
			fmt.Printf("Added task: %s\n", m.created.Title)
		}
	}
	return nil
}

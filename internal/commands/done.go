package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskmate-app/taskmate/internal/models"
)

// resolveTask finds a task by full id or unique prefix.
func (app *App) resolveTask(ref string) (*models.Task, error) {
	var match *models.Task
	for _, task := range app.Store.Tasks() {
		if task.ID == ref {
			t := task
			return &t, nil
		}
		if strings.HasPrefix(task.ID, ref) {
			if match != nil {
				return nil, fmt.Errorf("task id '%s' is ambiguous", ref)
			}
			t := task
			match = &t
		}
	}
	if match == nil {
		return nil, fmt.Errorf("task '%s' not found", ref)
	}
	return match, nil
}

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Toggle a task's completion",
	Long: `Toggle a task's completion state.

Marking a pending task done stamps its completion time; toggling a
completed task clears the stamp and returns it to pending.`,
	Args: cobra.ExactArgs(1),
	Run: withUser(func(app *App, cmd *cobra.Command, args []string) {
		task, err := app.resolveTask(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		updated, err := app.Store.Toggle(context.Background(), task.ID)
		if err != nil {
			app.surfaceError(err)
			return
		}

		if updated.Completed {
			fmt.Printf("Completed: %s\n", updated.Title)
			if updated.CompletedAt != nil {
				fmt.Printf("  at %s\n", updated.CompletedAt.Format("15:04:05"))
			}
		} else {
			fmt.Printf("Back to pending: %s\n", updated.Title)
		}
	}),
}

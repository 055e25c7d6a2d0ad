package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskmate-app/taskmate/internal/gateway"
	"github.com/taskmate-app/taskmate/internal/models"
	"github.com/taskmate-app/taskmate/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit an existing task",
	Long: `Edit an existing task in interactive mode.

Opens the same form as 'taskmate add' pre-populated with the current
task data. Clearing the due date field removes the due date.`,
	Args: cobra.ExactArgs(1),
	Run: withUser(func(app *App, cmd *cobra.Command, args []string) {
		task, err := app.resolveTask(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		prefilled := map[string]string{
			"title":       task.Title,
			"description": task.Description,
			"urgency":     string(task.Urgency),
		}
		if task.DueDate != nil {
			prefilled["due_date"] = task.DueDate.Format("2006-01-02")
		}
		if task.EstimatedTime > 0 {
			prefilled["estimate"] = strconv.Itoa(task.EstimatedTime)
		}

		save := func(draft gateway.TaskDraft) (*models.Task, error) {
			patch := gateway.TaskPatch{
				Title:         &draft.Title,
				Description:   &draft.Description,
				Urgency:       &draft.Urgency,
				EstimatedTime: &draft.EstimatedTime,
			}
			if draft.DueDate != nil {
				patch.DueDate = draft.DueDate
			} else {
				patch.ClearDueDate = true
			}
			return app.Store.Edit(context.Background(), task.ID, patch)
		}

		if err := tui.RunAddTask(prefilled, true, save); err != nil {
			app.surfaceError(err)
		}
	}),
}

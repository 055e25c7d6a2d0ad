package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskmate-app/taskmate/internal/gateway"
	"github.com/taskmate-app/taskmate/internal/models"
	"github.com/taskmate-app/taskmate/internal/parser"
	"github.com/taskmate-app/taskmate/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task with optional metadata.

Modes:
  Interactive: taskmate add (no arguments opens the form)
  Quick:       taskmate add "Write report" --urgency high --due "3 days" --estimate 90`,
	Args: cobra.ArbitraryArgs,
	Run: withUser(func(app *App, cmd *cobra.Command, args []string) {
		save := func(draft gateway.TaskDraft) (*models.Task, error) {
			return app.Store.Add(context.Background(), draft)
		}

		interactive, _ := cmd.Flags().GetBool("interactive")
		if len(args) == 0 || interactive {
			prefilled := map[string]string{
				"title": strings.Join(args, " "),
			}
			if urgency, _ := cmd.Flags().GetString("urgency"); urgency != "" {
				prefilled["urgency"] = urgency
			}
			if due, _ := cmd.Flags().GetString("due"); due != "" {
				prefilled["due_date"] = due
			}
			if estimate, _ := cmd.Flags().GetString("estimate"); estimate != "" {
				prefilled["estimate"] = estimate
			}
			if description, _ := cmd.Flags().GetString("description"); description != "" {
				prefilled["description"] = description
			}

			if err := tui.RunAddTask(prefilled, false, save); err != nil {
				app.surfaceError(err)
			}
			return
		}

		draft := gateway.TaskDraft{Title: strings.Join(args, " ")}
		draft.Description, _ = cmd.Flags().GetString("description")

		if urgency, _ := cmd.Flags().GetString("urgency"); urgency != "" {
			draft.Urgency = models.Urgency(strings.ToLower(urgency))
		}
		if due, _ := cmd.Flags().GetString("due"); due != "" {
			dueDate, err := parser.ParseDueDate(due)
			if err != nil {
				fmt.Printf("Error parsing due date: %v\n", err)
				return
			}
			draft.DueDate = dueDate
		}
		if estimate, _ := cmd.Flags().GetString("estimate"); estimate != "" {
			minutes, err := parser.ParseEstimate(estimate)
			if err != nil {
				fmt.Printf("Error parsing estimate: %v\n", err)
				return
			}
			draft.EstimatedTime = minutes
		}

		task, err := app.Store.Add(context.Background(), draft)
		if err != nil {
			app.surfaceError(err)
			return
		}

		fmt.Printf("Added task: %s\n", task.Title)
		fmt.Printf("  Urgency: %s\n", task.Urgency)
		if task.DueDate != nil {
			fmt.Printf("  Due: %s\n", parser.FormatDueDate(task.DueDate))
		}
		if task.EstimatedTime > 0 {
			fmt.Printf("  Estimate: %d min\n", task.EstimatedTime)
		}
	}),
}

func init() {
	addCmd.Flags().BoolP("interactive", "i", false, "Interactive mode with TUI")
	addCmd.Flags().StringP("description", "d", "", "Task description")
	addCmd.Flags().StringP("urgency", "u", "", "Urgency: high, medium, low")
	addCmd.Flags().StringP("due", "", "", "Due date: yyyy-mm-dd, dd/mm/yyyy, X days, X weeks")
	addCmd.Flags().StringP("estimate", "e", "", "Time estimate in minutes (or \"1h30m\")")
}

package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskmate-app/taskmate/internal/models"
	"github.com/taskmate-app/taskmate/internal/parser"
)

var urgencyHeadings = map[models.Urgency]string{
	models.UrgencyHigh:   "High Priority",
	models.UrgencyMedium: "Medium Priority",
	models.UrgencyLow:    "Low Priority",
}

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks grouped by urgency",
	Run: withUser(func(app *App, cmd *cobra.Command, args []string) {
		urgencyFilter, _ := cmd.Flags().GetString("urgency")
		showCompleted, _ := cmd.Flags().GetBool("completed")

		groups := app.Store.List()

		shown := 0
		for _, group := range groups {
			if urgencyFilter != "" && string(group.Urgency) != strings.ToLower(urgencyFilter) {
				continue
			}

			var rows []models.Task
			for _, task := range group.Tasks {
				if task.Completed && !showCompleted {
					continue
				}
				rows = append(rows, task)
			}
			if len(rows) == 0 {
				continue
			}

			fmt.Printf("%s (%d)\n", urgencyHeadings[group.Urgency], len(rows))
			fmt.Println(strings.Repeat("-", 60))
			for _, task := range rows {
				printTask(task)
			}
			fmt.Println()
			shown += len(rows)
		}

		if shown == 0 {
			fmt.Println("No tasks found. Use 'taskmate add \"task title\"' to create one.")
		}
	}),
}

func printTask(task models.Task) {
	check := "[ ]"
	if task.Completed {
		check = "[x]"
	}
	fmt.Printf("%s %s  %s\n", check, shortID(task.ID), task.Title)

	var meta []string
	if task.DueDate != nil {
		meta = append(meta, parser.FormatDueDate(task.DueDate))
	}
	if task.EstimatedTime > 0 {
		meta = append(meta, fmt.Sprintf("%d min", task.EstimatedTime))
	}
	if task.Completed && task.CompletedAt != nil {
		meta = append(meta, "completed "+task.CompletedAt.Format("Jan 02 15:04"))
	}
	if len(meta) > 0 {
		fmt.Printf("        %s\n", strings.Join(meta, " · "))
	}
}

// shortID trims a UUID to its first segment for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func init() {
	listCmd.Flags().StringP("urgency", "u", "", "Filter by urgency: high, medium, low")
	listCmd.Flags().BoolP("completed", "c", false, "Include completed tasks")
}

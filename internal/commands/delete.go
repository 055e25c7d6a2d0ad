package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "rm <task-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	Run: withUser(func(app *App, cmd *cobra.Command, args []string) {
		task, err := app.resolveTask(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if err := app.Store.Delete(context.Background(), task.ID); err != nil {
			app.surfaceError(err)
			return
		}

		fmt.Printf("Deleted: %s\n", task.Title)
	}),
}

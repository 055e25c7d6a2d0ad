package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskmate-app/taskmate/internal/analytics"
)

var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"analytics"},
	Short:   "Show productivity statistics",
	Run: withUser(func(app *App, cmd *cobra.Command, args []string) {
		snap := analytics.Compute(app.Store.Tasks(), app.Store.Sessions())

		fmt.Println("Task Analytics")
		fmt.Println(strings.Repeat("=", 40))
		fmt.Printf("%-28s %d\n", "Total tasks:", snap.TotalTasks)
		fmt.Printf("%-28s %d\n", "Completed:", snap.CompletedCount)
		fmt.Printf("%-28s %d\n", "Pending:", snap.PendingCount)
		fmt.Printf("%-28s %d\n", "High priority pending:", snap.HighPriorityPendingCount)
		fmt.Printf("%-28s %.1f%%\n", "Completion rate:", snap.CompletionRate)
		fmt.Println()

		fmt.Println("Time Tracking")
		fmt.Println(strings.Repeat("-", 40))
		fmt.Printf("%-28s %d min\n", "Total estimated time:", snap.TotalEstimatedMinutes)
		fmt.Printf("%-28s %d min\n", "Completed time:", snap.CompletedEstimatedMinutes)
		fmt.Printf("%-28s %d\n", "Pomodoro sessions:", snap.CompletedSessionCount)
		fmt.Printf("%-28s %d min\n", "Total focus time:", snap.TotalFocusMinutes)

		if len(snap.RecentActivity) > 0 {
			fmt.Println()
			fmt.Println("Recent Activity")
			fmt.Println(strings.Repeat("-", 40))
			for _, task := range snap.RecentActivity {
				when := ""
				if task.CompletedAt != nil {
					when = task.CompletedAt.Format("Jan 02 15:04")
				}
				fmt.Printf("  ✓ %-28s %s\n", task.Title, when)
			}
		}
	}),
}

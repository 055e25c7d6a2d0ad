package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taskmate-app/taskmate/internal/engine"
	"github.com/taskmate-app/taskmate/internal/gateway"
	"github.com/taskmate-app/taskmate/internal/models"
	"github.com/taskmate-app/taskmate/internal/tui"
)

var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro [task-id]",
	Aliases: []string{"pomo"},
	Short:   "Run a pomodoro focus session",
	Long: `Run a 25-minute work / 5-minute break pomodoro countdown,
optionally bound to a task. Opens the interactive timer by default;
use --no-ui to run a single work session headless.

Examples:
  taskmate pomodoro          # interactive timer, pick a task inside
  taskmate pomodoro 3f2a     # interactive timer bound to a task
  taskmate pomodoro --no-ui  # headless work session`,
	Args: cobra.MaximumNArgs(1),
	Run: withUser(func(app *App, cmd *cobra.Command, args []string) {
		var bound *models.Task
		if len(args) == 1 {
			task, err := app.resolveTask(args[0])
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if task.Completed {
				fmt.Printf("Error: '%s' is already completed\n", task.Title)
				return
			}
			bound = task
		}

		record := func(done engine.Completed) (*models.PomodoroSession, error) {
			return app.Store.RecordSession(context.Background(), gateway.SessionDraft{
				TaskID:    done.TaskID,
				StartTime: done.StartTime,
				EndTime:   done.EndTime,
				Duration:  done.Duration,
				Completed: true,
			})
		}

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			runHeadless(app, bound, record)
			return
		}

		eng := engine.New()
		if err := tui.RunTimer(eng, app.Store.Pending(), bound, record); err != nil {
			app.surfaceError(err)
		}
	}),
}

// runHeadless runs one work countdown to completion without the TUI.
func runHeadless(app *App, bound *models.Task, record tui.SessionRecorder) {
	eng := engine.New()
	if bound != nil {
		eng.BindTask(bound.ID)
		fmt.Printf("Focusing on: %s\n", bound.Title)
	}

	saved := make(chan error, 1)
	countdown := engine.NewCountdown(eng, func(done engine.Completed) {
		_, err := record(done)
		saved <- err
	})

	if err := countdown.Start(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer countdown.Close()

	fmt.Printf("Work session started (%d minutes). Ctrl+C to abandon.\n", engine.WorkMinutes)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-saved:
		if err != nil {
			app.surfaceError(err)
			return
		}
		fmt.Println("Session complete and saved. Time for a break!")
	case <-interrupt:
		countdown.Reset()
		fmt.Println("\nCountdown abandoned, nothing recorded.")
	}
}

func init() {
	pomodoroCmd.Flags().Bool("no-ui", false, "Run a single work session without the interactive timer")
}

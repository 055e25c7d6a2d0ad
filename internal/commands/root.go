package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskmate-app/taskmate/internal/config"
	"github.com/taskmate-app/taskmate/internal/gateway"
	"github.com/taskmate-app/taskmate/internal/localstate"
	"github.com/taskmate-app/taskmate/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "taskmate",
	Short: "A task manager with a pomodoro timer and productivity analytics",
	Long: `taskmate combines task management, pomodoro focus sessions and
productivity analytics. Add tasks with priorities and estimates, run
25/5-minute focus countdowns against them, and review your progress.`,
}

// App is the per-invocation composition root: configuration, the
// persistence gateway, and (once signed in) the user's task store.
type App struct {
	Config  config.Config
	Gateway gateway.Gateway
	User    *localstate.Session
	Store   *store.Store
}

// withApp opens the gateway and runs fn, closing it afterwards.
func withApp(fn func(app *App, cmd *cobra.Command, args []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			return
		}

		gw, err := gateway.OpenSQLite(cfg.DatabasePath)
		if err != nil {
			fmt.Printf("Error opening database: %v\n", err)
			return
		}
		defer gw.Close()

		fn(&App{Config: cfg, Gateway: gw}, cmd, args)
	}
}

// withUser is withApp plus a signed-in user and a loaded store.
func withUser(fn func(app *App, cmd *cobra.Command, args []string)) func(*cobra.Command, []string) {
	return withApp(func(app *App, cmd *cobra.Command, args []string) {
		user, err := localstate.Load(app.Config.DataDir)
		if err != nil {
			fmt.Printf("Error reading sign-in state: %v\n", err)
			return
		}
		if user == nil {
			fmt.Println("Not signed in. Use 'taskmate login' or 'taskmate signup' first.")
			return
		}

		st := store.New(app.Gateway, user.ID)
		if err := st.Load(context.Background()); err != nil {
			app.surfaceError(err)
			return
		}

		app.User = user
		app.Store = st
		fn(app, cmd, args)
	})
}

// surfaceError reports an operation failure. An expired session also
// clears the local sign-in record so the next run asks for login.
func (app *App) surfaceError(err error) {
	if errors.Is(err, gateway.ErrSessionExpired) {
		_ = localstate.Clear(app.Config.DataDir)
		fmt.Println("Your session has expired. Please log in again.")
		return
	}
	fmt.Printf("Error: %v\n", err)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskmate %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(pomodoroCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

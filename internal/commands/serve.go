package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/taskmate-app/taskmate/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API for the web front end",
	Long: `Serve the task, session and analytics data as a JSON API.

Requires TASKMATE_JWT_SECRET to be set; clients authenticate through
/api/auth/signup and /api/auth/login and pass the returned token as a
bearer token.`,
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		if app.Config.JWTSecret == "" {
			fmt.Println("Error: TASKMATE_JWT_SECRET must be set to serve the API")
			return
		}

		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "taskmate",
		})

		srv := server.New(app.Gateway, app.Config.JWTSecret, app.Config.JWTTTL, logger)

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-shutdown
			logger.Info("shutting down")
			if err := srv.Shutdown(); err != nil {
				logger.Error("shutdown failed", "err", err)
			}
		}()

		if err := srv.Listen(app.Config.ListenAddr); err != nil {
			logger.Fatal("server exited", "err", err)
		}
	}),
}

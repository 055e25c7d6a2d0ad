package commands

import (
	"bufio"
	"context"
	"fmt"
	"net/mail"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskmate-app/taskmate/internal/localstate"
)

var signupCmd = &cobra.Command{
	Use:   "signup <email>",
	Short: "Create an account and sign in",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		email := strings.TrimSpace(args[0])
		if _, err := mail.ParseAddress(email); err != nil {
			fmt.Printf("Error: '%s' is not a valid email address\n", email)
			return
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			// Default the display name to the email local part
			name = strings.SplitN(email, "@", 2)[0]
		}

		password, err := promptPassword()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		user, err := app.Gateway.SignUp(context.Background(), email, password, name)
		if err != nil {
			app.surfaceError(err)
			return
		}

		session := localstate.Session{ID: user.ID, Name: user.Name, Email: user.Email}
		if err := localstate.Save(app.Config.DataDir, session); err != nil {
			fmt.Printf("Error saving sign-in state: %v\n", err)
			return
		}

		fmt.Printf("Welcome, %s! You are signed in.\n", user.Name)
	}),
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Sign in to an existing account",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		email := strings.TrimSpace(args[0])

		password, err := promptPassword()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		user, err := app.Gateway.SignIn(context.Background(), email, password)
		if err != nil {
			app.surfaceError(err)
			return
		}

		session := localstate.Session{ID: user.ID, Name: user.Name, Email: user.Email}
		if err := localstate.Save(app.Config.DataDir, session); err != nil {
			fmt.Printf("Error saving sign-in state: %v\n", err)
			return
		}

		fmt.Printf("Welcome back, %s!\n", user.Name)
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the local session",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		if err := localstate.Clear(app.Config.DataDir); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Println("Signed out.")
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Run: withApp(func(app *App, cmd *cobra.Command, args []string) {
		user, err := localstate.Load(app.Config.DataDir)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if user == nil {
			fmt.Println("Not signed in.")
			return
		}
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
	}),
}

// promptPassword reads a password from the terminal.
func promptPassword() (string, error) {
	fmt.Print("Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

func init() {
	signupCmd.Flags().StringP("name", "n", "", "Display name (defaults to the email local part)")
}

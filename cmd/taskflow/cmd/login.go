package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/notify"
)

var (
	flagEmail    string
	flagPassword string
	flagFullName string
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVarP(&flagEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "Account password (default $TASKFLOW_PASSWORD)")

	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&flagFullName, "name", "n", "", "Full name")
	registerCmd.Flags().StringVarP(&flagEmail, "email", "e", "", "Account email")
	registerCmd.Flags().StringVarP(&flagPassword, "password", "p", "", "Account password (default $TASKFLOW_PASSWORD)")
}

func password() string {
	if flagPassword != "" {
		return flagPassword
	}
	return os.Getenv("TASKFLOW_PASSWORD")
}

var loginCmd = &cobra.Command{
	Use:     "login",
	Short:   "Log in to your TaskFlow account",
	Long:    "Log in to your TaskFlow account. The session is kept until you log out.",
	Example: "  taskflow login -e ada@example.com",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		console := notify.NewConsole(cmd.OutOrStdout())

		user, err := app.authController.Login(cmd.Context(), models.LoginRequest{
			Email:    flagEmail,
			Password: password(),
		})
		if err != nil {
			return report(console, err)
		}

		console.Notify(notify.LevelSuccess, "Logged in as "+user.Email)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:     "register",
	Short:   "Create a TaskFlow account",
	Example: "  taskflow register -n \"Ada Lovelace\" -e ada@example.com",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		console := notify.NewConsole(cmd.OutOrStdout())

		user, err := app.authController.Register(cmd.Context(), models.RegisterRequest{
			FullName: flagFullName,
			Email:    flagEmail,
			Password: password(),
		})
		if err != nil {
			return report(console, err)
		}

		console.Notify(notify.LevelSuccess, "Account created, logged in as "+user.Email)
		return nil
	},
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sefazor/taskflow-client/internal/notify"
)

func init() {
	rootCmd.AddCommand(logoutCmd)
}

var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Log out of your TaskFlow account",
	Long:    "Log out of your TaskFlow account, if logged in.",
	Example: "  taskflow logout",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.authController.Logout(); err != nil {
			return err
		}
		notify.NewConsole(cmd.OutOrStdout()).Notify(notify.LevelInfo, "Logged out")
		return nil
	},
}

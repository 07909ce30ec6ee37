package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/notify"
	"github.com/sefazor/taskflow-client/internal/service"
)

var (
	flagOrg  string
	flagPlan string
)

func init() {
	rootCmd.AddCommand(checkoutCmd)
	checkoutCmd.Flags().StringVarP(&flagOrg, "org", "o", "", "Organization to upgrade")
	checkoutCmd.Flags().StringVar(&flagPlan, "plan", "", "Plan to buy: starter, professional or enterprise")
	_ = checkoutCmd.MarkFlagRequired("org")
	_ = checkoutCmd.MarkFlagRequired("plan")
}

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Start a subscription checkout for an organization",
	Long: `Start a subscription checkout for an organization and print the hosted
payment page to continue on.

Once paid, confirm the payment with "taskflow watch-payment".`,
	Example: "  taskflow checkout --org org-42 --plan professional",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		console := notify.NewConsole(cmd.OutOrStdout())

		nav := service.NavigatorFunc(func(url string) error {
			cmd.Println("Continue to checkout at: " + color.New(color.Bold).Sprint(url))
			return nil
		})

		err := app.paymentController.CreateCheckoutSession(cmd.Context(), models.CheckoutRequest{
			PlanID:         flagPlan,
			OrganizationID: flagOrg,
		}, nav, console)
		if err != nil {
			// Already shown through the console.
			return ErrReported
		}
		return nil
	},
}

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/notify"
)

func init() {
	orgsCreateCmd.Flags().StringP("name", "n", "", "name of the new organization")
	_ = orgsCreateCmd.MarkFlagRequired("name")
	orgsCmd.AddCommand(orgsCreateCmd)

	rootCmd.AddCommand(orgsCmd)
	rootCmd.AddCommand(plansCmd)
}

var orgsCmd = &cobra.Command{
	Use:     "orgs",
	Short:   "List your organizations",
	Example: "  taskflow orgs",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}

		orgs, err := app.organizationController.GetAllOrganizations(cmd.Context())
		if err != nil {
			return report(notify.NewConsole(cmd.ErrOrStderr()), err)
		}
		if len(orgs) == 0 {
			cmd.Println("No organizations yet.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSUBSCRIPTION")
		for _, org := range orgs {
			fmt.Fprintf(w, "%s\t%s\t%s\n", org.ID, org.Name, org.SubscriptionStatus)
		}
		return w.Flush()
	},
}

var orgsCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Create an organization",
	Example: "  taskflow orgs create --name \"Acme Inc\"",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		console := notify.NewConsole(cmd.ErrOrStderr())

		org, err := app.organizationController.CreateOrganization(cmd.Context(), models.CreateOrganizationRequest{Name: name})
		if err != nil {
			return report(console, err)
		}

		console.Notify(notify.LevelSuccess, "Organization "+org.Name+" created")
		cmd.Println(org.ID)
		return nil
	},
}

var plansCmd = &cobra.Command{
	Use:     "plans",
	Short:   "List the subscription plans",
	Example: "  taskflow plans",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRICE")
		for _, plan := range app.organizationController.GetPlans() {
			name := plan.Name
			if plan.Popular {
				name += " " + color.New(color.FgYellow).Sprint("(popular)")
			}
			fmt.Fprintf(w, "%s\t%s\t$%.2f/mo\n", plan.ID, name, plan.Price)
		}
		return w.Flush()
	},
}

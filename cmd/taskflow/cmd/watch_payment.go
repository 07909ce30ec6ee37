package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/notify"
	"github.com/sefazor/taskflow-client/pkg/payment"
)

var flagSessionID string

func init() {
	rootCmd.AddCommand(watchPaymentCmd)
	watchPaymentCmd.Flags().StringVarP(&flagSessionID, "session-id", "s", "", "Checkout session to confirm")
}

var watchPaymentCmd = &cobra.Command{
	Use:   "watch-payment",
	Short: "Wait for a checkout payment to be confirmed",
	Long: `Poll the payment status of a checkout session until it is paid, the
retries run out or the check fails. Press Ctrl-C to stop waiting.`,
	Example: "  taskflow watch-payment --session-id cs_test_a1",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireLogin(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		console := notify.NewConsole(cmd.OutOrStdout())
		dim := color.New(color.Faint)

		out := app.paymentController.WatchPayment(ctx, flagSessionID, console, func(ev models.PaymentEvent) {
			if ev.Terminal {
				if ev.State == string(payment.StateSuccess) && ev.Amount > 0 {
					dim.Fprintf(cmd.OutOrStdout(), "  %.2f %s charged\n", ev.Amount, ev.Currency)
				}
				return
			}
			if ev.Queries == 0 {
				dim.Fprintln(cmd.OutOrStdout(), "Verifying your payment...")
				return
			}
			dim.Fprintf(cmd.OutOrStdout(), "  not confirmed yet, checking again (%d/%d)\n", ev.Attempt, app.cfg.Payment.PollMaxRetries)
		})

		switch {
		case out.Canceled:
			return fmt.Errorf("stopped waiting for payment confirmation")
		case out.State != payment.StateSuccess:
			return ErrReported
		}
		return nil
	},
}

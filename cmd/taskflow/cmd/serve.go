package cmd

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sefazor/taskflow-client/internal/handler"
	"github.com/sefazor/taskflow-client/internal/notify"
	"github.com/sefazor/taskflow-client/internal/router"
)

const shutdownTimeout = 5 * time.Second

var flagRateLimit int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&flagRateLimit, "rate-limit", 20, "Form submissions allowed per client per minute (0 disables)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web front-end",
	Long: `Serve the TaskFlow web front-end on LISTEN_ADDR.

Open pages are tied to their server: stopping it ends every payment check in
progress.`,
	Example: "  taskflow serve",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		pages := handler.NewPages(notify.NewFlash(), app.sessions)
		srv, err := router.New(router.Handlers{
			Auth:         handler.NewAuthHandler(app.authController, pages),
			Organization: handler.NewOrganizationHandler(app.organizationController, pages),
			Payment: handler.NewPaymentHandler(ctx, app.paymentController, pages, nil,
				app.cfg.HeartbeatInterval, app.logger),
		}, router.Options{
			Sessions:  app.sessions,
			Metrics:   app.metrics,
			Logger:    app.logger,
			RateLimit: flagRateLimit,
		})
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			app.logger.Info("listening",
				zap.String("addr", app.cfg.ListenAddr),
				zap.String("backend", app.cfg.Backend.URL),
				zap.Bool("logged_in", app.sessions.IsLoggedIn()))
			errCh <- srv.Listen(app.cfg.ListenAddr)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		app.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return nil
	},
}

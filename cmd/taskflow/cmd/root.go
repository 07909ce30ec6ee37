package cmd

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sefazor/taskflow-client/internal/config"
	"github.com/sefazor/taskflow-client/internal/controller"
	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/notify"
	"github.com/sefazor/taskflow-client/internal/repository"
	"github.com/sefazor/taskflow-client/internal/service"
	"github.com/sefazor/taskflow-client/pkg/api"
	"github.com/sefazor/taskflow-client/pkg/logger"
	"github.com/sefazor/taskflow-client/pkg/metrics"
	"github.com/sefazor/taskflow-client/pkg/utils"
)

var rootCmd = &cobra.Command{
	Use:   "taskflow",
	Short: "TaskFlow front-end client",
	Long: `Serve the TaskFlow web front-end, or use the same account and
subscription flows from the terminal.

Settings are read from the environment and from a .env file in the working
directory, if there is one.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute executes the root command.
func Execute() error {
	defer teardown()
	return rootCmd.Execute()
}

// deps is shared by every command. A process serves one user, so there is
// exactly one session store.
type deps struct {
	cfg      *config.Config
	logger   *zap.Logger
	sessions *service.SessionStore
	client   *api.Client
	metrics  *metrics.Metrics

	authController         *controller.AuthController
	organizationController *controller.OrganizationController
	paymentController      *controller.PaymentController
}

var app *deps

func setup(cmd *cobra.Command, args []string) error {
	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	log, err := logger.New(cfg.IsDevelopment(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	repo, err := repository.OpenSessionRepository(cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	sessions := service.NewSessionStore(repo, log)
	if err := sessions.Load(); err != nil {
		log.Warn("stored session unreadable, starting logged out", zap.Error(err))
	}

	client := api.NewClient(cfg.Backend.URL, cfg.Backend.RequestTimeout, sessions, log)
	validator := utils.NewValidator(models.PlanIDs()...)
	m := metrics.New()

	app = &deps{
		cfg:      cfg,
		logger:   log,
		sessions: sessions,
		client:   client,
		metrics:  m,

		authController:         controller.NewAuthController(service.NewAuthService(client, sessions, validator, log)),
		organizationController: controller.NewOrganizationController(service.NewOrganizationService(client, validator, log)),
		paymentController: controller.NewPaymentController(
			service.NewCheckoutService(client, validator, m, log),
			service.NewPaymentService(client, cfg.PollConfig(), nil, m, log),
		),
	}
	return nil
}

func teardown() {
	if app == nil {
		return
	}
	_ = app.logger.Sync()
}

func requireLogin() error {
	if !app.sessions.IsLoggedIn() {
		return fmt.Errorf("not logged in, run \"taskflow login\" first")
	}
	return nil
}

// ErrReported means the failure has already been shown to the user.
var ErrReported = errors.New("error already reported")

func report(n notify.Notifier, err error) error {
	n.Notify(notify.LevelError, service.UserMessage(err))
	app.logger.Debug("command failed", zap.Error(err))
	return ErrReported
}

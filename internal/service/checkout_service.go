package service

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/notify"
	"github.com/sefazor/taskflow-client/pkg/api"
	"github.com/sefazor/taskflow-client/pkg/metrics"
	"github.com/sefazor/taskflow-client/pkg/payment"
	"github.com/sefazor/taskflow-client/pkg/utils"
)

type CheckoutBackend interface {
	CreateCheckout(ctx context.Context, req api.CheckoutRequest) (*payment.CheckoutSession, error)
}

// Navigator performs the full hand-off to the hosted checkout page.
type Navigator interface {
	Navigate(url string) error
}

type NavigatorFunc func(url string) error

func (f NavigatorFunc) Navigate(url string) error {
	return f(url)
}

type CheckoutService struct {
	backend   CheckoutBackend
	validator *utils.Validator
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewCheckoutService(backend CheckoutBackend, validator *utils.Validator, m *metrics.Metrics, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		backend:   backend,
		validator: validator,
		metrics:   m,
		logger:    logger,
	}
}

// Initiate asks the backend for a checkout session and navigates to the URL it
// returns, unmodified. On any failure the user is notified, nothing is
// navigated to and nothing is retried.
func (s *CheckoutService) Initiate(ctx context.Context, req models.CheckoutRequest, nav Navigator, n notify.Notifier) error {
	err := s.initiate(ctx, req, nav)
	if err != nil && n != nil {
		n.Notify(notify.LevelError, UserMessage(err))
	}
	return err
}

func (s *CheckoutService) initiate(ctx context.Context, req models.CheckoutRequest, nav Navigator) error {
	log := s.logger.With(zap.String("plan_id", req.PlanID), zap.String("organization_id", req.OrganizationID))

	if err := s.validator.Struct(req); err != nil {
		// The plan is user input until it validates; keep it out of the labels.
		s.metrics.CheckoutStarted(metrics.UnknownPlan, "invalid")
		return &InputError{Message: s.validator.Message(err), Err: fmt.Errorf("%w: %v", ErrInvalidCheckout, err)}
	}

	session, err := s.backend.CreateCheckout(ctx, req.ToAPI())
	if err != nil {
		s.metrics.CheckoutStarted(req.PlanID, "failed")
		log.Error("checkout creation failed", zap.Error(err))
		return err
	}

	if !usableRedirect(session.URL) {
		s.metrics.CheckoutStarted(req.PlanID, "failed")
		log.Error("checkout created without redirect url", zap.String("session_id", session.ID), zap.String("url", session.URL))
		return ErrMissingRedirectURL
	}

	if err := nav.Navigate(session.URL); err != nil {
		s.metrics.CheckoutStarted(req.PlanID, "failed")
		log.Error("navigation to checkout failed", zap.Error(err))
		return fmt.Errorf("navigate to checkout: %w", err)
	}

	s.metrics.CheckoutStarted(req.PlanID, "redirected")
	log.Info("redirected to hosted checkout", zap.String("session_id", session.ID))
	return nil
}

func usableRedirect(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "https" || u.Scheme == "http") && u.Host != ""
}

package service

import (
	"context"

	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/notify"
	"github.com/sefazor/taskflow-client/pkg/metrics"
	"github.com/sefazor/taskflow-client/pkg/payment"
)

const (
	MessagePaymentSuccess = "Payment successful! Your subscription is now active."
	MessagePaymentTimeout = "We could not confirm your payment yet. If you were charged, please contact support."
	MessagePaymentError   = "Failed to verify payment status. Please contact support if you were charged."
	MessageInvalidSession = "No payment session found. Start the upgrade again from your organization page."
)

// TerminalToast returns the toast for a terminal poll state.
func TerminalToast(state payment.State) (notify.Level, string) {
	switch state {
	case payment.StateSuccess:
		return notify.LevelSuccess, MessagePaymentSuccess
	case payment.StateTimeout:
		return notify.LevelWarning, MessagePaymentTimeout
	case payment.StateError:
		return notify.LevelError, MessagePaymentError
	case payment.StateInvalidSession:
		return notify.LevelError, MessageInvalidSession
	}
	return notify.LevelInfo, ""
}

type PaymentService struct {
	checker payment.StatusChecker
	cfg     payment.PollConfig
	clock   clock.Clock
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewPaymentService(checker payment.StatusChecker, cfg payment.PollConfig, clk clock.Clock, m *metrics.Metrics, logger *zap.Logger) *PaymentService {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &PaymentService{
		checker: checker,
		cfg:     cfg,
		clock:   clk,
		metrics: m,
		logger:  logger,
	}
}

// Watch runs one payment confirmation poll for sessionID. Every transition is
// reported to observe (may be nil) and the terminal state is notified through
// n. Cancelling ctx tears the poll down: neither observe nor n is called
// afterwards.
func (s *PaymentService) Watch(ctx context.Context, sessionID string, n notify.Notifier, observe func(models.PaymentEvent)) payment.Outcome {
	log := s.logger.With(zap.String("session_id", sessionID))
	if n == nil {
		n = notify.Discard
	}

	poller := payment.NewPoller(s.checker, s.cfg,
		payment.WithClock(s.clock),
		payment.WithObserver(func(tr payment.Transition) {
			ev := newPaymentEvent(tr)
			if tr.To.Terminal() {
				n.Notify(notify.Level(ev.Level), ev.Message)
			}
			if observe != nil {
				observe(ev)
			}
		}),
	)

	s.metrics.PollStarted()
	out := poller.Run(ctx, sessionID)

	state := string(out.State)
	if out.Canceled {
		state = "canceled"
	}
	s.metrics.PollFinished(state, out.Queries)

	switch {
	case out.Canceled:
		log.Info("payment poll canceled", zap.Int("queries", out.Queries))
	case out.State == payment.StateSuccess:
		log.Info("payment confirmed", zap.Int("queries", out.Queries))
	case out.Err != nil:
		log.Warn("payment poll failed", zap.String("state", string(out.State)), zap.Int("queries", out.Queries), zap.Error(out.Err))
	default:
		log.Warn("payment poll finished", zap.String("state", string(out.State)), zap.Int("queries", out.Queries))
	}

	return out
}

func newPaymentEvent(tr payment.Transition) models.PaymentEvent {
	ev := models.PaymentEvent{
		State:    string(tr.To),
		Attempt:  tr.Attempt,
		Queries:  tr.Queries,
		Terminal: tr.To.Terminal(),
	}
	if ev.Terminal {
		level, msg := TerminalToast(tr.To)
		ev.Level = string(level)
		ev.Message = msg
	}
	if tr.Result != nil && tr.To == payment.StateSuccess {
		ev.Amount = tr.Result.AmountTotal
		ev.Currency = tr.Result.Currency
	}
	return ev
}

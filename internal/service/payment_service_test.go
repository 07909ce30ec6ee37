package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"
	testingclock "k8s.io/utils/clock/testing"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/notify"
	"github.com/sefazor/taskflow-client/pkg/metrics"
	"github.com/sefazor/taskflow-client/pkg/payment"
)

type statusScript struct {
	mu    sync.Mutex
	calls int
	fn    func(call int) (*payment.StatusResult, error)
}

func (s *statusScript) PaymentStatus(_ context.Context, _ string) (*payment.StatusResult, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.mu.Unlock()
	return s.fn(call)
}

func (s *statusScript) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type eventLog struct {
	mu     sync.Mutex
	events []models.PaymentEvent
}

func (l *eventLog) add(ev models.PaymentEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) all() []models.PaymentEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.PaymentEvent(nil), l.events...)
}

func newPaymentService(checker payment.StatusChecker) (*PaymentService, *testingclock.FakeClock, *metrics.Metrics) {
	fc := testingclock.NewFakeClock(time.Now())
	m := metrics.New()
	cfg := payment.PollConfig{MaxRetries: payment.DefaultMaxRetries, Interval: payment.DefaultPollInterval}
	return NewPaymentService(checker, cfg, fc, m, zap.NewNop()), fc, m
}

func TestWatchSuccessNotifies(t *testing.T) {
	checker := &statusScript{fn: func(call int) (*payment.StatusResult, error) {
		if call == 1 {
			return &payment.StatusResult{PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid}, nil
		}
		return &payment.StatusResult{PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid, AmountTotal: 79, Currency: "usd"}, nil
	}}
	svc, fc, m := newPaymentService(checker)
	flash := notify.NewFlash()
	log := &eventLog{}

	done := make(chan payment.Outcome, 1)
	go func() { done <- svc.Watch(context.Background(), "cs_test_1", flash, log.add) }()

	require.Eventually(t, fc.HasWaiters, time.Second, time.Millisecond)
	fc.Step(payment.DefaultPollInterval)

	out := <-done
	assert.Equal(t, payment.StateSuccess, out.State)
	assert.Equal(t, 2, out.Queries)

	events := log.all()
	require.Len(t, events, 3)
	assert.Equal(t, models.PaymentEvent{State: "checking"}, events[0])
	assert.Equal(t, models.PaymentEvent{State: "checking", Attempt: 1, Queries: 1}, events[1])
	assert.Equal(t, models.PaymentEvent{
		State: "success", Attempt: 1, Queries: 2, Terminal: true,
		Level: "success", Message: MessagePaymentSuccess, Amount: 79, Currency: "usd",
	}, events[2])

	assert.Equal(t, []notify.Toast{{Level: notify.LevelSuccess, Message: MessagePaymentSuccess}}, flash.Drain())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentPollsTotal.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ActivePaymentPolls))
}

func TestWatchErrorNotifies(t *testing.T) {
	checker := &statusScript{fn: func(int) (*payment.StatusResult, error) {
		return nil, errors.New("backend unavailable")
	}}
	svc, _, _ := newPaymentService(checker)
	flash := notify.NewFlash()

	out := svc.Watch(context.Background(), "cs_test_2", flash, nil)

	assert.Equal(t, payment.StateError, out.State)
	assert.Equal(t, 1, checker.Calls())
	assert.Equal(t, []notify.Toast{{Level: notify.LevelError, Message: MessagePaymentError}}, flash.Drain())
}

func TestWatchTimeoutNotifiesDistinctMessage(t *testing.T) {
	checker := &statusScript{fn: func(int) (*payment.StatusResult, error) {
		return &payment.StatusResult{PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid}, nil
	}}
	svc, fc, _ := newPaymentService(checker)
	flash := notify.NewFlash()

	done := make(chan payment.Outcome, 1)
	go func() { done <- svc.Watch(context.Background(), "cs_test_3", flash, nil) }()

	for i := 0; i < payment.DefaultMaxRetries; i++ {
		require.Eventually(t, fc.HasWaiters, time.Second, time.Millisecond)
		fc.Step(payment.DefaultPollInterval)
	}

	out := <-done
	assert.Equal(t, payment.StateTimeout, out.State)
	assert.Equal(t, payment.DefaultMaxRetries+1, checker.Calls())
	assert.Equal(t, []notify.Toast{{Level: notify.LevelWarning, Message: MessagePaymentTimeout}}, flash.Drain())
	assert.NotEqual(t, MessagePaymentError, MessagePaymentTimeout)
}

func TestWatchMissingSession(t *testing.T) {
	checker := &statusScript{fn: func(int) (*payment.StatusResult, error) { return nil, nil }}
	svc, _, _ := newPaymentService(checker)
	flash := notify.NewFlash()

	out := svc.Watch(context.Background(), "", flash, nil)

	assert.Equal(t, payment.StateInvalidSession, out.State)
	assert.Zero(t, checker.Calls())
	assert.Equal(t, []notify.Toast{{Level: notify.LevelError, Message: MessageInvalidSession}}, flash.Drain())
}

func TestWatchCanceledNeverNotifies(t *testing.T) {
	checker := &statusScript{fn: func(int) (*payment.StatusResult, error) {
		return &payment.StatusResult{PaymentStatus: stripe.CheckoutSessionPaymentStatusUnpaid}, nil
	}}
	svc, fc, m := newPaymentService(checker)
	flash := notify.NewFlash()
	log := &eventLog{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan payment.Outcome, 1)
	go func() { done <- svc.Watch(ctx, "cs_test_4", flash, log.add) }()

	require.Eventually(t, fc.HasWaiters, time.Second, time.Millisecond)
	cancel()
	out := <-done

	fc.Step(time.Minute)
	assert.True(t, out.Canceled)
	assert.Equal(t, 1, checker.Calls())
	assert.Empty(t, flash.Drain())
	assert.Len(t, log.all(), 2)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentPollsTotal.WithLabelValues("canceled")))
}

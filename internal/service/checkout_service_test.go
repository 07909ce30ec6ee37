package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/notify"
	"github.com/sefazor/taskflow-client/pkg/api"
	"github.com/sefazor/taskflow-client/pkg/metrics"
	"github.com/sefazor/taskflow-client/pkg/payment"
	"github.com/sefazor/taskflow-client/pkg/utils"
)

type fakeCheckoutBackend struct {
	requests []api.CheckoutRequest
	session  *payment.CheckoutSession
	err      error
}

func (b *fakeCheckoutBackend) CreateCheckout(_ context.Context, req api.CheckoutRequest) (*payment.CheckoutSession, error) {
	b.requests = append(b.requests, req)
	return b.session, b.err
}

type recordingNavigator struct {
	urls []string
	err  error
}

func (n *recordingNavigator) Navigate(url string) error {
	n.urls = append(n.urls, url)
	return n.err
}

func newCheckoutService(backend CheckoutBackend) (*CheckoutService, *metrics.Metrics) {
	m := metrics.New()
	return NewCheckoutService(backend, utils.NewValidator(models.PlanIDs()...), m, zap.NewNop()), m
}

func TestInitiateNavigatesToExactURL(t *testing.T) {
	const checkoutURL = "https://checkout.stripe.com/c/pay/cs_test_a1B2?locale=auto#fidkdWxOYHwnPyd1blpxYHZxWjA0"
	backend := &fakeCheckoutBackend{session: &payment.CheckoutSession{ID: "cs_test_a1B2", URL: checkoutURL}}
	svc, m := newCheckoutService(backend)
	nav := &recordingNavigator{}
	flash := notify.NewFlash()

	err := svc.Initiate(context.Background(), models.CheckoutRequest{PlanID: "professional", OrganizationID: "org-42"}, nav, flash)
	require.NoError(t, err)

	assert.Equal(t, []api.CheckoutRequest{{PackageID: "professional", OrgID: "org-42"}}, backend.requests)
	assert.Equal(t, []string{checkoutURL}, nav.urls)
	assert.Empty(t, flash.Drain())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckoutsTotal.WithLabelValues("professional", "redirected")))
}

func TestInitiateBackendErrorDoesNotNavigate(t *testing.T) {
	backend := &fakeCheckoutBackend{err: &api.Error{StatusCode: 403, Detail: "Insufficient permissions"}}
	svc, m := newCheckoutService(backend)
	nav := &recordingNavigator{}
	flash := notify.NewFlash()

	err := svc.Initiate(context.Background(), models.CheckoutRequest{PlanID: "professional", OrganizationID: "org-42"}, nav, flash)
	require.Error(t, err)

	assert.Empty(t, nav.urls)
	assert.Len(t, backend.requests, 1, "no automatic retry")
	assert.Equal(t, []notify.Toast{{Level: notify.LevelError, Message: "Insufficient permissions"}}, flash.Drain())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckoutsTotal.WithLabelValues("professional", "failed")))
}

func TestInitiateTransportError(t *testing.T) {
	backend := &fakeCheckoutBackend{err: errors.New("dial tcp: connection refused")}
	svc, _ := newCheckoutService(backend)
	nav := &recordingNavigator{}
	flash := notify.NewFlash()

	err := svc.Initiate(context.Background(), models.CheckoutRequest{PlanID: "starter", OrganizationID: "org-1"}, nav, flash)
	require.Error(t, err)

	assert.Empty(t, nav.urls)
	assert.Equal(t, []notify.Toast{{Level: notify.LevelError, Message: "Something went wrong. Please try again."}}, flash.Drain())
}

func TestInitiateRejectsMissingRedirectURL(t *testing.T) {
	for name, url := range map[string]string{
		"empty":    "",
		"relative": "/checkout/cs_1",
		"no host":  "https://",
		"scheme":   "javascript:alert(1)",
	} {
		t.Run(name, func(t *testing.T) {
			backend := &fakeCheckoutBackend{session: &payment.CheckoutSession{ID: "cs_1", URL: url}}
			svc, _ := newCheckoutService(backend)
			nav := &recordingNavigator{}
			flash := notify.NewFlash()

			err := svc.Initiate(context.Background(), models.CheckoutRequest{PlanID: "enterprise", OrganizationID: "org-1"}, nav, flash)

			assert.ErrorIs(t, err, ErrMissingRedirectURL)
			assert.Empty(t, nav.urls)
			assert.Len(t, flash.Drain(), 1)
		})
	}
}

func TestInitiateInvalidPlanSkipsBackend(t *testing.T) {
	backend := &fakeCheckoutBackend{}
	svc, _ := newCheckoutService(backend)
	nav := &recordingNavigator{}
	flash := notify.NewFlash()

	err := svc.Initiate(context.Background(), models.CheckoutRequest{PlanID: "gold", OrganizationID: "org-1"}, nav, flash)

	assert.ErrorIs(t, err, ErrInvalidCheckout)
	assert.Empty(t, backend.requests)
	assert.Empty(t, nav.urls)
	assert.Equal(t, []notify.Toast{{Level: notify.LevelError, Message: `"gold" is not a known plan`}}, flash.Drain())
}

func TestInitiateInvalidPlansShareOneSeries(t *testing.T) {
	svc, m := newCheckoutService(&fakeCheckoutBackend{})

	for i := 0; i < 50; i++ {
		req := models.CheckoutRequest{PlanID: fmt.Sprintf("junk-%d", i), OrganizationID: "org-1"}
		assert.ErrorIs(t, svc.Initiate(context.Background(), req, &recordingNavigator{}, nil), ErrInvalidCheckout)
	}

	assert.Equal(t, 1, testutil.CollectAndCount(m.CheckoutsTotal))
	assert.Equal(t, 50.0, testutil.ToFloat64(m.CheckoutsTotal.WithLabelValues(metrics.UnknownPlan, "invalid")))
}

func TestInitiateNavigationFailure(t *testing.T) {
	backend := &fakeCheckoutBackend{session: &payment.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/c/pay/cs_1"}}
	svc, _ := newCheckoutService(backend)
	nav := &recordingNavigator{err: errors.New("no browser")}

	err := svc.Initiate(context.Background(), models.CheckoutRequest{PlanID: "starter", OrganizationID: "org-1"}, nav, nil)
	assert.Error(t, err)
}

package controller

import (
	"context"

	"github.com/sefazor/taskflow-client/internal/models"
	"github.com/sefazor/taskflow-client/internal/notify"
	"github.com/sefazor/taskflow-client/internal/service"
	"github.com/sefazor/taskflow-client/pkg/payment"
)

type PaymentController struct {
	checkoutService *service.CheckoutService
	paymentService  *service.PaymentService
}

func NewPaymentController(checkoutService *service.CheckoutService, paymentService *service.PaymentService) *PaymentController {
	return &PaymentController{
		checkoutService: checkoutService,
		paymentService:  paymentService,
	}
}

func (c *PaymentController) CreateCheckoutSession(ctx context.Context, req models.CheckoutRequest, nav service.Navigator, n notify.Notifier) error {
	return c.checkoutService.Initiate(ctx, req, nav, n)
}

func (c *PaymentController) WatchPayment(ctx context.Context, sessionID string, n notify.Notifier, observe func(models.PaymentEvent)) payment.Outcome {
	return c.paymentService.Watch(ctx, sessionID, n, observe)
}

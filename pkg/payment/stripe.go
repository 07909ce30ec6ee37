package payment

import (
	"github.com/stripe/stripe-go/v74"
)

// StatusResult is what the backend reports for a hosted checkout session.
// Status and PaymentStatus carry Stripe's checkout session enums verbatim.
type StatusResult struct {
	Status        stripe.CheckoutSessionStatus        `json:"status"`
	PaymentStatus stripe.CheckoutSessionPaymentStatus `json:"payment_status"`
	AmountTotal   float64                             `json:"amount_total"`
	Currency      string                              `json:"currency"`
	Message       string                              `json:"message,omitempty"`
}

func (r *StatusResult) Paid() bool {
	return r != nil && r.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid
}

// CheckoutSession is the backend's answer to a checkout request.
type CheckoutSession struct {
	ID  string `json:"session_id"`
	URL string `json:"url"`
}

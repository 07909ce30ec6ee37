package models

import (
	"github.com/sefazor/taskflow-client/pkg/api"
)

type CheckoutRequest struct {
	PlanID         string `json:"plan_id" form:"plan_id" validate:"required,plan_id"`
	OrganizationID string `json:"organization_id" form:"organization_id" validate:"required"`
}

func (r CheckoutRequest) ToAPI() api.CheckoutRequest {
	return api.CheckoutRequest{
		PackageID: r.PlanID,
		OrgID:     r.OrganizationID,
	}
}

// PaymentEvent is pushed to the payment success page on every poller
// transition.
type PaymentEvent struct {
	State    string  `json:"state"`
	Attempt  int     `json:"attempt"`
	Queries  int     `json:"queries"`
	Terminal bool    `json:"terminal"`
	Level    string  `json:"level,omitempty"`
	Message  string  `json:"message,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
	Currency string  `json:"currency,omitempty"`
}

package models

// Subscription plans an organization can be upgraded to. Prices mirror the
// backend's package table and are for display only; the backend charges.
const (
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

type Plan struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Popular     bool    `json:"popular"`
}

func AvailablePlans() []Plan {
	return []Plan{
		{
			ID:          PlanStarter,
			Name:        "Starter Plan",
			Description: "Small teams getting organized",
			Price:       29.00,
		},
		{
			ID:          PlanProfessional,
			Name:        "Professional Plan",
			Description: "Growing teams with daily task routines",
			Price:       79.00,
			Popular:     true,
		},
		{
			ID:          PlanEnterprise,
			Name:        "Enterprise Plan",
			Description: "Multiple departments and priority support",
			Price:       199.00,
		},
	}
}

// PlanIDs lists the ids of AvailablePlans, in catalog order.
func PlanIDs() []string {
	plans := AvailablePlans()
	ids := make([]string, 0, len(plans))
	for _, p := range plans {
		ids = append(ids, p.ID)
	}
	return ids
}

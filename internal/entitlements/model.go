package entitlements

import "time"

// Payment is one record in the payment ledger. The ledger is written by the
// external payment collaborator; this service only reads it, apart from the
// dev-only seeding route.
type Payment struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Type      string     `json:"type"`
	Status    string     `json:"status"`
	PeriodEnd *time.Time `json:"periodEnd,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

const (
	PaymentTypeOneTime      = "one_time"
	PaymentTypeSubscription = "subscription"

	PaymentStatusCompleted = "completed"
	PaymentStatusActive    = "active"
	PaymentStatusCanceled  = "canceled"
)

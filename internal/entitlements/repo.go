package entitlements

import (
	"context"
	"time"
)

// LedgerRepo reads the payment ledger.
type LedgerRepo interface {
	// HasPremiumAccess reports whether any record grants the user premium
	// access at the given instant.
	HasPremiumAccess(ctx context.Context, userID string, now time.Time) (bool, error)
	// Grant inserts a ledger record. Only exercised by dev seeding; real
	// records come from the payment provider.
	Grant(ctx context.Context, p Payment) error
}

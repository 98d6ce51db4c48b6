package entitlements

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory ledger for dev and tests.
type MemoryRepo struct {
	mu       sync.RWMutex
	payments map[string][]Payment // userID -> records
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{payments: make(map[string][]Payment)}
}

// HasPremiumAccess evaluates the entitlement predicate over stored records.
func (r *MemoryRepo) HasPremiumAccess(ctx context.Context, userID string, now time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.payments[userID] {
		if grantsAccess(p, now) {
			return true, nil
		}
	}
	return false, nil
}

// Grant inserts a ledger record.
func (r *MemoryRepo) Grant(ctx context.Context, p Payment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments[p.UserID] = append(r.payments[p.UserID], p)
	return nil
}

func grantsAccess(p Payment, now time.Time) bool {
	if p.Type == PaymentTypeOneTime && p.Status == PaymentStatusCompleted {
		return true
	}
	if p.Type == PaymentTypeSubscription && p.Status == PaymentStatusActive {
		return p.PeriodEnd == nil || p.PeriodEnd.After(now)
	}
	return false
}

var _ LedgerRepo = (*MemoryRepo)(nil)

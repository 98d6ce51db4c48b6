package entitlements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service answers entitlement questions against the payment ledger. Results
// are recomputed on every call; nothing is cached or persisted here.
type Service struct {
	Ledger LedgerRepo
	now    func() time.Time
}

// NewService constructs a Service.
func NewService(ledger LedgerRepo) *Service {
	return &Service{Ledger: ledger, now: time.Now}
}

// HasPremiumAccess reports whether the user currently holds premium access:
// a completed one-time purchase, or an active subscription whose period has
// not ended. A ledger failure surfaces as ErrUnavailable, never as false.
func (s *Service) HasPremiumAccess(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, ErrInvalidInput
	}

	has, err := s.Ledger.HasPremiumAccess(ctx, userID, s.now().UTC())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, err
		}
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return has, nil
}

// GrantForDev seeds a ledger record so the gate can be exercised without a
// payment provider. Only reachable through dev routes.
func (s *Service) GrantForDev(ctx context.Context, p Payment) (Payment, error) {
	if p.UserID == "" || p.Type == "" || p.Status == "" {
		return Payment{}, ErrInvalidInput
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now().UTC()
	}
	if err := s.Ledger.Grant(ctx, p); err != nil {
		return Payment{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return p, nil
}

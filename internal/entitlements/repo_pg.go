package entitlements

import (
	"context"
	"database/sql"
	"time"
)

// PGRepo implements LedgerRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// HasPremiumAccess checks for a completed lifetime purchase or an active,
// unexpired subscription.
func (r *PGRepo) HasPremiumAccess(ctx context.Context, userID string, now time.Time) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1
    FROM payments
    WHERE user_id = $1
      AND (
          (type = 'one_time' AND status = 'completed')
          OR (type = 'subscription' AND status = 'active'
              AND (period_end IS NULL OR period_end > $2))
      )
)`

	var has bool
	if err := r.DB.QueryRowContext(ctx, query, userID, now).Scan(&has); err != nil {
		return false, err
	}
	return has, nil
}

// Grant inserts a ledger record.
func (r *PGRepo) Grant(ctx context.Context, p Payment) error {
	const query = `
INSERT INTO payments (id, user_id, type, status, period_end, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	var periodEnd sql.NullTime
	if p.PeriodEnd != nil {
		periodEnd = sql.NullTime{Time: *p.PeriodEnd, Valid: true}
	}

	_, err := r.DB.ExecContext(ctx, query, p.ID, p.UserID, p.Type, p.Status, periodEnd, p.CreatedAt)
	return err
}

var _ LedgerRepo = (*PGRepo)(nil)

package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"mailpanel-backend/internal/emailfiles"
)

type Service struct {
	FileRepo emailfiles.Repo
}

type ClaimResult struct {
	MigratedFiles int `json:"migratedFiles"`
}

func NewService(fileRepo emailfiles.Repo) *Service {
	return &Service{FileRepo: fileRepo}
}

// ClaimGuest re-assigns every file owned by the guest identity to the
// authenticated user.
func (s *Service) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	if strings.TrimSpace(guestUserID) == "" || strings.TrimSpace(authedUserID) == "" {
		return ClaimResult{}, errors.New("guestUserID and authedUserID are required")
	}

	if filePG, ok := s.FileRepo.(*emailfiles.PGRepo); ok && filePG != nil && filePG.DB != nil {
		return claimWithTx(ctx, filePG.DB, guestUserID, authedUserID)
	}

	count, err := s.FileRepo.ClaimGuest(ctx, guestUserID, authedUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedFiles: count}, nil
}

func claimWithTx(ctx context.Context, db *sql.DB, guestUserID, authedUserID string) (ClaimResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResult{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE email_files SET user_id = $1 WHERE user_id = $2 AND deleted_at IS NULL`, authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	count, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{MigratedFiles: int(count)}, nil
}

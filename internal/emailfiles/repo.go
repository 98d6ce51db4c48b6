package emailfiles

import "context"

// Repo defines persistence operations for email file metadata.
type Repo interface {
	Create(ctx context.Context, f EmailFile) error
	GetByID(ctx context.Context, userID, fileID string) (EmailFile, error)
	ListByUser(ctx context.Context, userID string) ([]EmailFile, error)
	// Delete removes the record and returns it so callers can clean up the
	// stored content. ErrNotFound when no record matches under this owner.
	Delete(ctx context.Context, userID, fileID string) (EmailFile, error)
	// ClaimGuest reassigns files owned by a guest identity to an
	// authenticated user and reports how many moved.
	ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error)
}

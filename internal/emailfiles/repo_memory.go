package emailfiles

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo for dev and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]EmailFile // userID -> files
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string][]EmailFile),
	}
}

// Create stores a new file record for a user.
func (r *MemoryRepo) Create(ctx context.Context, f EmailFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[f.UserID] = append(r.data[f.UserID], f)
	return nil
}

// GetByID returns a file by ID scoped to its owner.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, fileID string) (EmailFile, error) {
	if err := ctx.Err(); err != nil {
		return EmailFile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	files := r.data[userID]
	for i := range files {
		if files[i].ID == fileID {
			return files[i], nil
		}
	}
	return EmailFile{}, ErrNotFound
}

// ListByUser returns a user's files, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]EmailFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	userFiles := r.data[userID]
	r.mu.RUnlock()

	files := make([]EmailFile, len(userFiles))
	copy(files, userFiles)
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	return files, nil
}

// Delete removes the record and returns it.
func (r *MemoryRepo) Delete(ctx context.Context, userID, fileID string) (EmailFile, error) {
	if err := ctx.Err(); err != nil {
		return EmailFile{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	files := r.data[userID]
	for i := range files {
		if files[i].ID == fileID {
			deleted := files[i]
			r.data[userID] = append(files[:i:i], files[i+1:]...)
			return deleted, nil
		}
	}
	return EmailFile{}, ErrNotFound
}

// ClaimGuest reassigns a guest's files to an authenticated user.
func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	files := r.data[guestUserID]
	if len(files) == 0 {
		return 0, nil
	}
	for i := range files {
		files[i].UserID = authedUserID
	}
	r.data[authedUserID] = append(r.data[authedUserID], files...)
	delete(r.data, guestUserID)
	return len(files), nil
}

var _ Repo = (*MemoryRepo)(nil)

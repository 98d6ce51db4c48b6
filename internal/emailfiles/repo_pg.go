package emailfiles

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new email file record.
func (r *PGRepo) Create(ctx context.Context, f EmailFile) error {
	const query = `
INSERT INTO email_files (
    id,
    user_id,
    filename,
    file_type,
    size_bytes,
    storage_key,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		f.ID,
		f.UserID,
		f.Filename,
		f.FileType,
		f.SizeBytes,
		f.StorageKey,
		f.CreatedAt,
	)
	return err
}

// GetByID fetches a file by ID scoped to its owner. A file owned by a
// different user yields ErrNotFound, same as a missing one.
func (r *PGRepo) GetByID(ctx context.Context, userID, fileID string) (EmailFile, error) {
	const query = `
SELECT id, user_id, filename, file_type, size_bytes, storage_key, created_at
FROM email_files
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
LIMIT 1`

	var f EmailFile
	err := r.DB.QueryRowContext(ctx, query, userID, fileID).Scan(
		&f.ID,
		&f.UserID,
		&f.Filename,
		&f.FileType,
		&f.SizeBytes,
		&f.StorageKey,
		&f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EmailFile{}, ErrNotFound
		}
		return EmailFile{}, err
	}
	return f, nil
}

// ListByUser lists a user's files newest-first. No files is an empty slice,
// not an error.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]EmailFile, error) {
	const query = `
SELECT id, user_id, filename, file_type, size_bytes, storage_key, created_at
FROM email_files
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC, id`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []EmailFile{}
	for rows.Next() {
		var f EmailFile
		if err := rows.Scan(
			&f.ID,
			&f.UserID,
			&f.Filename,
			&f.FileType,
			&f.SizeBytes,
			&f.StorageKey,
			&f.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Delete soft-deletes the record and returns it. A second delete of the same
// id finds no live row and yields ErrNotFound.
func (r *PGRepo) Delete(ctx context.Context, userID, fileID string) (EmailFile, error) {
	const query = `
UPDATE email_files
SET deleted_at = now()
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL
RETURNING id, user_id, filename, file_type, size_bytes, storage_key, created_at`

	var f EmailFile
	err := r.DB.QueryRowContext(ctx, query, userID, fileID).Scan(
		&f.ID,
		&f.UserID,
		&f.Filename,
		&f.FileType,
		&f.SizeBytes,
		&f.StorageKey,
		&f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return EmailFile{}, ErrNotFound
		}
		return EmailFile{}, err
	}
	return f, nil
}

// ClaimGuest reassigns files owned by a guest identity to an authenticated user.
func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (int, error) {
	const query = `
UPDATE email_files
SET user_id = $1
WHERE user_id = $2 AND deleted_at IS NULL`

	res, err := r.DB.ExecContext(ctx, query, authedUserID, guestUserID)
	if err != nil {
		return 0, err
	}
	updated, _ := res.RowsAffected()
	return int(updated), nil
}

var _ Repo = (*PGRepo)(nil)

package emailfiles

import (
	"context"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"mailpanel-backend/internal/shared/storage/object"
	"mailpanel-backend/internal/shared/telemetry"
	"mailpanel-backend/internal/shared/util"
)

// MaxUploadBytes is the upload size limit (10 MiB).
const MaxUploadBytes = 10 << 20

var allowedExtensions = map[string]struct{}{
	"eml":  {},
	"html": {},
}

var allowedMIMETypes = map[string]struct{}{
	"message/rfc822": {},
	"text/html":      {},
}

// Service contains business logic for email files.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload validates the file and persists content plus metadata.
// Validation order: extension, declared MIME type, size. Nothing is written
// on a validation failure; a failed metadata insert removes the stored bytes.
func (s *Service) Upload(ctx context.Context, userID, filename, declaredMIME string, declaredSize int64, r io.Reader) (EmailFile, error) {
	filename, err := util.SanitizeFileName(filename)
	if err != nil {
		return EmailFile{}, ErrInvalidInput
	}

	ext, ok := fileExtension(filename)
	if !ok {
		return EmailFile{}, ErrInvalidType
	}
	if _, ok := allowedExtensions[ext]; !ok {
		return EmailFile{}, ErrInvalidType
	}
	if _, ok := allowedMIMETypes[strings.TrimSpace(declaredMIME)]; !ok {
		return EmailFile{}, ErrInvalidType
	}
	if declaredSize > MaxUploadBytes {
		return EmailFile{}, ErrTooLarge
	}

	id := uuid.NewString()
	storageKey := StorageKeyFor(userID, id)

	// The extra byte catches bodies that exceed the limit despite the
	// declared size.
	size, err := s.Store.Save(ctx, storageKey, io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return EmailFile{}, err
	}
	if size > MaxUploadBytes {
		s.removeStored(ctx, storageKey)
		return EmailFile{}, ErrTooLarge
	}

	f := EmailFile{
		ID:         id,
		UserID:     userID,
		Filename:   filename,
		FileType:   ext,
		SizeBytes:  size,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, f); err != nil {
		s.removeStored(ctx, storageKey)
		return EmailFile{}, err
	}

	return f, nil
}

// RegisterStored records metadata for content already uploaded directly to
// the object store (presigned flow). The key must live under the owner's
// namespace so users cannot register objects they do not own.
func (s *Service) RegisterStored(ctx context.Context, userID, filename, declaredMIME, storageKey string, sizeBytes int64) (EmailFile, error) {
	filename, err := util.SanitizeFileName(filename)
	if err != nil {
		return EmailFile{}, ErrInvalidInput
	}
	if strings.TrimSpace(storageKey) == "" || sizeBytes <= 0 {
		return EmailFile{}, ErrInvalidInput
	}

	ext, ok := fileExtension(filename)
	if !ok {
		return EmailFile{}, ErrInvalidType
	}
	if _, ok := allowedExtensions[ext]; !ok {
		return EmailFile{}, ErrInvalidType
	}
	if _, ok := allowedMIMETypes[strings.TrimSpace(declaredMIME)]; !ok {
		return EmailFile{}, ErrInvalidType
	}
	if sizeBytes > MaxUploadBytes {
		return EmailFile{}, ErrTooLarge
	}
	if !strings.HasPrefix(storageKey, util.HashUserKey(userID)+"/") {
		return EmailFile{}, ErrInvalidInput
	}

	f := EmailFile{
		ID:         uuid.NewString(),
		UserID:     userID,
		Filename:   filename,
		FileType:   ext,
		SizeBytes:  sizeBytes,
		StorageKey: storageKey,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, f); err != nil {
		return EmailFile{}, err
	}
	return f, nil
}

// List returns a user's file metadata, newest first. An owner with no files
// gets an empty slice.
func (s *Service) List(ctx context.Context, userID string) ([]EmailFile, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Resolve returns a file's metadata scoped to its owner.
func (s *Service) Resolve(ctx context.Context, userID, fileID string) (EmailFile, error) {
	if userID == "" || fileID == "" {
		return EmailFile{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, fileID)
}

// OpenContent resolves a file and opens its stored bytes for streaming.
// The caller owns the returned ReadCloser.
func (s *Service) OpenContent(ctx context.Context, userID, fileID string) (EmailFile, io.ReadCloser, error) {
	f, err := s.Resolve(ctx, userID, fileID)
	if err != nil {
		return EmailFile{}, nil, err
	}
	rc, err := s.Store.Open(ctx, f.StorageKey)
	if err != nil {
		return EmailFile{}, nil, err
	}
	return f, rc, nil
}

// Delete removes the metadata record and the stored content. The record is
// authoritative: once it is gone the file no longer exists, even if object
// removal fails (that failure is logged, not surfaced).
func (s *Service) Delete(ctx context.Context, userID, fileID string) error {
	if userID == "" || fileID == "" {
		return ErrInvalidInput
	}
	f, err := s.Repo.Delete(ctx, userID, fileID)
	if err != nil {
		return err
	}
	s.removeStored(ctx, f.StorageKey)
	return nil
}

func (s *Service) removeStored(ctx context.Context, storageKey string) {
	if err := s.Store.Remove(ctx, storageKey); err != nil {
		telemetry.Warn("emailfiles.remove_object_failed", map[string]any{
			"storage_key": storageKey,
			"err":         err.Error(),
		})
	}
}

// StorageKeyFor derives the opaque content key for an owner and file id.
// Ownership is carried by the hashed namespace, never by the display name.
func StorageKeyFor(userID, fileID string) string {
	return path.Join(util.HashUserKey(userID), fileID)
}

func fileExtension(filename string) (string, bool) {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return "", false
	}
	return strings.ToLower(filename[idx+1:]), true
}

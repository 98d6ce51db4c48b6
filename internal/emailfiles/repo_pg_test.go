package emailfiles

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateInsertsAllColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	f := EmailFile{
		ID:         "file-1",
		UserID:     "u1",
		Filename:   "invoice.eml",
		FileType:   "eml",
		SizeBytes:  5120,
		StorageKey: "abc123/file-1",
		CreatedAt:  time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO email_files").
		WithArgs(f.ID, f.UserID, f.Filename, f.FileType, f.SizeBytes, f.StorageKey, f.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), f); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScopesToOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	created := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "user_id", "filename", "file_type", "size_bytes", "storage_key", "created_at"}).
		AddRow("file-1", "u1", "invoice.eml", "eml", int64(5120), "abc123/file-1", created)
	mock.ExpectQuery("SELECT id, user_id, filename, file_type, size_bytes, storage_key, created_at").
		WithArgs("u1", "file-1").
		WillReturnRows(rows)

	f, err := repo.GetByID(context.Background(), "u1", "file-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if f.Filename != "invoice.eml" || f.SizeBytes != 5120 {
		t.Fatalf("unexpected record: %+v", f)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDMapsNoRowsToNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("SELECT id, user_id, filename, file_type, size_bytes, storage_key, created_at").
		WithArgs("u2", "file-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "filename", "file_type", "size_bytes", "storage_key", "created_at"}))

	if _, err := repo.GetByID(context.Background(), "u2", "file-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteReturnsNotFoundWhenAlreadyDeleted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectQuery("UPDATE email_files").
		WithArgs("u1", "file-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "filename", "file_type", "size_bytes", "storage_key", "created_at"}))

	if _, err := repo.Delete(context.Background(), "u1", "file-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoClaimGuestCountsUpdatedRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	mock.ExpectExec("UPDATE email_files").
		WithArgs("google:123", "guest:abc").
		WillReturnResult(sqlmock.NewResult(0, 2))

	count, err := repo.ClaimGuest(context.Background(), "guest:abc", "google:123")
	if err != nil {
		t.Fatalf("ClaimGuest: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 claimed rows, got %d", count)
	}
}

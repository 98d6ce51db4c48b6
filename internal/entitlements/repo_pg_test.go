package entitlements

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoHasPremiumAccessQueriesLedger(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u1", now).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	has, err := repo.HasPremiumAccess(context.Background(), "u1", now)
	if err != nil {
		t.Fatalf("HasPremiumAccess: %v", err)
	}
	if !has {
		t.Fatalf("expected access")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoHasPremiumAccessPropagatesQueryErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u1", now).
		WillReturnError(context.DeadlineExceeded)

	if _, err := repo.HasPremiumAccess(context.Background(), "u1", now); err == nil {
		t.Fatalf("expected error from failing query")
	}
}

func TestPGRepoGrantInsertsNullPeriodEnd(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	p := Payment{
		ID:        "pay-1",
		UserID:    "u1",
		Type:      PaymentTypeSubscription,
		Status:    PaymentStatusActive,
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO payments").
		WithArgs(p.ID, p.UserID, p.Type, p.Status, sqlmock.AnyArg(), p.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Grant(context.Background(), p); err != nil {
		t.Fatalf("Grant: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

package users

import (
	"context"
	"errors"
	"testing"
)

func TestUpsertPreservesCreatedAt(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first := User{ID: "google:1", Email: "a@example.com", FullName: "Alice"}
	if err := svc.UpsertFromAuth(ctx, first); err != nil {
		t.Fatalf("UpsertFromAuth: %v", err)
	}

	stored, err := svc.GetByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}

	update := User{ID: "google:1", Email: "a@example.com", FullName: "Alice Updated"}
	if err := svc.UpsertFromAuth(ctx, update); err != nil {
		t.Fatalf("UpsertFromAuth update: %v", err)
	}

	after, err := svc.GetByID(ctx, "google:1")
	if err != nil {
		t.Fatalf("GetByID after update: %v", err)
	}
	if after.FullName != "Alice Updated" {
		t.Fatalf("expected updated name, got %q", after.FullName)
	}
	if !after.CreatedAt.Equal(stored.CreatedAt) {
		t.Fatalf("expected CreatedAt preserved across upserts")
	}
}

func TestUpsertRequiresIDAndEmail(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if err := svc.UpsertFromAuth(context.Background(), User{Email: "a@example.com"}); err == nil {
		t.Fatalf("expected error for missing id")
	}
	if err := svc.UpsertFromAuth(context.Background(), User{ID: "google:1"}); err == nil {
		t.Fatalf("expected error for missing email")
	}
}

func TestGetByIDUnknownUser(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if _, err := svc.GetByID(context.Background(), "google:missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestLocalStoreSaveOpenRemove(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Save(ctx, "abc123/file-1", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n != 5 {
		t.Fatalf("expected 5 bytes written, got %d", n)
	}

	rc, err := store.Open(ctx, "abc123/file-1")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected content: %q", data)
	}

	if err := store.Remove(ctx, "abc123/file-1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Open(ctx, "abc123/file-1"); err == nil {
		t.Fatalf("expected open to fail after remove")
	}

	// Removing an absent key succeeds.
	if err := store.Remove(ctx, "abc123/file-1"); err != nil {
		t.Fatalf("Remove absent key: %v", err)
	}
}

func TestLocalStoreRejectsTraversalKeys(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, err := store.Save(ctx, "../outside", strings.NewReader("x")); err == nil {
		t.Fatalf("expected traversal key to be rejected")
	}
	if _, err := store.Open(ctx, "/etc/passwd"); err == nil {
		t.Fatalf("expected absolute key to be rejected")
	}
}

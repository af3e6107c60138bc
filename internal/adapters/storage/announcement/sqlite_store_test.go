package announcement

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/announcement"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return NewSQLiteStore(db)
}

func TestSaveAndGetByID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := domain.Announcement{
		ID:        "ann-1",
		Message:   "Gym closed **tomorrow**",
		CreatedAt: created,
		PostedAt:  created,
	}
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetByID(ctx, "ann-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Message != a.Message {
		t.Errorf("got message %q, want %q", got.Message, a.Message)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at did not round-trip: %v", got.CreatedAt)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.GetByID(context.Background(), "nope")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("got %v, want wrapped sql.ErrNoRows", err)
	}
}

func TestSaveUpdatesExistingRow(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := domain.Announcement{ID: "ann-1", Message: "v1", CreatedAt: created, PostedAt: created}
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	a.Message = "v2"
	a.PostedAt = created.Add(time.Hour)
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := store.GetByID(ctx, "ann-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Message != "v2" {
		t.Errorf("got message %q, want v2", got.Message)
	}
	// CreatedAt keeps the original value; only posted_at moves on edit.
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at changed on update: %v", got.CreatedAt)
	}
	if !got.PostedAt.Equal(created.Add(time.Hour)) {
		t.Errorf("posted_at not updated: %v", got.PostedAt)
	}
}

func TestListNewestPostingFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"ann-1", "ann-2", "ann-3"} {
		a := domain.Announcement{
			ID:        id,
			Message:   "msg " + id,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
			PostedAt:  base.Add(time.Duration(i) * time.Hour),
		}
		if err := store.Save(ctx, a); err != nil {
			t.Fatalf("Save %s failed: %v", id, err)
		}
	}

	// Editing the oldest bumps it to the top of the feed.
	edited := domain.Announcement{
		ID:        "ann-1",
		Message:   "msg ann-1 edited",
		CreatedAt: base,
		PostedAt:  base.Add(24 * time.Hour),
	}
	if err := store.Save(ctx, edited); err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d announcements, want 3", len(list))
	}
	if list[0].ID != "ann-1" {
		t.Errorf("got first %q, want the re-posted ann-1", list[0].ID)
	}
}

func TestDelete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	a := domain.Announcement{ID: "ann-1", Message: "bye", CreatedAt: now, PostedAt: now}
	if err := store.Save(ctx, a); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete(ctx, "ann-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, "ann-1"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected announcement gone, got %v", err)
	}
}

package announcement

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/announcement"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new announcement store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// GetByID retrieves an Announcement by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Announcement, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, message, created_at, posted_at FROM announcement WHERE id = ?", id)

	entity, err := scanAnnouncement(row)
	if err == sql.ErrNoRows {
		return domain.Announcement{}, fmt.Errorf("announcement not found: %w", err)
	}
	return entity, err
}

// Save persists an Announcement (insert or update).
// PRE: entity has been validated
// POST: Entity is persisted
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Announcement) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO announcement (id, message, created_at, posted_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET message=excluded.message, posted_at=excluded.posted_at`,
		entity.ID,
		entity.Message,
		entity.CreatedAt.Format(time.RFC3339),
		entity.PostedAt.Format(time.RFC3339),
	)
	return err
}

// Delete removes an Announcement by ID.
// PRE: id is non-empty
// POST: Row removed if present
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM announcement WHERE id = ?", id)
	return err
}

// List retrieves all announcements, newest posting first.
// POST: Returns entities ordered by posted_at descending
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Announcement, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, message, created_at, posted_at FROM announcement ORDER BY posted_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Announcement
	for rows.Next() {
		entity, err := scanAnnouncement(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entity)
	}
	return result, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnnouncement(row scanner) (domain.Announcement, error) {
	var entity domain.Announcement
	var createdAt, postedAt string
	if err := row.Scan(&entity.ID, &entity.Message, &createdAt, &postedAt); err != nil {
		return domain.Announcement{}, err
	}
	var err error
	if entity.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return domain.Announcement{}, fmt.Errorf("bad announcement created_at: %w", err)
	}
	if entity.PostedAt, err = time.Parse(time.RFC3339, postedAt); err != nil {
		return domain.Announcement{}, fmt.Errorf("bad announcement posted_at: %w", err)
	}
	return entity, nil
}

package paymentlog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/paymentlog"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new payment log store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Execer covers both *sql.Tx and SQLDB for the shared insert path.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Insert writes one log row through the given executor. The settlement
// transaction in the student store shares this path with Append.
// PRE: entity has been validated
func Insert(ctx context.Context, db Execer, entity domain.PaymentLog) error {
	_, err := db.ExecContext(ctx,
		"INSERT INTO payment_log (id, student_id, student_name, amount, date, month_key, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entity.ID,
		entity.StudentID,
		entity.StudentName,
		entity.Amount,
		entity.Date.Format(time.RFC3339),
		entity.MonthKey,
		entity.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// Append inserts a new log entry. There is no update path.
// PRE: entity has been validated
// POST: Entry is persisted
func (s *SQLiteStore) Append(ctx context.Context, entity domain.PaymentLog) error {
	return Insert(ctx, s.db, entity)
}

// List retrieves all log entries ordered by creation timestamp descending.
// POST: Returns all entries, newest first
func (s *SQLiteStore) List(ctx context.Context) ([]domain.PaymentLog, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, student_id, student_name, amount, date, month_key, created_at FROM payment_log ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PaymentLog
	for rows.Next() {
		var entity domain.PaymentLog
		var date, createdAt string
		if err := rows.Scan(&entity.ID, &entity.StudentID, &entity.StudentName, &entity.Amount, &date, &entity.MonthKey, &createdAt); err != nil {
			return nil, err
		}
		if entity.Date, err = time.Parse(time.RFC3339, date); err != nil {
			return nil, fmt.Errorf("bad payment_log date: %w", err)
		}
		if entity.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("bad payment_log created_at: %w", err)
		}
		result = append(result, entity)
	}
	return result, rows.Err()
}

package student

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"gymdesk/internal/adapters/storage"
	storagePaymentlog "gymdesk/internal/adapters/storage/paymentlog"
	"gymdesk/internal/domain/paymentlog"
	"gymdesk/internal/domain/progress"
	domain "gymdesk/internal/domain/student"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new student store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const studentColumns = "id, name, phone, access_code, monthly_fee, paid_amount, due_amount, payment_status, next_due_date, join_date, last_payment_date, attendance, progress_logs, plan_details, version"

// progressRow is the JSON shape of a progress entry inside the student row.
type progressRow struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	WeightKg  float64   `json:"weightKg"`
	HeightCm  float64   `json:"heightCm"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetByID retrieves a Student by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Student, error) {
	query := "SELECT " + studentColumns + " FROM student WHERE id = ?"
	row := s.db.QueryRowContext(ctx, query, id)

	entity, err := scanStudent(row)
	if err == sql.ErrNoRows {
		return domain.Student{}, fmt.Errorf("student not found: %w", err)
	}
	return entity, err
}

// GetByAccessCode retrieves all students with the given access code.
// Access codes are a lookup key, not guaranteed unique by the store, so a
// slice comes back; the caller disambiguates by name.
// PRE: code is non-empty
// POST: Returns zero or more matching students
func (s *SQLiteStore) GetByAccessCode(ctx context.Context, code string) ([]domain.Student, error) {
	query := "SELECT " + studentColumns + " FROM student WHERE access_code = ?"
	rows, err := s.db.QueryContext(ctx, query, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Student
	for rows.Next() {
		entity, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entity)
	}
	return result, rows.Err()
}

// Save persists a Student. A zero version inserts a new row (version becomes
// 1); a non-zero version is a compare-and-swap update that fails with
// storage.ErrVersionConflict when the row has moved on.
// PRE: entity has been validated
// POST: Entity is persisted; returned copy carries the current version
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Student) (domain.Student, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Student{}, err
	}
	defer tx.Rollback()

	saved, err := saveStudentTx(ctx, tx, entity)
	if err != nil {
		return domain.Student{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Student{}, err
	}
	return saved, nil
}

// SaveSettlement persists a payment approval atomically: the student's PAID
// state and the appended payment log land in one transaction, so the status
// flag and its log row cannot diverge.
// PRE: entity is settled, log has been validated
// POST: Both writes committed, or neither
func (s *SQLiteStore) SaveSettlement(ctx context.Context, entity domain.Student, log paymentlog.PaymentLog) (domain.Student, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Student{}, err
	}
	defer tx.Rollback()

	saved, err := saveStudentTx(ctx, tx, entity)
	if err != nil {
		return domain.Student{}, err
	}

	if err := storagePaymentlog.Insert(ctx, tx, log); err != nil {
		return domain.Student{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Student{}, err
	}
	return saved, nil
}

// Delete removes a Student by ID. Already-written payment logs are retained.
// PRE: id is non-empty
// POST: Row removed if present
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM student WHERE id = ?", id)
	return err
}

// List retrieves students ordered by name, optionally filtered by payment status.
// PRE: filter is populated (zero value means no filtering)
// POST: Returns matching students
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Student, error) {
	query := "SELECT " + studentColumns + " FROM student"
	var args []any
	if filter.Status != "" {
		query += " WHERE payment_status = ?"
		args = append(args, filter.Status)
	}
	query += " ORDER BY name COLLATE NOCASE"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Student
	for rows.Next() {
		entity, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, entity)
	}
	return result, rows.Err()
}

// execer covers both *sql.Tx and SQLDB for the shared save path.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveStudentTx(ctx context.Context, tx execer, entity domain.Student) (domain.Student, error) {
	attendance, err := json.Marshal(orEmptyMap(entity.Attendance))
	if err != nil {
		return domain.Student{}, err
	}
	logs := make([]progressRow, 0, len(entity.ProgressLogs))
	for _, e := range entity.ProgressLogs {
		logs = append(logs, progressRow(e))
	}
	progressJSON, err := json.Marshal(logs)
	if err != nil {
		return domain.Student{}, err
	}

	if entity.Version == 0 {
		entity.Version = 1
		_, err = tx.ExecContext(ctx,
			"INSERT INTO student ("+studentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
			entity.ID,
			entity.Name,
			entity.Phone,
			entity.AccessCode,
			entity.MonthlyFee,
			entity.PaidAmount,
			entity.DueAmount,
			entity.PaymentStatus,
			nullableTime(entity.NextDueDate),
			entity.JoinDate.Format(time.RFC3339),
			nullableTime(entity.LastPaymentDate),
			string(attendance),
			string(progressJSON),
			entity.PlanDetails,
			entity.Version,
		)
		if err != nil {
			return domain.Student{}, err
		}
		return entity, nil
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE student SET name=?, phone=?, access_code=?, monthly_fee=?, paid_amount=?, due_amount=?,
			payment_status=?, next_due_date=?, join_date=?, last_payment_date=?, attendance=?,
			progress_logs=?, plan_details=?, version=version+1
		WHERE id=? AND version=?`,
		entity.Name,
		entity.Phone,
		entity.AccessCode,
		entity.MonthlyFee,
		entity.PaidAmount,
		entity.DueAmount,
		entity.PaymentStatus,
		nullableTime(entity.NextDueDate),
		entity.JoinDate.Format(time.RFC3339),
		nullableTime(entity.LastPaymentDate),
		string(attendance),
		string(progressJSON),
		entity.PlanDetails,
		entity.ID,
		entity.Version,
	)
	if err != nil {
		return domain.Student{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Student{}, err
	}
	if affected == 0 {
		return domain.Student{}, storage.ErrVersionConflict
	}
	entity.Version++
	return entity, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(row scanner) (domain.Student, error) {
	var entity domain.Student
	var nextDue, lastPayment sql.NullString
	var joinDate, attendance, progressJSON string

	err := row.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Phone,
		&entity.AccessCode,
		&entity.MonthlyFee,
		&entity.PaidAmount,
		&entity.DueAmount,
		&entity.PaymentStatus,
		&nextDue,
		&joinDate,
		&lastPayment,
		&attendance,
		&progressJSON,
		&entity.PlanDetails,
		&entity.Version,
	)
	if err != nil {
		return domain.Student{}, err
	}

	if entity.JoinDate, err = time.Parse(time.RFC3339, joinDate); err != nil {
		return domain.Student{}, fmt.Errorf("bad join_date: %w", err)
	}
	if nextDue.Valid && nextDue.String != "" {
		if entity.NextDueDate, err = time.Parse(time.RFC3339, nextDue.String); err != nil {
			return domain.Student{}, fmt.Errorf("bad next_due_date: %w", err)
		}
	}
	if lastPayment.Valid && lastPayment.String != "" {
		if entity.LastPaymentDate, err = time.Parse(time.RFC3339, lastPayment.String); err != nil {
			return domain.Student{}, fmt.Errorf("bad last_payment_date: %w", err)
		}
	}
	if err = json.Unmarshal([]byte(attendance), &entity.Attendance); err != nil {
		return domain.Student{}, fmt.Errorf("bad attendance json: %w", err)
	}
	var logs []progressRow
	if err = json.Unmarshal([]byte(progressJSON), &logs); err != nil {
		return domain.Student{}, fmt.Errorf("bad progress_logs json: %w", err)
	}
	for _, l := range logs {
		entity.ProgressLogs = append(entity.ProgressLogs, progress.Entry(l))
	}
	return entity, nil
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(time.RFC3339)
}

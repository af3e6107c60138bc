package paymentlog

import (
	"errors"
	"time"
)

// MonthKeyLayout is the YYYY-MM bucket key format for monthly reporting.
const MonthKeyLayout = "2006-01"

// Domain errors
var (
	ErrEmptyID           = errors.New("payment log id cannot be empty")
	ErrEmptyStudentID    = errors.New("payment log student id cannot be empty")
	ErrNonPositiveAmount = errors.New("payment log amount must be positive")
	ErrZeroDate          = errors.New("payment log date cannot be zero")
)

// PaymentLog is an immutable, append-only record of an approved payment.
// The log list is the ground truth for monthly collected totals; the
// student's due/paid fields are a derived view.
type PaymentLog struct {
	ID          string
	StudentID   string
	StudentName string // snapshot at approval time
	Amount      int
	Date        time.Time
	MonthKey    string // YYYY-MM, derived from Date
	CreatedAt   time.Time
}

// Validate checks if the PaymentLog has valid data.
// PRE: PaymentLog struct is populated
// POST: Returns nil if valid, error otherwise
// INVARIANT: Amount > 0; MonthKey matches Date
func (p *PaymentLog) Validate() error {
	if p.ID == "" {
		return ErrEmptyID
	}
	if p.StudentID == "" {
		return ErrEmptyStudentID
	}
	if p.Amount <= 0 {
		return ErrNonPositiveAmount
	}
	if p.Date.IsZero() {
		return ErrZeroDate
	}
	if p.MonthKey != MonthKey(p.Date) {
		return errors.New("payment log month key does not match its date")
	}
	return nil
}

// MonthKey derives the YYYY-MM bucket key from a point in time.
// Lexicographic order on these keys is chronological order.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

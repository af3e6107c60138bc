package student

import (
	"errors"
	"strings"
	"time"

	"gymdesk/internal/domain/progress"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Payment statuses
const (
	StatusDue     = "DUE"
	StatusPaid    = "PAID"
	StatusPending = "PENDING_APPROVAL"
)

// Attendance marks, keyed by YYYY-MM-DD date strings. A missing key means
// the day was never marked, which is distinct from an explicit absence.
const (
	MarkPresent = "P"
	MarkAbsent  = "A"
)

// AccessCodeLength is the exact number of digits in a student access code.
const AccessCodeLength = 6

// DateLayout is the calendar-date key format used for attendance.
const DateLayout = "2006-01-02"

// Domain errors
var (
	ErrEmptyName         = errors.New("student name cannot be empty")
	ErrNameTooLong       = errors.New("student name cannot exceed 100 characters")
	ErrInvalidAccessCode = errors.New("access code must be exactly 6 digits")
	ErrNegativeFee       = errors.New("monthly fee cannot be negative")
	ErrNegativeDue       = errors.New("due amount cannot be negative")
	ErrInvalidStatus     = errors.New("payment status must be one of: DUE, PAID, PENDING_APPROVAL")
	ErrPaidWithDue       = errors.New("a PAID student cannot carry a due amount")
	ErrNonPositiveAmount = errors.New("settlement amount must be positive")
	ErrInvalidMark       = errors.New("attendance mark must be 'P' or 'A'")
	ErrInvalidDate       = errors.New("attendance date must be YYYY-MM-DD")
)

// ValidStatuses contains all valid payment statuses.
var ValidStatuses = []string{StatusDue, StatusPaid, StatusPending}

// Student is a gym member record. Attendance and progress logs live inline
// on the record, matching the single-document granularity of the store.
type Student struct {
	ID              string
	Name            string
	Phone           string
	AccessCode      string // 6 ASCII digits; lookup key, not guaranteed unique
	MonthlyFee      int
	PaidAmount      int
	DueAmount       int
	PaymentStatus   string
	NextDueDate     time.Time
	JoinDate        time.Time
	LastPaymentDate time.Time
	Attendance      map[string]string // YYYY-MM-DD -> P/A
	ProgressLogs    []progress.Entry
	PlanDetails     string
	Version         int64 // optimistic concurrency token, managed by the store
}

// Validate checks if the Student has valid data.
// PRE: Student struct is populated
// POST: Returns nil if valid, error otherwise
// INVARIANT: DueAmount >= 0; PaymentStatus == PAID implies DueAmount == 0
func (s *Student) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if len(s.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !ValidAccessCode(s.AccessCode) {
		return ErrInvalidAccessCode
	}
	if s.MonthlyFee < 0 {
		return ErrNegativeFee
	}
	if s.DueAmount < 0 {
		return ErrNegativeDue
	}
	if !isValidStatus(s.PaymentStatus) {
		return ErrInvalidStatus
	}
	if s.PaymentStatus == StatusPaid && s.DueAmount != 0 {
		return ErrPaidWithDue
	}
	return nil
}

// AssignFee sets a new monthly fee and resets the payment cycle.
// Used both at registration and at manual renewal.
// PRE: fee >= 0
// POST: MonthlyFee = fee, DueAmount = fee, PaymentStatus = DUE, NextDueDate = nextDue
func (s *Student) AssignFee(fee int, nextDue time.Time) error {
	if fee < 0 {
		return ErrNegativeFee
	}
	s.MonthlyFee = fee
	s.DueAmount = fee
	s.PaymentStatus = StatusDue
	s.NextDueDate = nextDue
	return nil
}

// MarkPaymentPending records a student-asserted, admin-unverified payment.
// Amounts are untouched until the admin approves.
// POST: PaymentStatus = PENDING_APPROVAL
func (s *Student) MarkPaymentPending() {
	s.PaymentStatus = StatusPending
}

// Settle clears the balance on payment approval. Full-settlement model:
// approval always zeroes the due amount; partial payments are not
// representable without a manual edit.
// PRE: amount > 0
// POST: PaymentStatus = PAID, DueAmount = 0, PaidAmount = amount, LastPaymentDate = now
func (s *Student) Settle(amount int, now time.Time) error {
	if amount <= 0 {
		return ErrNonPositiveAmount
	}
	s.PaymentStatus = StatusPaid
	s.DueAmount = 0
	s.PaidAmount = amount
	s.LastPaymentDate = now
	return nil
}

// MarkAttendance records a presence mark for a calendar day.
// Last write wins per date key; no history of prior marks is kept.
// PRE: date is YYYY-MM-DD, mark is P or A
// POST: Attendance[date] = mark
func (s *Student) MarkAttendance(date, mark string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}
	if mark != MarkPresent && mark != MarkAbsent {
		return ErrInvalidMark
	}
	if s.Attendance == nil {
		s.Attendance = make(map[string]string)
	}
	s.Attendance[date] = mark
	return nil
}

// AttendanceOn returns the mark for a day and whether the day was marked at all.
// INVARIANT: Attendance map is not mutated
func (s *Student) AttendanceOn(date string) (string, bool) {
	mark, ok := s.Attendance[date]
	return mark, ok
}

// HasDue returns true if the student currently owes anything.
// INVARIANT: fields are not mutated
func (s *Student) HasDue() bool {
	return s.DueAmount > 0
}

// IsPending returns true if a self-reported payment awaits approval.
// INVARIANT: fields are not mutated
func (s *Student) IsPending() bool {
	return s.PaymentStatus == StatusPending
}

// ValidAccessCode reports whether code is exactly 6 ASCII digits.
func ValidAccessCode(code string) bool {
	if len(code) != AccessCodeLength {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// MatchesName compares a login name against the record, trimmed and
// case-insensitive, the same way the self-service login does.
func (s *Student) MatchesName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(s.Name), strings.TrimSpace(name))
}

func isValidStatus(status string) bool {
	for _, v := range ValidStatuses {
		if v == status {
			return true
		}
	}
	return false
}

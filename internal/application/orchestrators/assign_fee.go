package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gymdesk/internal/domain/student"
)

// AssignFeeInput carries input for the fee assignment orchestrator.
type AssignFeeInput struct {
	StudentID string
	Fee       int
	// NextDueDate is optional; the zero value defaults to now + 30 days.
	NextDueDate time.Time
}

// AssignFeeDeps holds dependencies for AssignFee.
type AssignFeeDeps struct {
	StudentStore StudentStore
	Now          func() time.Time
}

// ExecuteAssignFee starts a new payment cycle: sets the monthly fee, makes
// the full fee due again, and moves the next due date forward. Used both to
// change a student's fee and to renew an expired cycle.
// PRE: StudentID is non-empty; student exists; Fee >= 0
// POST: MonthlyFee = Fee, DueAmount = Fee, PaymentStatus = DUE,
// NextDueDate set (defaults to now + 30 days)
func ExecuteAssignFee(ctx context.Context, input AssignFeeInput, deps AssignFeeDeps) (student.Student, error) {
	if input.StudentID == "" {
		return student.Student{}, errors.New("student ID is required")
	}

	s, err := deps.StudentStore.GetByID(ctx, input.StudentID)
	if err != nil {
		return student.Student{}, err
	}

	nextDue := input.NextDueDate
	if nextDue.IsZero() {
		nextDue = deps.Now().Add(RenewalPeriod)
	}

	if err := s.AssignFee(input.Fee, nextDue); err != nil {
		return student.Student{}, err
	}

	saved, err := deps.StudentStore.Save(ctx, s)
	if err != nil {
		return student.Student{}, err
	}

	slog.Info("payment_event", "event", "fee_assigned", "student_id", saved.ID, "fee", input.Fee, "next_due", nextDue.Format(student.DateLayout))
	return saved, nil
}

package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gymdesk/internal/adapters/email"
	"gymdesk/internal/domain/paymentlog"
	"gymdesk/internal/domain/student"
)

// SettlementStore defines the store interface needed by payment approval.
// SaveSettlement persists the student's PAID state and the appended payment
// log atomically.
type SettlementStore interface {
	GetByID(ctx context.Context, id string) (student.Student, error)
	SaveSettlement(ctx context.Context, s student.Student, log paymentlog.PaymentLog) (student.Student, error)
}

// ErrNothingDue is returned when a payment action targets a student with no balance.
var ErrNothingDue = errors.New("student has no outstanding due")

// --- Mark Payment Pending ---

// MarkPaymentPendingDeps holds dependencies for MarkPaymentPending.
type MarkPaymentPendingDeps struct {
	StudentStore StudentStore
}

// ExecuteMarkPaymentPending records a student's claim of having paid.
// Amounts are untouched; only the admin's approval settles the balance.
// PRE: studentID is non-empty; student exists and has a due amount
// POST: PaymentStatus = PENDING_APPROVAL
func ExecuteMarkPaymentPending(ctx context.Context, studentID string, deps MarkPaymentPendingDeps) (student.Student, error) {
	if studentID == "" {
		return student.Student{}, errors.New("student ID is required")
	}

	s, err := deps.StudentStore.GetByID(ctx, studentID)
	if err != nil {
		return student.Student{}, err
	}

	if !s.HasDue() {
		return student.Student{}, ErrNothingDue
	}

	s.MarkPaymentPending()

	saved, err := deps.StudentStore.Save(ctx, s)
	if err != nil {
		return student.Student{}, err
	}

	slog.Info("payment_event", "event", "payment_pending", "student_id", saved.ID, "due", saved.DueAmount)
	return saved, nil
}

// --- Approve Payment ---

// ApprovePaymentInput carries input for the approve payment orchestrator.
type ApprovePaymentInput struct {
	StudentID string
	// Amount is optional; zero defaults to the student's current due amount.
	Amount int
}

// ApprovePaymentDeps holds dependencies for ApprovePayment.
type ApprovePaymentDeps struct {
	Students   SettlementStore
	GenerateID func() string
	Now        func() time.Time

	// EmailSender and NotifyTo configure the receipt notification.
	// A nil sender or empty address skips it.
	EmailSender email.Sender
	NotifyTo    string
}

// ExecuteApprovePayment settles a student's balance and appends a payment
// log entry in the same transaction. A receipt email to the gym owner is
// best-effort: a send failure is logged and does not fail the approval.
// PRE: StudentID is non-empty; student exists with a positive due or a
// positive explicit Amount
// POST: PaymentStatus = PAID, DueAmount = 0, PaidAmount = settled amount,
// LastPaymentDate = now; one payment log row appended
func ExecuteApprovePayment(ctx context.Context, input ApprovePaymentInput, deps ApprovePaymentDeps) (student.Student, error) {
	if input.StudentID == "" {
		return student.Student{}, errors.New("student ID is required")
	}

	s, err := deps.Students.GetByID(ctx, input.StudentID)
	if err != nil {
		return student.Student{}, err
	}

	amount := input.Amount
	if amount == 0 {
		amount = s.DueAmount
	}

	now := deps.Now()
	if err := s.Settle(amount, now); err != nil {
		return student.Student{}, err
	}

	log := paymentlog.PaymentLog{
		ID:          deps.GenerateID(),
		StudentID:   s.ID,
		StudentName: s.Name,
		Amount:      amount,
		Date:        now,
		MonthKey:    paymentlog.MonthKey(now),
		CreatedAt:   now,
	}
	if err := log.Validate(); err != nil {
		return student.Student{}, err
	}

	saved, err := deps.Students.SaveSettlement(ctx, s, log)
	if err != nil {
		return student.Student{}, err
	}

	slog.Info("payment_event", "event", "payment_approved", "student_id", saved.ID, "amount", amount, "month", log.MonthKey)

	if deps.EmailSender != nil && deps.NotifyTo != "" {
		subject, body := email.ComposeReceipt(email.ReceiptRequest{
			StudentName: s.Name,
			Amount:      amount,
			PaidOn:      now,
			MonthKey:    log.MonthKey,
		})
		if _, err := deps.EmailSender.Send(ctx, email.SendRequest{
			To:      []string{deps.NotifyTo},
			Subject: subject,
			HTML:    body,
		}); err != nil {
			slog.Error("payment_event", "event", "receipt_email_failed", "student_id", saved.ID, "error", err)
		}
	}

	return saved, nil
}

package orchestrators

import (
	"context"
	"testing"
	"time"

	"gymdesk/internal/domain/student"
)

// TestExecuteAssignFee tests renewing a payment cycle with an explicit due date.
func TestExecuteAssignFee(t *testing.T) {
	store := newMockStudentStore()
	s := seedStudent(store)
	s.PaymentStatus = student.StatusPaid
	s.DueAmount = 0
	store.students[s.ID] = s

	nextDue := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	got, err := ExecuteAssignFee(context.Background(), AssignFeeInput{
		StudentID:   "stu-001",
		Fee:         1400,
		NextDueDate: nextDue,
	}, AssignFeeDeps{StudentStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MonthlyFee != 1400 || got.DueAmount != 1400 {
		t.Errorf("expected fee and due 1400, got fee=%d due=%d", got.MonthlyFee, got.DueAmount)
	}
	if got.PaymentStatus != student.StatusDue {
		t.Errorf("expected status DUE, got %s", got.PaymentStatus)
	}
	if !got.NextDueDate.Equal(nextDue) {
		t.Errorf("expected next due %v, got %v", nextDue, got.NextDueDate)
	}
}

// TestExecuteAssignFee_DefaultNextDue tests the 30-day default renewal window.
func TestExecuteAssignFee_DefaultNextDue(t *testing.T) {
	store := newMockStudentStore()
	seedStudent(store)

	got, err := ExecuteAssignFee(context.Background(), AssignFeeInput{
		StudentID: "stu-001",
		Fee:       1200,
	}, AssignFeeDeps{StudentStore: store, Now: fixedNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := fixedTime.Add(RenewalPeriod)
	if !got.NextDueDate.Equal(want) {
		t.Errorf("expected next due %v, got %v", want, got.NextDueDate)
	}
}

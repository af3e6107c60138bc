package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gymdesk/internal/domain/student"
)

// RenewalPeriod is how far the next due date moves on registration and renewal.
const RenewalPeriod = 30 * 24 * time.Hour

// StudentStore defines the interface for student persistence.
// Save is compare-and-swap on the record's version; the returned Student
// carries the new version token.
type StudentStore interface {
	GetByID(ctx context.Context, id string) (student.Student, error)
	Save(ctx context.Context, s student.Student) (student.Student, error)
	Delete(ctx context.Context, id string) error
}

// RegisterStudentInput carries input for the orchestrator.
type RegisterStudentInput struct {
	Name        string
	Phone       string
	MonthlyFee  int
	PlanDetails string
}

// RegisterStudentDeps holds dependencies for RegisterStudent.
type RegisterStudentDeps struct {
	StudentStore StudentStore
	GenerateID   func() string
	GenerateCode func() string
	Now          func() time.Time
}

// ExecuteRegisterStudent enrolls a new student.
// PRE: Non-empty name, MonthlyFee >= 0
// POST: Student created with status DUE, DueAmount = MonthlyFee,
// JoinDate = now, NextDueDate = now + 30 days, and a fresh access code
func ExecuteRegisterStudent(ctx context.Context, input RegisterStudentInput, deps RegisterStudentDeps) (student.Student, error) {
	if input.Name == "" {
		return student.Student{}, student.ErrEmptyName
	}
	if input.MonthlyFee < 0 {
		return student.Student{}, student.ErrNegativeFee
	}

	now := deps.Now()
	s := student.Student{
		ID:            deps.GenerateID(),
		Name:          input.Name,
		Phone:         input.Phone,
		AccessCode:    deps.GenerateCode(),
		MonthlyFee:    input.MonthlyFee,
		DueAmount:     input.MonthlyFee,
		PaymentStatus: student.StatusDue,
		JoinDate:      now,
		NextDueDate:   now.Add(RenewalPeriod),
		Attendance:    make(map[string]string),
		PlanDetails:   input.PlanDetails,
	}

	if err := s.Validate(); err != nil {
		return student.Student{}, err
	}

	saved, err := deps.StudentStore.Save(ctx, s)
	if err != nil {
		return student.Student{}, err
	}

	slog.Info("student_event", "event", "student_registered", "student_id", saved.ID, "fee", saved.MonthlyFee)
	return saved, nil
}

// RandomAccessCode generates a 6-digit access code. Codes are not checked
// for uniqueness; login disambiguates collisions by name.
func RandomAccessCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

// --- Update Student ---

// UpdateStudentInput carries input for the edit student orchestrator.
// Partial-update semantics:
//   - Name, Phone, PlanDetails: only updated when non-empty (cannot be cleared).
//   - MonthlyFee, DueAmount, PaymentStatus, NextDueDate: updated when the
//     matching Set flag is true, so zero values can be written deliberately.
type UpdateStudentInput struct {
	StudentID string

	Name        string
	Phone       string
	PlanDetails string

	MonthlyFee    int
	SetMonthlyFee bool

	DueAmount    int
	SetDueAmount bool

	PaidAmount    int
	SetPaidAmount bool

	PaymentStatus    string
	SetPaymentStatus bool

	NextDueDate    time.Time
	SetNextDueDate bool
}

// UpdateStudentDeps holds dependencies for UpdateStudent.
type UpdateStudentDeps struct {
	StudentStore StudentStore
}

// ExecuteUpdateStudent applies an admin edit to a student record.
// PRE: StudentID is non-empty; student exists
// POST: Fields updated; the edit is rejected if it would break a domain
// invariant (e.g. a PAID student carrying a due amount)
func ExecuteUpdateStudent(ctx context.Context, input UpdateStudentInput, deps UpdateStudentDeps) (student.Student, error) {
	if input.StudentID == "" {
		return student.Student{}, errors.New("student ID is required")
	}

	s, err := deps.StudentStore.GetByID(ctx, input.StudentID)
	if err != nil {
		return student.Student{}, err
	}

	if input.Name != "" {
		s.Name = input.Name
	}
	if input.Phone != "" {
		s.Phone = input.Phone
	}
	if input.PlanDetails != "" {
		s.PlanDetails = input.PlanDetails
	}
	if input.SetMonthlyFee {
		s.MonthlyFee = input.MonthlyFee
	}
	if input.SetDueAmount {
		s.DueAmount = input.DueAmount
	}
	if input.SetPaidAmount {
		s.PaidAmount = input.PaidAmount
	}
	if input.SetPaymentStatus {
		s.PaymentStatus = input.PaymentStatus
	}
	if input.SetNextDueDate {
		s.NextDueDate = input.NextDueDate
	}

	if err := s.Validate(); err != nil {
		return student.Student{}, err
	}

	saved, err := deps.StudentStore.Save(ctx, s)
	if err != nil {
		return student.Student{}, err
	}

	slog.Info("student_event", "event", "student_updated", "student_id", saved.ID)
	return saved, nil
}

// --- Delete Student ---

// DeleteStudentDeps holds dependencies for DeleteStudent.
type DeleteStudentDeps struct {
	StudentStore StudentStore
}

// ExecuteDeleteStudent removes a student record. Payment logs are kept;
// they are the financial record and carry their own name snapshot.
// PRE: studentID is non-empty; student exists
// POST: Student deleted
func ExecuteDeleteStudent(ctx context.Context, studentID string, deps DeleteStudentDeps) error {
	if studentID == "" {
		return errors.New("student ID is required")
	}

	if _, err := deps.StudentStore.GetByID(ctx, studentID); err != nil {
		return err
	}

	if err := deps.StudentStore.Delete(ctx, studentID); err != nil {
		return err
	}

	slog.Info("student_event", "event", "student_deleted", "student_id", studentID)
	return nil
}

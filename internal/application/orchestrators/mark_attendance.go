package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymdesk/internal/domain/student"
)

// MarkAttendanceInput carries input for the attendance orchestrator.
type MarkAttendanceInput struct {
	StudentID string
	Date      string // YYYY-MM-DD
	Mark      string // P or A
}

// MarkAttendanceDeps holds dependencies for MarkAttendance.
type MarkAttendanceDeps struct {
	StudentStore StudentStore
}

// ExecuteMarkAttendance records a presence mark for one student on one day.
// Re-marking the same day overwrites the previous mark.
// PRE: StudentID non-empty; Date is YYYY-MM-DD; Mark is P or A
// POST: Attendance[Date] = Mark
func ExecuteMarkAttendance(ctx context.Context, input MarkAttendanceInput, deps MarkAttendanceDeps) (student.Student, error) {
	if input.StudentID == "" {
		return student.Student{}, errors.New("student ID is required")
	}

	s, err := deps.StudentStore.GetByID(ctx, input.StudentID)
	if err != nil {
		return student.Student{}, err
	}

	if err := s.MarkAttendance(input.Date, input.Mark); err != nil {
		return student.Student{}, err
	}

	saved, err := deps.StudentStore.Save(ctx, s)
	if err != nil {
		return student.Student{}, err
	}

	slog.Info("attendance_event", "event", "attendance_marked", "student_id", saved.ID, "date", input.Date, "mark", input.Mark)
	return saved, nil
}

package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gymdesk/internal/domain/progress"
)

// ErrProgressEntryNotFound is returned when a referenced log entry does not exist.
var ErrProgressEntryNotFound = errors.New("progress log entry not found")

// --- Add Progress Entry ---

// AddProgressEntryInput carries input for the add progress entry orchestrator.
type AddProgressEntryInput struct {
	StudentID string
	Date      string // YYYY-MM-DD
	WeightKg  float64
	HeightCm  float64
}

// AddProgressEntryDeps holds dependencies for AddProgressEntry.
type AddProgressEntryDeps struct {
	StudentStore StudentStore
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteAddProgressEntry appends a weight/height measurement to a
// student's progress history.
// PRE: StudentID non-empty; student exists; measurements plausible
// POST: Entry appended with a generated ID
func ExecuteAddProgressEntry(ctx context.Context, input AddProgressEntryInput, deps AddProgressEntryDeps) (progress.Entry, error) {
	if input.StudentID == "" {
		return progress.Entry{}, errors.New("student ID is required")
	}

	s, err := deps.StudentStore.GetByID(ctx, input.StudentID)
	if err != nil {
		return progress.Entry{}, err
	}

	entry := progress.Entry{
		ID:        deps.GenerateID(),
		Date:      input.Date,
		WeightKg:  input.WeightKg,
		HeightCm:  input.HeightCm,
		CreatedAt: deps.Now(),
	}
	if err := entry.Validate(); err != nil {
		return progress.Entry{}, err
	}

	s.ProgressLogs = append(s.ProgressLogs, entry)

	if _, err := deps.StudentStore.Save(ctx, s); err != nil {
		return progress.Entry{}, err
	}

	slog.Info("progress_event", "event", "progress_added", "student_id", s.ID, "entry_id", entry.ID, "date", entry.Date)
	return entry, nil
}

// --- Update Progress Entry ---

// UpdateProgressEntryInput carries input for the update progress entry orchestrator.
type UpdateProgressEntryInput struct {
	StudentID string
	EntryID   string
	Date      string
	WeightKg  float64
	HeightCm  float64
}

// UpdateProgressEntryDeps holds dependencies for UpdateProgressEntry.
type UpdateProgressEntryDeps struct {
	StudentStore StudentStore
}

// ExecuteUpdateProgressEntry replaces the measurements of an existing entry.
// PRE: StudentID and EntryID non-empty; entry exists on the student
// POST: Entry fields replaced; ID and CreatedAt kept
func ExecuteUpdateProgressEntry(ctx context.Context, input UpdateProgressEntryInput, deps UpdateProgressEntryDeps) (progress.Entry, error) {
	if input.StudentID == "" {
		return progress.Entry{}, errors.New("student ID is required")
	}
	if input.EntryID == "" {
		return progress.Entry{}, errors.New("entry ID is required")
	}

	s, err := deps.StudentStore.GetByID(ctx, input.StudentID)
	if err != nil {
		return progress.Entry{}, err
	}

	idx := findEntry(s.ProgressLogs, input.EntryID)
	if idx < 0 {
		return progress.Entry{}, ErrProgressEntryNotFound
	}

	entry := s.ProgressLogs[idx]
	entry.Date = input.Date
	entry.WeightKg = input.WeightKg
	entry.HeightCm = input.HeightCm
	if err := entry.Validate(); err != nil {
		return progress.Entry{}, err
	}
	s.ProgressLogs[idx] = entry

	if _, err := deps.StudentStore.Save(ctx, s); err != nil {
		return progress.Entry{}, err
	}

	slog.Info("progress_event", "event", "progress_updated", "student_id", s.ID, "entry_id", entry.ID)
	return entry, nil
}

// --- Delete Progress Entry ---

// DeleteProgressEntryInput carries input for the delete progress entry orchestrator.
type DeleteProgressEntryInput struct {
	StudentID string
	EntryID   string
}

// DeleteProgressEntryDeps holds dependencies for DeleteProgressEntry.
type DeleteProgressEntryDeps struct {
	StudentStore StudentStore
}

// ExecuteDeleteProgressEntry removes one measurement from a student's history.
// PRE: StudentID and EntryID non-empty; entry exists on the student
// POST: Entry removed; remaining entries keep their order
func ExecuteDeleteProgressEntry(ctx context.Context, input DeleteProgressEntryInput, deps DeleteProgressEntryDeps) error {
	if input.StudentID == "" {
		return errors.New("student ID is required")
	}
	if input.EntryID == "" {
		return errors.New("entry ID is required")
	}

	s, err := deps.StudentStore.GetByID(ctx, input.StudentID)
	if err != nil {
		return err
	}

	idx := findEntry(s.ProgressLogs, input.EntryID)
	if idx < 0 {
		return ErrProgressEntryNotFound
	}
	s.ProgressLogs = append(s.ProgressLogs[:idx], s.ProgressLogs[idx+1:]...)

	if _, err := deps.StudentStore.Save(ctx, s); err != nil {
		return err
	}

	slog.Info("progress_event", "event", "progress_deleted", "student_id", s.ID, "entry_id", input.EntryID)
	return nil
}

func findEntry(entries []progress.Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

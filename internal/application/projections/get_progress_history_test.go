package projections

import (
	"context"
	"testing"

	"gymdesk/internal/domain/progress"
	"gymdesk/internal/domain/student"
)

// TestQueryGetProgressHistory tests the derived BMI history view.
func TestQueryGetProgressHistory(t *testing.T) {
	store := &mockStudentStore{students: []student.Student{
		{ID: "s1", Name: "Priya", ProgressLogs: []progress.Entry{
			{ID: "e1", Date: "2026-01-05", WeightKg: 75.5, HeightCm: 175},
			{ID: "e2", Date: "2026-03-01", WeightKg: 70, HeightCm: 175},
		}},
	}}

	result, err := QueryGetProgressHistory(context.Background(), GetProgressHistoryQuery{
		StudentID: "s1",
	}, GetProgressHistoryDeps{StudentStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Entries))
	}
	// Newest first.
	if result.Entries[0].ID != "e2" {
		t.Errorf("expected e2 first, got %s", result.Entries[0].ID)
	}
	if result.Entries[0].BMI != 22.9 {
		t.Errorf("expected BMI 22.9, got %v", result.Entries[0].BMI)
	}
	if result.Entries[0].BMIClass != "Normal" {
		t.Errorf("expected class Normal, got %s", result.Entries[0].BMIClass)
	}
	if result.WeightChange != -5.5 {
		t.Errorf("expected weight change -5.5, got %v", result.WeightChange)
	}
}

// TestQueryGetProgressHistory_Empty tests a student with no measurements.
func TestQueryGetProgressHistory_Empty(t *testing.T) {
	store := &mockStudentStore{students: []student.Student{{ID: "s1", Name: "Priya"}}}

	result, err := QueryGetProgressHistory(context.Background(), GetProgressHistoryQuery{
		StudentID: "s1",
	}, GetProgressHistoryDeps{StudentStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 0 || result.WeightChange != 0 {
		t.Errorf("expected empty history, got %+v", result)
	}
}

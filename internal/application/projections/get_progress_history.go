package projections

import (
	"context"
	"sort"
	"time"

	"gymdesk/internal/domain/progress"
)

// ProgressRow is one measurement with its derived body-mass figures.
type ProgressRow struct {
	ID        string
	Date      string // YYYY-MM-DD
	WeightKg  float64
	HeightCm  float64
	BMI       float64
	BMIClass  string
	CreatedAt time.Time
}

// GetProgressHistoryQuery carries query parameters.
type GetProgressHistoryQuery struct {
	StudentID string
}

// GetProgressHistoryResult carries the query result.
type GetProgressHistoryResult struct {
	Entries []ProgressRow
	// WeightChange is newest weight minus oldest, zero with fewer than two entries.
	WeightChange float64
}

// GetProgressHistoryDeps holds dependencies for GetProgressHistory.
type GetProgressHistoryDeps struct {
	StudentStore StudentStore
}

// QueryGetProgressHistory retrieves a student's measurements newest-first
// with BMI and its classification computed per entry.
// PRE: StudentID non-empty; student exists
// POST: Entries sorted by date descending; WeightChange spans the full history
func QueryGetProgressHistory(ctx context.Context, query GetProgressHistoryQuery, deps GetProgressHistoryDeps) (GetProgressHistoryResult, error) {
	s, err := deps.StudentStore.GetByID(ctx, query.StudentID)
	if err != nil {
		return GetProgressHistoryResult{}, err
	}

	result := GetProgressHistoryResult{
		WeightChange: progress.WeightChange(s.ProgressLogs),
	}
	for i := range s.ProgressLogs {
		e := s.ProgressLogs[i]
		bmi := e.BMI()
		result.Entries = append(result.Entries, ProgressRow{
			ID:        e.ID,
			Date:      e.Date,
			WeightKg:  e.WeightKg,
			HeightCm:  e.HeightCm,
			BMI:       bmi,
			BMIClass:  progress.Classify(bmi),
			CreatedAt: e.CreatedAt,
		})
	}
	sort.Slice(result.Entries, func(i, j int) bool {
		return result.Entries[i].Date > result.Entries[j].Date
	})

	return result, nil
}

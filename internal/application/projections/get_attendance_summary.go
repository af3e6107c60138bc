package projections

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	storageStudent "gymdesk/internal/adapters/storage/student"
	"gymdesk/internal/domain/student"
)

// --- Admin day sheet ---

// GetAttendanceSheetQuery carries query parameters.
type GetAttendanceSheetQuery struct {
	// Date selects the day to mark; empty means today.
	Date string // YYYY-MM-DD
}

// SheetRow is one student on the marking sheet for a day.
type SheetRow struct {
	StudentID string
	Name      string
	Mark      string // P, A, or empty when unmarked
	Marked    bool
}

// GetAttendanceSheetResult carries the query result.
type GetAttendanceSheetResult struct {
	Date string
	Rows []SheetRow
}

// GetAttendanceSheetDeps holds dependencies for GetAttendanceSheet.
type GetAttendanceSheetDeps struct {
	StudentStore StudentStore
	Now          func() time.Time
}

// QueryGetAttendanceSheet builds the per-day marking sheet across all
// students. Unmarked students appear with an empty mark, distinct from an
// explicit absence.
// POST: Rows are sorted by name; Date defaults to today
func QueryGetAttendanceSheet(ctx context.Context, query GetAttendanceSheetQuery, deps GetAttendanceSheetDeps) (GetAttendanceSheetResult, error) {
	date := query.Date
	if date == "" {
		date = deps.Now().Format(student.DateLayout)
	}
	if _, err := time.Parse(student.DateLayout, date); err != nil {
		return GetAttendanceSheetResult{}, student.ErrInvalidDate
	}

	students, err := deps.StudentStore.List(ctx, storageStudent.ListFilter{})
	if err != nil {
		return GetAttendanceSheetResult{}, err
	}

	result := GetAttendanceSheetResult{Date: date}
	for _, s := range students {
		mark, marked := s.AttendanceOn(date)
		result.Rows = append(result.Rows, SheetRow{
			StudentID: s.ID,
			Name:      s.Name,
			Mark:      mark,
			Marked:    marked,
		})
	}
	sort.Slice(result.Rows, func(i, j int) bool {
		return strings.ToLower(result.Rows[i].Name) < strings.ToLower(result.Rows[j].Name)
	})

	return result, nil
}

// --- Per-student month summary ---

// GetAttendanceSummaryQuery carries query parameters.
type GetAttendanceSummaryQuery struct {
	StudentID string
	// MonthKey selects the month to summarise; empty means the current month.
	MonthKey string // YYYY-MM
}

// DayMark is one marked day within the summarised month.
type DayMark struct {
	Date string // YYYY-MM-DD
	Mark string // P or A
}

// GetAttendanceSummaryResult carries the query result.
type GetAttendanceSummaryResult struct {
	MonthKey     string
	Present      int
	Absent       int
	Percentage   int // round(100 * present / marked); 0 when nothing marked
	Days         []DayMark
	MonthOptions []string // last 12 months, newest first
}

// GetAttendanceSummaryDeps holds dependencies for GetAttendanceSummary.
type GetAttendanceSummaryDeps struct {
	StudentStore StudentStore
	Now          func() time.Time
}

// QueryGetAttendanceSummary summarises one student's attendance for a month.
// Only marked days count toward the percentage; unmarked days are ignored.
// PRE: StudentID non-empty; student exists
// POST: Days are sorted newest first; Percentage is 0 when the month
// has no marked days
func QueryGetAttendanceSummary(ctx context.Context, query GetAttendanceSummaryQuery, deps GetAttendanceSummaryDeps) (GetAttendanceSummaryResult, error) {
	now := deps.Now()
	monthKey := query.MonthKey
	if monthKey == "" {
		monthKey = now.Format("2006-01")
	}

	s, err := deps.StudentStore.GetByID(ctx, query.StudentID)
	if err != nil {
		return GetAttendanceSummaryResult{}, err
	}

	result := GetAttendanceSummaryResult{MonthKey: monthKey}
	for date, mark := range s.Attendance {
		if !strings.HasPrefix(date, monthKey+"-") {
			continue
		}
		switch mark {
		case student.MarkPresent:
			result.Present++
		case student.MarkAbsent:
			result.Absent++
		default:
			continue
		}
		result.Days = append(result.Days, DayMark{Date: date, Mark: mark})
	}
	sort.Slice(result.Days, func(i, j int) bool { return result.Days[i].Date > result.Days[j].Date })

	result.Percentage = percentage(result.Present, result.Present+result.Absent)

	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for i := 0; i < 12; i++ {
		result.MonthOptions = append(result.MonthOptions, anchor.AddDate(0, -i, 0).Format("2006-01"))
	}

	return result, nil
}

func percentage(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(whole)))
}

package projections

import (
	"context"
	"time"

	storageStudent "gymdesk/internal/adapters/storage/student"
	"gymdesk/internal/domain/paymentlog"
	"gymdesk/internal/domain/student"
)

// DayCount is a per-day presence count for the trend strip.
type DayCount struct {
	Date    string // YYYY-MM-DD
	Present int
}

// GetDashboardResult carries the admin dashboard metrics.
type GetDashboardResult struct {
	TotalStudents  int
	PresentToday   int
	TotalDue       int // sum of outstanding due amounts
	DueCount       int // students with status DUE or PENDING_APPROVAL
	PendingCount   int // payments awaiting approval
	MonthCollected int // sum of payment logs in the current month
	CollectedToday int // sum of payment logs dated today
	LastSevenDays  []DayCount
}

// GetDashboardDeps holds dependencies for GetDashboard.
type GetDashboardDeps struct {
	StudentStore    StudentStore
	PaymentLogStore PaymentLogStore
	Now             func() time.Time
}

// QueryGetDashboard computes the admin landing page metrics in one pass
// over students and payment logs.
// POST: Counts and sums reflect the stores at query time; LastSevenDays is
// oldest-first and always has seven entries
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps) (GetDashboardResult, error) {
	now := deps.Now()
	today := now.Format(student.DateLayout)
	monthKey := paymentlog.MonthKey(now)

	students, err := deps.StudentStore.List(ctx, storageStudent.ListFilter{})
	if err != nil {
		return GetDashboardResult{}, err
	}

	result := GetDashboardResult{TotalStudents: len(students)}

	// Seed the seven-day window oldest-first so missing days still appear as zero.
	dayIndex := make(map[string]int, 7)
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i).Format(student.DateLayout)
		dayIndex[date] = len(result.LastSevenDays)
		result.LastSevenDays = append(result.LastSevenDays, DayCount{Date: date})
	}

	for _, s := range students {
		result.TotalDue += s.DueAmount
		if s.PaymentStatus == student.StatusDue || s.PaymentStatus == student.StatusPending {
			result.DueCount++
		}
		if s.IsPending() {
			result.PendingCount++
		}
		for date, mark := range s.Attendance {
			if mark != student.MarkPresent {
				continue
			}
			if date == today {
				result.PresentToday++
			}
			if idx, ok := dayIndex[date]; ok {
				result.LastSevenDays[idx].Present++
			}
		}
	}

	logs, err := deps.PaymentLogStore.List(ctx)
	if err != nil {
		return GetDashboardResult{}, err
	}
	for _, log := range logs {
		if log.MonthKey == monthKey {
			result.MonthCollected += log.Amount
		}
		if log.Date.Format(student.DateLayout) == today {
			result.CollectedToday += log.Amount
		}
	}

	return result, nil
}

package projections

import (
	"context"
	"time"

	"gymdesk/internal/application/links"
	"gymdesk/internal/domain/announcement"
	"gymdesk/internal/domain/student"
)

// PayInfo is everything the pay panel needs to collect a due amount.
type PayInfo struct {
	UPIID            string
	PayString        string // upi://pay deep link
	QRImageURL       string
	ConfirmationLink string // wa.me message to the admin, empty when no admin phone is set
}

// GetStudentDashboardQuery carries query parameters.
type GetStudentDashboardQuery struct {
	StudentID string
}

// GetStudentDashboardResult carries the student self-service view.
type GetStudentDashboardResult struct {
	Student       student.Student
	DueToday      bool // due amount outstanding and the next due date has arrived
	OverallPct    int  // present share of all marked days
	MonthPct      int  // present share of marked days in the current month
	PayInfo       PayInfo
	Announcements []announcement.Announcement // newest first
}

// GetStudentDashboardDeps holds dependencies for GetStudentDashboard.
type GetStudentDashboardDeps struct {
	StudentStore      StudentStore
	AnnouncementStore AnnouncementStore
	SettingsStore     SettingsStore
	Now               func() time.Time
}

// QueryGetStudentDashboard assembles the logged-in student's home view:
// balance and renewal state, attendance percentages, the UPI pay panel, and
// the announcement feed.
// PRE: StudentID non-empty; student exists
// POST: PayInfo is populated only when the student owes and a UPI ID is
// configured; attendance percentages count marked days only
func QueryGetStudentDashboard(ctx context.Context, query GetStudentDashboardQuery, deps GetStudentDashboardDeps) (GetStudentDashboardResult, error) {
	s, err := deps.StudentStore.GetByID(ctx, query.StudentID)
	if err != nil {
		return GetStudentDashboardResult{}, err
	}

	now := deps.Now()
	result := GetStudentDashboardResult{Student: s}

	if s.HasDue() && !s.NextDueDate.IsZero() {
		today := now.Format(student.DateLayout)
		result.DueToday = s.NextDueDate.Format(student.DateLayout) <= today
	}

	monthPrefix := now.Format("2006-01") + "-"
	var present, marked, monthPresent, monthMarked int
	for date, mark := range s.Attendance {
		if mark != student.MarkPresent && mark != student.MarkAbsent {
			continue
		}
		marked++
		inMonth := len(date) >= len(monthPrefix) && date[:len(monthPrefix)] == monthPrefix
		if inMonth {
			monthMarked++
		}
		if mark == student.MarkPresent {
			present++
			if inMonth {
				monthPresent++
			}
		}
	}
	result.OverallPct = percentage(present, marked)
	result.MonthPct = percentage(monthPresent, monthMarked)

	if s.HasDue() {
		payment, err := deps.SettingsStore.GetPayment(ctx)
		if err != nil {
			return GetStudentDashboardResult{}, err
		}
		if payment.UPIID != "" {
			payString := links.UPIPayString(payment.UPIID, s.DueAmount)
			result.PayInfo = PayInfo{
				UPIID:      payment.UPIID,
				PayString:  payString,
				QRImageURL: links.QRImageURL(payString),
			}
			if payment.AdminPhone != "" {
				result.PayInfo.ConfirmationLink = links.PaymentConfirmation(payment.AdminPhone, s.Name, s.AccessCode, s.DueAmount)
			}
		}
	}

	announcements, err := deps.AnnouncementStore.List(ctx)
	if err != nil {
		return GetStudentDashboardResult{}, err
	}
	result.Announcements = announcements

	return result, nil
}

package web

import (
	"net/http"
	"time"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	studentDomain "gymdesk/internal/domain/student"
)

// Student self-service handlers. RequireStudent guarantees a student
// session, so the ID always comes from the session, never the request.

type studentDashboardResponse struct {
	Student       studentDomain.Student
	DueToday      bool
	OverallPct    int
	MonthPct      int
	PayInfo       projections.PayInfo
	Announcements []announcementView
}

func handleStudentDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	result, err := projections.QueryGetStudentDashboard(r.Context(), projections.GetStudentDashboardQuery{
		StudentID: sess.StudentID,
	}, projections.GetStudentDashboardDeps{
		StudentStore:      stores.StudentStore,
		AnnouncementStore: stores.AnnouncementStore,
		SettingsStore:     stores.SettingsStore,
		Now:               timeNow,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := studentDashboardResponse{
		Student:       result.Student,
		DueToday:      result.DueToday,
		OverallPct:    result.OverallPct,
		MonthPct:      result.MonthPct,
		PayInfo:       result.PayInfo,
		Announcements: make([]announcementView, 0, len(result.Announcements)),
	}
	for _, a := range result.Announcements {
		resp.Announcements = append(resp.Announcements, toAnnouncementView(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

func handleStudentAttendance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	result, err := projections.QueryGetAttendanceSummary(r.Context(), projections.GetAttendanceSummaryQuery{
		StudentID: sess.StudentID,
		MonthKey:  r.URL.Query().Get("month"),
	}, projections.GetAttendanceSummaryDeps{
		StudentStore: stores.StudentStore,
		Now:          timeNow,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func handleStudentProgress(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	result, err := projections.QueryGetProgressHistory(r.Context(), projections.GetProgressHistoryQuery{
		StudentID: sess.StudentID,
	}, projections.GetProgressHistoryDeps{
		StudentStore: stores.StudentStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleStudentPay records the student's claim of having paid. The balance
// stays untouched until the admin approves.
func handleStudentPay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	s, err := orchestrators.ExecuteMarkPaymentPending(r.Context(), sess.StudentID, orchestrators.MarkPaymentPendingDeps{
		StudentStore: stores.StudentStore,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"PaymentStatus": s.PaymentStatus,
		"ClaimedAt":     timeNow().Format(time.RFC3339),
	})
}

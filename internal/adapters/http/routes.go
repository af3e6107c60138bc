package web

import (
	"net/http"

	"gymdesk/internal/adapters/http/middleware"
)

func registerRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("/api/login/admin", handleAdminLogin)
	mux.HandleFunc("/api/login/student", handleStudentLogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.HandleFunc("/api/session", handleSession)

	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(h)
	}
	mux.Handle("/api/admin/dashboard", admin(handleDashboard))
	mux.Handle("/api/admin/students", admin(handleStudents))
	mux.Handle("/api/admin/student", admin(handleStudent))
	mux.Handle("/api/admin/student/fee", admin(handleAssignFee))
	mux.Handle("/api/admin/payments", admin(handlePaymentHistory))
	mux.Handle("/api/admin/payments/approve", admin(handleApprovePayment))
	mux.Handle("/api/admin/attendance", admin(handleAttendance))
	mux.Handle("/api/admin/attendance/summary", admin(handleAttendanceSummary))
	mux.Handle("/api/admin/progress", admin(handleProgress))
	mux.Handle("/api/admin/announcements", admin(handleAnnouncements))
	mux.Handle("/api/admin/settings/payment", admin(handlePaymentSettings))
	mux.Handle("/api/admin/settings/passcode", admin(handleChangePasscode))
	mux.Handle("/api/admin/perf", admin(handlePerfSnapshot))

	studentOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireStudent(h)
	}
	mux.Handle("/api/student/dashboard", studentOnly(handleStudentDashboard))
	mux.Handle("/api/student/attendance", studentOnly(handleStudentAttendance))
	mux.Handle("/api/student/progress", studentOnly(handleStudentProgress))
	mux.Handle("/api/student/pay", studentOnly(handleStudentPay))
}

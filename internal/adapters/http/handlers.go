package web

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/adapters/storage"
	"gymdesk/internal/application/links"
	"gymdesk/internal/application/listutil"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/application/projections"
	announcementDomain "gymdesk/internal/domain/announcement"
	progressDomain "gymdesk/internal/domain/progress"
	settingsDomain "gymdesk/internal/domain/settings"
	studentDomain "gymdesk/internal/domain/student"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts announcement markdown to HTML. On a render
// failure the raw text is returned untouched; goldmark escapes raw HTML
// so the output is safe either way.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return md
	}
	return buf.String()
}

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err.Error())
	}
}

// badRequestErrors are domain validation failures the client can fix.
var badRequestErrors = []error{
	studentDomain.ErrEmptyName,
	studentDomain.ErrNameTooLong,
	studentDomain.ErrInvalidAccessCode,
	studentDomain.ErrNegativeFee,
	studentDomain.ErrNegativeDue,
	studentDomain.ErrInvalidStatus,
	studentDomain.ErrPaidWithDue,
	studentDomain.ErrNonPositiveAmount,
	studentDomain.ErrInvalidMark,
	studentDomain.ErrInvalidDate,
	announcementDomain.ErrEmptyMessage,
	announcementDomain.ErrMessageTooLong,
	progressDomain.ErrInvalidDate,
	progressDomain.ErrNonPositiveBody,
	progressDomain.ErrUnreasonableBody,
	settingsDomain.ErrEmptyUPIID,
	settingsDomain.ErrEmptyPasscode,
	settingsDomain.ErrShortPasscode,
	orchestrators.ErrNothingDue,
	orchestrators.ErrProgressEntryNotFound,
}

// writeError maps application errors onto HTTP status codes: missing
// records to 404, stale-version saves to 409, validation failures to 400,
// everything else to a generic 500.
func writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, storage.ErrVersionConflict) {
		http.Error(w, "record was modified by someone else, reload and retry", http.StatusConflict)
		return
	}
	for _, known := range badRequestErrors {
		if errors.Is(err, known) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	internalError(w, err)
}

// announcementView is an announcement plus its rendered HTML.
type announcementView struct {
	ID          string
	Message     string
	MessageHTML string
	CreatedAt   time.Time
	PostedAt    time.Time
}

func toAnnouncementView(a announcementDomain.Announcement) announcementView {
	return announcementView{
		ID:          a.ID,
		Message:     a.Message,
		MessageHTML: renderMarkdown(a.Message),
		CreatedAt:   a.CreatedAt,
		PostedAt:    a.PostedAt,
	}
}

// --- Admin: dashboard ---

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardDeps{
		StudentStore:    stores.StudentStore,
		PaymentLogStore: stores.PaymentLogStore,
		Now:             timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// --- Admin: student roster ---

func handleStudents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		params := listutil.ParseListParams(r.URL.Query(), projections.StudentListSortColumns)
		result, err := projections.QueryGetStudentList(r.Context(), projections.GetStudentListQuery{Params: params}, projections.GetStudentListDeps{
			StudentStore: stores.StudentStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)

	case http.MethodPost:
		var req struct {
			Name        string
			Phone       string
			MonthlyFee  int
			PlanDetails string
		}
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		s, err := orchestrators.ExecuteRegisterStudent(r.Context(), orchestrators.RegisterStudentInput{
			Name:        req.Name,
			Phone:       req.Phone,
			MonthlyFee:  req.MonthlyFee,
			PlanDetails: req.PlanDetails,
		}, orchestrators.RegisterStudentDeps{
			StudentStore: stores.StudentStore,
			GenerateID:   generateID,
			GenerateCode: orchestrators.RandomAccessCode,
			Now:          timeNow,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, s)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleStudent(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id parameter", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s, err := stores.StudentStore.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		resp := struct {
			studentDomain.Student
			ReminderLink string // WhatsApp due reminder, empty when nothing is owed
		}{Student: s}
		if s.HasDue() && s.Phone != "" {
			resp.ReminderLink = links.DueReminder(s.Phone, s.Name, s.DueAmount)
		}
		writeJSON(w, http.StatusOK, resp)

	case http.MethodPut:
		var req struct {
			Name          string
			Phone         string
			PlanDetails   string
			MonthlyFee    *int
			DueAmount     *int
			PaidAmount    *int
			PaymentStatus *string
			NextDueDate   *string // YYYY-MM-DD
		}
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		input := orchestrators.UpdateStudentInput{
			StudentID:   id,
			Name:        req.Name,
			Phone:       req.Phone,
			PlanDetails: req.PlanDetails,
		}
		if req.MonthlyFee != nil {
			input.MonthlyFee = *req.MonthlyFee
			input.SetMonthlyFee = true
		}
		if req.DueAmount != nil {
			input.DueAmount = *req.DueAmount
			input.SetDueAmount = true
		}
		if req.PaidAmount != nil {
			input.PaidAmount = *req.PaidAmount
			input.SetPaidAmount = true
		}
		if req.PaymentStatus != nil {
			input.PaymentStatus = *req.PaymentStatus
			input.SetPaymentStatus = true
		}
		if req.NextDueDate != nil {
			due, err := time.Parse(studentDomain.DateLayout, *req.NextDueDate)
			if err != nil {
				http.Error(w, "NextDueDate must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			input.NextDueDate = due
			input.SetNextDueDate = true
		}
		s, err := orchestrators.ExecuteUpdateStudent(r.Context(), input, orchestrators.UpdateStudentDeps{
			StudentStore: stores.StudentStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)

	case http.MethodDelete:
		err := orchestrators.ExecuteDeleteStudent(r.Context(), id, orchestrators.DeleteStudentDeps{
			StudentStore: stores.StudentStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleAssignFee(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		StudentID   string
		Fee         int
		NextDueDate string // YYYY-MM-DD, optional
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.StudentID == "" {
		http.Error(w, "missing StudentID", http.StatusBadRequest)
		return
	}

	input := orchestrators.AssignFeeInput{StudentID: req.StudentID, Fee: req.Fee}
	if req.NextDueDate != "" {
		due, err := time.Parse(studentDomain.DateLayout, req.NextDueDate)
		if err != nil {
			http.Error(w, "NextDueDate must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		input.NextDueDate = due
	}

	s, err := orchestrators.ExecuteAssignFee(r.Context(), input, orchestrators.AssignFeeDeps{
		StudentStore: stores.StudentStore,
		Now:          timeNow,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// --- Admin: payments ---

func handlePaymentHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	result, err := projections.QueryGetPaymentHistory(r.Context(), projections.GetPaymentHistoryQuery{
		MonthKey: r.URL.Query().Get("month"),
	}, projections.GetPaymentHistoryDeps{
		PaymentLogStore: stores.PaymentLogStore,
		Now:             timeNow,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func handleApprovePayment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		StudentID string
		Amount    int // optional; zero settles the full due
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.StudentID == "" {
		http.Error(w, "missing StudentID", http.StatusBadRequest)
		return
	}

	s, err := orchestrators.ExecuteApprovePayment(r.Context(), orchestrators.ApprovePaymentInput{
		StudentID: req.StudentID,
		Amount:    req.Amount,
	}, orchestrators.ApprovePaymentDeps{
		Students:    stores.SettlementStore,
		GenerateID:  generateID,
		Now:         timeNow,
		EmailSender: emailSender,
		NotifyTo:    emailNotifyTo,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// --- Admin: attendance ---

func handleAttendance(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		result, err := projections.QueryGetAttendanceSheet(r.Context(), projections.GetAttendanceSheetQuery{
			Date: r.URL.Query().Get("date"),
		}, projections.GetAttendanceSheetDeps{
			StudentStore: stores.StudentStore,
			Now:          timeNow,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)

	case http.MethodPost:
		var req struct {
			StudentID string
			Date      string // YYYY-MM-DD, optional; empty marks today
			Mark      string // P or A
		}
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.StudentID == "" {
			http.Error(w, "missing StudentID", http.StatusBadRequest)
			return
		}
		date := req.Date
		if date == "" {
			date = timeNow().Format(studentDomain.DateLayout)
		}
		s, err := orchestrators.ExecuteMarkAttendance(r.Context(), orchestrators.MarkAttendanceInput{
			StudentID: req.StudentID,
			Date:      date,
			Mark:      req.Mark,
		}, orchestrators.MarkAttendanceDeps{
			StudentStore: stores.StudentStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id parameter", http.StatusBadRequest)
		return
	}

	result, err := projections.QueryGetAttendanceSummary(r.Context(), projections.GetAttendanceSummaryQuery{
		StudentID: id,
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

// --- Admin: progress logs ---

func handleProgress(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "missing id parameter", http.StatusBadRequest)
			return
		}
		result, err := projections.QueryGetProgressHistory(r.Context(), projections.GetProgressHistoryQuery{
			StudentID: id,
		}, projections.GetProgressHistoryDeps{
			StudentStore: stores.StudentStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)

	case http.MethodPost:
		var req struct {
			StudentID string
			Date      string
			WeightKg  float64
			HeightCm  float64
		}
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.StudentID == "" {
			http.Error(w, "missing StudentID", http.StatusBadRequest)
			return
		}
		entry, err := orchestrators.ExecuteAddProgressEntry(r.Context(), orchestrators.AddProgressEntryInput{
			StudentID: req.StudentID,
			Date:      req.Date,
			WeightKg:  req.WeightKg,
			HeightCm:  req.HeightCm,
		}, orchestrators.AddProgressEntryDeps{
			StudentStore: stores.StudentStore,
			GenerateID:   generateID,
			Now:          timeNow,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)

	case http.MethodPut:
		var req struct {
			StudentID string
			EntryID   string
			Date      string
			WeightKg  float64
			HeightCm  float64
		}
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.StudentID == "" || req.EntryID == "" {
			http.Error(w, "missing StudentID or EntryID", http.StatusBadRequest)
			return
		}
		entry, err := orchestrators.ExecuteUpdateProgressEntry(r.Context(), orchestrators.UpdateProgressEntryInput{
			StudentID: req.StudentID,
			EntryID:   req.EntryID,
			Date:      req.Date,
			WeightKg:  req.WeightKg,
			HeightCm:  req.HeightCm,
		}, orchestrators.UpdateProgressEntryDeps{
			StudentStore: stores.StudentStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entry)

	case http.MethodDelete:
		studentID := r.URL.Query().Get("id")
		entryID := r.URL.Query().Get("entry")
		if studentID == "" || entryID == "" {
			http.Error(w, "missing id or entry parameter", http.StatusBadRequest)
			return
		}
		err := orchestrators.ExecuteDeleteProgressEntry(r.Context(), orchestrators.DeleteProgressEntryInput{
			StudentID: studentID,
			EntryID:   entryID,
		}, orchestrators.DeleteProgressEntryDeps{
			StudentStore: stores.StudentStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// --- Admin: announcements ---

func handleAnnouncements(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := stores.AnnouncementStore.List(r.Context())
		if err != nil {
			internalError(w, err)
			return
		}
		views := make([]announcementView, 0, len(list))
		for _, a := range list {
			views = append(views, toAnnouncementView(a))
		}
		writeJSON(w, http.StatusOK, views)

	case http.MethodPost:
		var req struct {
			Message string
		}
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		a, err := orchestrators.ExecuteCreateAnnouncement(r.Context(), orchestrators.CreateAnnouncementInput{
			Message: req.Message,
		}, orchestrators.CreateAnnouncementDeps{
			AnnouncementStore: stores.AnnouncementStore,
			GenerateID:        generateID,
			Now:               timeNow,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAnnouncementView(a))

	case http.MethodPut:
		var req struct {
			ID      string
			Message string
		}
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if req.ID == "" {
			http.Error(w, "missing ID", http.StatusBadRequest)
			return
		}
		a, err := orchestrators.ExecuteEditAnnouncement(r.Context(), orchestrators.EditAnnouncementInput{
			AnnouncementID: req.ID,
			Message:        req.Message,
		}, orchestrators.EditAnnouncementDeps{
			AnnouncementStore: stores.AnnouncementStore,
			Now:               timeNow,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnnouncementView(a))

	case http.MethodDelete:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "missing id parameter", http.StatusBadRequest)
			return
		}
		err := orchestrators.ExecuteDeleteAnnouncement(r.Context(), id, orchestrators.DeleteAnnouncementDeps{
			AnnouncementStore: stores.AnnouncementStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// --- Admin: settings ---

func handlePaymentSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		value, err := stores.SettingsStore.GetPayment(r.Context())
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, value)

	case http.MethodPut:
		var req struct {
			UPIID      string
			AdminPhone string
		}
		if err := strictDecode(r, &req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		value, err := orchestrators.ExecuteUpdatePaymentSettings(r.Context(), orchestrators.UpdatePaymentSettingsInput{
			UPIID:      req.UPIID,
			AdminPhone: req.AdminPhone,
		}, orchestrators.UpdatePaymentSettingsDeps{
			SettingsStore: stores.SettingsStore,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, value)

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleChangePasscode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		CurrentPasscode string
		NewPasscode     string
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteChangePasscode(r.Context(), orchestrators.ChangePasscodeInput{
		CurrentPasscode: req.CurrentPasscode,
		NewPasscode:     req.NewPasscode,
	}, orchestrators.ChangePasscodeDeps{
		SettingsStore: stores.SettingsStore,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrWrongPasscode) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Admin: perf snapshot ---

func handlePerfSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var since time.Time
	if raw := r.URL.Query().Get("minutes"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil || minutes <= 0 {
			http.Error(w, "minutes must be a positive integer", http.StatusBadRequest)
			return
		}
		since = timeNow().Add(-time.Duration(minutes) * time.Minute)
	}

	topN := 10
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "top must be a positive integer", http.StatusBadRequest)
			return
		}
		topN = n
	}

	writeJSON(w, http.StatusOK, perfCollector.Snapshot(since, topN))
}

// --- Auth ---

func handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Passcode string
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteAdminLogin(r.Context(), req.Passcode, orchestrators.AdminLoginDeps{
		SettingsStore: stores.SettingsStore,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrInvalidPasscode) {
			http.Error(w, "invalid passcode", http.StatusUnauthorized)
			return
		}
		internalError(w, err)
		return
	}

	token, err := sessions.CreateAdmin()
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{"Kind": middleware.KindAdmin})
}

func handleStudentLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		AccessCode string
		Name       string
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := orchestrators.ExecuteStudentLogin(r.Context(), orchestrators.StudentLoginInput{
		AccessCode: req.AccessCode,
		Name:       req.Name,
	}, orchestrators.StudentLoginDeps{
		StudentStore: stores.StudentStore,
	})
	if err != nil {
		switch {
		case errors.Is(err, studentDomain.ErrInvalidAccessCode),
			errors.Is(err, orchestrators.ErrUnknownAccessCode):
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
		case errors.Is(err, orchestrators.ErrNameMismatch):
			http.Error(w, "name does not match the access code", http.StatusUnauthorized)
		default:
			internalError(w, err)
		}
		return
	}

	token, err := sessions.CreateStudent(s.ID, s.Name)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]string{
		"Kind":        middleware.KindStudent,
		"StudentID":   s.ID,
		"StudentName": s.Name,
	})
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if token, ok := middleware.SessionToken(r); ok {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleSession reports who the caller is, for front-end bootstrapping.
func handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"LoggedIn": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"LoggedIn":    true,
		"Kind":        sess.Kind,
		"StudentID":   sess.StudentID,
		"StudentName": sess.StudentName,
	})
}

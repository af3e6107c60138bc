package web

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"gymdesk/internal/adapters/http/middleware"
	studentStore "gymdesk/internal/adapters/storage/student"
	announcementDomain "gymdesk/internal/domain/announcement"
	paymentlogDomain "gymdesk/internal/domain/paymentlog"
	settingsDomain "gymdesk/internal/domain/settings"
	studentDomain "gymdesk/internal/domain/student"
)

// Mock implementations for testing

type mockStudentStore struct {
	students map[string]studentDomain.Student
	logs     []paymentlogDomain.PaymentLog
}

// GetByID implements the student store interface for testing.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (m *mockStudentStore) GetByID(ctx context.Context, id string) (studentDomain.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return studentDomain.Student{}, sql.ErrNoRows
}

// GetByAccessCode implements the student store interface for testing.
// PRE: code is non-empty
// POST: Returns every student carrying the code
func (m *mockStudentStore) GetByAccessCode(ctx context.Context, code string) ([]studentDomain.Student, error) {
	var list []studentDomain.Student
	for _, s := range m.students {
		if s.AccessCode == code {
			list = append(list, s)
		}
	}
	return list, nil
}

// Save implements the student store interface for testing.
// PRE: entity has been validated
// POST: Entity is persisted with a bumped version
func (m *mockStudentStore) Save(ctx context.Context, s studentDomain.Student) (studentDomain.Student, error) {
	if m.students == nil {
		m.students = make(map[string]studentDomain.Student)
	}
	s.Version++
	m.students[s.ID] = s
	return s, nil
}

// Delete implements the student store interface for testing.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (m *mockStudentStore) Delete(ctx context.Context, id string) error {
	delete(m.students, id)
	return nil
}

// List implements the student store interface for testing.
// PRE: filter has valid parameters
// POST: Returns matching entities
func (m *mockStudentStore) List(ctx context.Context, filter studentStore.ListFilter) ([]studentDomain.Student, error) {
	var list []studentDomain.Student
	for _, s := range m.students {
		if filter.Status != "" && s.PaymentStatus != filter.Status {
			continue
		}
		list = append(list, s)
	}
	return list, nil
}

// SaveSettlement implements the settlement store interface for testing.
// PRE: entity has been validated
// POST: Student and payment log are persisted together
func (m *mockStudentStore) SaveSettlement(ctx context.Context, s studentDomain.Student, log paymentlogDomain.PaymentLog) (studentDomain.Student, error) {
	saved, err := m.Save(ctx, s)
	if err != nil {
		return studentDomain.Student{}, err
	}
	m.logs = append(m.logs, log)
	return saved, nil
}

type mockPaymentLogStore struct {
	logs []paymentlogDomain.PaymentLog
}

// Append implements the payment log store interface for testing.
func (m *mockPaymentLogStore) Append(ctx context.Context, log paymentlogDomain.PaymentLog) error {
	m.logs = append(m.logs, log)
	return nil
}

// List implements the payment log store interface for testing.
// POST: Returns entries newest first
func (m *mockPaymentLogStore) List(ctx context.Context) ([]paymentlogDomain.PaymentLog, error) {
	list := make([]paymentlogDomain.PaymentLog, len(m.logs))
	copy(list, m.logs)
	sort.Slice(list, func(i, j int) bool { return list[i].Date.After(list[j].Date) })
	return list, nil
}

type mockAnnouncementStore struct {
	announcements map[string]announcementDomain.Announcement
}

// GetByID implements the announcement store interface for testing.
func (m *mockAnnouncementStore) GetByID(ctx context.Context, id string) (announcementDomain.Announcement, error) {
	if a, ok := m.announcements[id]; ok {
		return a, nil
	}
	return announcementDomain.Announcement{}, sql.ErrNoRows
}

// Save implements the announcement store interface for testing.
func (m *mockAnnouncementStore) Save(ctx context.Context, a announcementDomain.Announcement) error {
	if m.announcements == nil {
		m.announcements = make(map[string]announcementDomain.Announcement)
	}
	m.announcements[a.ID] = a
	return nil
}

// Delete implements the announcement store interface for testing.
func (m *mockAnnouncementStore) Delete(ctx context.Context, id string) error {
	delete(m.announcements, id)
	return nil
}

// List implements the announcement store interface for testing.
// POST: Returns announcements newest first by posted time
func (m *mockAnnouncementStore) List(ctx context.Context) ([]announcementDomain.Announcement, error) {
	var list []announcementDomain.Announcement
	for _, a := range m.announcements {
		list = append(list, a)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PostedAt.After(list[j].PostedAt) })
	return list, nil
}

type mockSettingsStore struct {
	payment settingsDomain.PaymentSettings
	auth    settingsDomain.AuthSettings
}

func (m *mockSettingsStore) GetPayment(ctx context.Context) (settingsDomain.PaymentSettings, error) {
	return m.payment, nil
}

func (m *mockSettingsStore) SavePayment(ctx context.Context, value settingsDomain.PaymentSettings) error {
	m.payment = value
	return nil
}

func (m *mockSettingsStore) GetAuth(ctx context.Context) (settingsDomain.AuthSettings, error) {
	return m.auth, nil
}

func (m *mockSettingsStore) SaveAuth(ctx context.Context, value settingsDomain.AuthSettings) error {
	m.auth = value
	return nil
}

// setupTestStores wires fresh mocks into the package globals and returns
// the student mock for direct inspection.
func setupTestStores(t *testing.T) *mockStudentStore {
	t.Helper()

	mock := &mockStudentStore{students: make(map[string]studentDomain.Student)}
	stores = &Stores{
		StudentStore:      mock,
		SettlementStore:   mock,
		PaymentLogStore:   &mockPaymentLogStore{},
		AnnouncementStore: &mockAnnouncementStore{announcements: make(map[string]announcementDomain.Announcement)},
		SettingsStore:     &mockSettingsStore{},
	}
	sessions = middleware.NewSessionStore()
	return mock
}

func seedStudent(store *mockStudentStore, s studentDomain.Student) {
	if s.Attendance == nil {
		s.Attendance = make(map[string]string)
	}
	store.students[s.ID] = s
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// TestPostRegisterStudent tests the POST register student endpoint.
func TestPostRegisterStudent(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantStatus   int
		checkStudent bool
	}{
		{
			name:         "valid registration",
			body:         `{"Name":"Priya Sharma","Phone":"9876543210","MonthlyFee":1200,"PlanDetails":"3x/week strength"}`,
			wantStatus:   http.StatusCreated,
			checkStudent: true,
		},
		{
			name:       "missing name",
			body:       `{"Phone":"9876543210","MonthlyFee":1200}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative fee",
			body:       `{"Name":"Priya Sharma","MonthlyFee":-5}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown field rejected",
			body:       `{"Name":"Priya Sharma","Nickname":"P"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupTestStores(t)

			rec := httptest.NewRecorder()
			handleStudents(rec, jsonRequest("POST", "/api/admin/students", tt.body))

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d. Body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.checkStudent {
				var created studentDomain.Student
				if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if created.ID == "" {
					t.Error("expected a generated ID")
				}
				if len(created.AccessCode) != 6 {
					t.Errorf("got access code %q, want 6 digits", created.AccessCode)
				}
				if created.PaymentStatus != studentDomain.StatusDue {
					t.Errorf("got status %q, want %q", created.PaymentStatus, studentDomain.StatusDue)
				}
				if created.DueAmount != 1200 {
					t.Errorf("got due %d, want 1200", created.DueAmount)
				}
				if len(mock.students) != 1 {
					t.Errorf("expected 1 stored student, got %d", len(mock.students))
				}
			}
		})
	}
}

// TestGetStudentDetail tests the GET student detail endpoint.
func TestGetStudentDetail(t *testing.T) {
	mock := setupTestStores(t)
	seedStudent(mock, studentDomain.Student{
		ID:            "stu-001",
		Name:          "Priya Sharma",
		Phone:         "9876543210",
		AccessCode:    "123456",
		MonthlyFee:    1200,
		DueAmount:     1200,
		PaymentStatus: studentDomain.StatusDue,
		JoinDate:      time.Now(),
		NextDueDate:   time.Now().AddDate(0, 0, 30),
	})

	t.Run("found with reminder link", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handleStudent(rec, httptest.NewRequest("GET", "/api/admin/student?id=stu-001", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("got status %d, want 200. Body: %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			studentDomain.Student
			ReminderLink string
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.Name != "Priya Sharma" {
			t.Errorf("got name %q, want %q", resp.Name, "Priya Sharma")
		}
		if !strings.Contains(resp.ReminderLink, "wa.me/9876543210") {
			t.Errorf("reminder link %q missing wa.me target", resp.ReminderLink)
		}
		if !strings.Contains(resp.ReminderLink, "1200") {
			t.Errorf("reminder link %q missing due amount", resp.ReminderLink)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handleStudent(rec, httptest.NewRequest("GET", "/api/admin/student?id=nope", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("got status %d, want 404", rec.Code)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handleStudent(rec, httptest.NewRequest("GET", "/api/admin/student", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("got status %d, want 400", rec.Code)
		}
	})
}

// TestDeleteStudent tests the DELETE student endpoint.
func TestDeleteStudent(t *testing.T) {
	mock := setupTestStores(t)
	seedStudent(mock, studentDomain.Student{
		ID: "stu-001", Name: "Priya Sharma", AccessCode: "123456",
		PaymentStatus: studentDomain.StatusDue, DueAmount: 100,
	})

	rec := httptest.NewRecorder()
	handleStudent(rec, httptest.NewRequest("DELETE", "/api/admin/student?id=stu-001", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("got status %d, want 204. Body: %s", rec.Code, rec.Body.String())
	}
	if len(mock.students) != 0 {
		t.Errorf("expected student removed, %d remain", len(mock.students))
	}
}

// TestPostApprovePayment tests the payment approval endpoint.
func TestPostApprovePayment(t *testing.T) {
	mock := setupTestStores(t)
	seedStudent(mock, studentDomain.Student{
		ID: "stu-001", Name: "Priya Sharma", AccessCode: "123456",
		MonthlyFee: 1200, DueAmount: 1200,
		PaymentStatus: studentDomain.StatusPending,
	})

	rec := httptest.NewRecorder()
	handleApprovePayment(rec, jsonRequest("POST", "/api/admin/payments/approve", `{"StudentID":"stu-001"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200. Body: %s", rec.Code, rec.Body.String())
	}

	saved := mock.students["stu-001"]
	if saved.PaymentStatus != studentDomain.StatusPaid {
		t.Errorf("got status %q, want %q", saved.PaymentStatus, studentDomain.StatusPaid)
	}
	if saved.DueAmount != 0 {
		t.Errorf("got due %d, want 0", saved.DueAmount)
	}
	if saved.PaidAmount != 1200 {
		t.Errorf("got paid %d, want 1200", saved.PaidAmount)
	}
	if len(mock.logs) != 1 {
		t.Fatalf("expected 1 payment log, got %d", len(mock.logs))
	}
	if mock.logs[0].Amount != 1200 {
		t.Errorf("got log amount %d, want 1200", mock.logs[0].Amount)
	}
}

// TestPostMarkAttendance tests the attendance marking endpoint.
func TestPostMarkAttendance(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMark   string
	}{
		{
			name:       "mark present",
			body:       `{"StudentID":"stu-001","Date":"2026-03-10","Mark":"P"}`,
			wantStatus: http.StatusOK,
			wantMark:   "P",
		},
		{
			name:       "mark absent",
			body:       `{"StudentID":"stu-001","Date":"2026-03-10","Mark":"A"}`,
			wantStatus: http.StatusOK,
			wantMark:   "A",
		},
		{
			name:       "invalid mark",
			body:       `{"StudentID":"stu-001","Date":"2026-03-10","Mark":"X"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown student",
			body:       `{"StudentID":"nope","Date":"2026-03-10","Mark":"P"}`,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupTestStores(t)
			seedStudent(mock, studentDomain.Student{
				ID: "stu-001", Name: "Priya Sharma", AccessCode: "123456",
				PaymentStatus: studentDomain.StatusDue, DueAmount: 100,
			})

			rec := httptest.NewRecorder()
			handleAttendance(rec, jsonRequest("POST", "/api/admin/attendance", tt.body))

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d. Body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantMark != "" {
				if got := mock.students["stu-001"].Attendance["2026-03-10"]; got != tt.wantMark {
					t.Errorf("got mark %q, want %q", got, tt.wantMark)
				}
			}
		})
	}
}

// TestHandleAnnouncements tests announcement create and list.
func TestHandleAnnouncements(t *testing.T) {
	setupTestStores(t)

	rec := httptest.NewRecorder()
	handleAnnouncements(rec, jsonRequest("POST", "/api/admin/announcements", `{"Message":"Gym closed **tomorrow**"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, want 201. Body: %s", rec.Code, rec.Body.String())
	}
	var created announcementView
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(created.MessageHTML, "<strong>tomorrow</strong>") {
		t.Errorf("markdown not rendered: %q", created.MessageHTML)
	}

	rec = httptest.NewRecorder()
	handleAnnouncements(rec, httptest.NewRequest("GET", "/api/admin/announcements", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var list []announcementView
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected 1 announcement, got %d", len(list))
	}
}

// TestAdminLogin tests the admin passcode login endpoint.
func TestAdminLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCookie bool
	}{
		{
			name:       "default passcode",
			body:       `{"Passcode":"123456"}`,
			wantStatus: http.StatusOK,
			wantCookie: true,
		},
		{
			name:       "wrong passcode",
			body:       `{"Passcode":"000000"}`,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty passcode",
			body:       `{"Passcode":""}`,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestStores(t)

			rec := httptest.NewRecorder()
			handleAdminLogin(rec, jsonRequest("POST", "/api/login/admin", tt.body))

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d. Body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			gotCookie := false
			for _, c := range rec.Result().Cookies() {
				if c.Name == "gymdesk_session" && c.Value != "" {
					gotCookie = true
				}
			}
			if gotCookie != tt.wantCookie {
				t.Errorf("got session cookie %v, want %v", gotCookie, tt.wantCookie)
			}
		})
	}
}

// TestStudentLogin tests the access code plus name login endpoint.
func TestStudentLogin(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid credentials",
			body:       `{"AccessCode":"123456","Name":"Priya Sharma"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "case insensitive name",
			body:       `{"AccessCode":"123456","Name":"priya sharma"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong name",
			body:       `{"AccessCode":"123456","Name":"Someone Else"}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "name does not match the access code",
		},
		{
			name:       "unknown code",
			body:       `{"AccessCode":"999999","Name":"Priya Sharma"}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "invalid credentials",
		},
		{
			name:       "malformed code",
			body:       `{"AccessCode":"12","Name":"Priya Sharma"}`,
			wantStatus: http.StatusUnauthorized,
			wantBody:   "invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupTestStores(t)
			seedStudent(mock, studentDomain.Student{
				ID: "stu-001", Name: "Priya Sharma", AccessCode: "123456",
				PaymentStatus: studentDomain.StatusDue, DueAmount: 100,
			})

			rec := httptest.NewRecorder()
			handleStudentLogin(rec, jsonRequest("POST", "/api/login/student", tt.body))

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d. Body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantBody != "" && strings.TrimSpace(rec.Body.String()) != tt.wantBody {
				t.Errorf("got body %q, want %q", strings.TrimSpace(rec.Body.String()), tt.wantBody)
			}
		})
	}
}

// TestStudentPay tests the student payment claim endpoint.
func TestStudentPay(t *testing.T) {
	mock := setupTestStores(t)
	seedStudent(mock, studentDomain.Student{
		ID: "stu-001", Name: "Priya Sharma", AccessCode: "123456",
		MonthlyFee: 1200, DueAmount: 1200,
		PaymentStatus: studentDomain.StatusDue,
	})

	req := jsonRequest("POST", "/api/student/pay", "")
	sess := middleware.Session{Kind: middleware.KindStudent, StudentID: "stu-001", StudentName: "Priya Sharma"}
	req = req.WithContext(middleware.ContextWithSession(req.Context(), sess))

	rec := httptest.NewRecorder()
	handleStudentPay(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200. Body: %s", rec.Code, rec.Body.String())
	}
	if got := mock.students["stu-001"].PaymentStatus; got != studentDomain.StatusPending {
		t.Errorf("got status %q, want %q", got, studentDomain.StatusPending)
	}
	// Amounts must not move until the admin approves.
	if got := mock.students["stu-001"].DueAmount; got != 1200 {
		t.Errorf("got due %d, want 1200", got)
	}
}

// TestChangePasscode tests the passcode change endpoint.
func TestChangePasscode(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid change",
			body:       `{"CurrentPasscode":"123456","NewPasscode":"supersecret"}`,
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "wrong current passcode",
			body:       `{"CurrentPasscode":"000000","NewPasscode":"supersecret"}`,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "new passcode too short",
			body:       `{"CurrentPasscode":"123456","NewPasscode":"abc"}`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestStores(t)

			rec := httptest.NewRecorder()
			handleChangePasscode(rec, jsonRequest("PUT", "/api/admin/settings/passcode", tt.body))

			if rec.Code != tt.wantStatus {
				t.Errorf("got status %d, want %d. Body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

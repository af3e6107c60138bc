package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymdesk/internal/domain/student"
)

// StudentStoreForLogin defines the store interface needed by the student login.
// GetByAccessCode returns every student carrying the code; codes are random
// and not guaranteed unique.
type StudentStoreForLogin interface {
	GetByAccessCode(ctx context.Context, code string) ([]student.Student, error)
}

var (
	ErrInvalidPasscode   = errors.New("invalid passcode")
	ErrUnknownAccessCode = errors.New("access code not recognised")
	ErrNameMismatch      = errors.New("name does not match the access code")
)

// --- Admin Login ---

// AdminLoginDeps holds dependencies for AdminLogin.
type AdminLoginDeps struct {
	SettingsStore SettingsStore
}

// ExecuteAdminLogin validates the admin passcode.
// PRE: passcode provided
// POST: Returns nil on success; ErrInvalidPasscode otherwise
func ExecuteAdminLogin(ctx context.Context, passcode string, deps AdminLoginDeps) error {
	auth, err := deps.SettingsStore.GetAuth(ctx)
	if err != nil {
		return err
	}

	if !auth.Check(passcode) {
		slog.Info("auth_event", "event", "admin_login_failed")
		return ErrInvalidPasscode
	}

	slog.Info("auth_event", "event", "admin_login_success")
	return nil
}

// --- Student Login ---

// StudentLoginInput carries input for the student login orchestrator.
type StudentLoginInput struct {
	AccessCode string
	Name       string
}

// StudentLoginDeps holds dependencies for StudentLogin.
type StudentLoginDeps struct {
	StudentStore StudentStoreForLogin
}

// ExecuteStudentLogin authenticates a student by access code plus name.
// The name comparison is trimmed and case-insensitive; it disambiguates
// when two students happen to share a code.
// PRE: AccessCode is 6 digits; Name non-empty
// POST: Returns the matching student; ErrUnknownAccessCode when no record
// carries the code, ErrNameMismatch when records exist but none match
func ExecuteStudentLogin(ctx context.Context, input StudentLoginInput, deps StudentLoginDeps) (student.Student, error) {
	if !student.ValidAccessCode(input.AccessCode) {
		return student.Student{}, student.ErrInvalidAccessCode
	}
	if input.Name == "" {
		return student.Student{}, student.ErrEmptyName
	}

	candidates, err := deps.StudentStore.GetByAccessCode(ctx, input.AccessCode)
	if err != nil {
		return student.Student{}, err
	}
	if len(candidates) == 0 {
		slog.Info("auth_event", "event", "student_login_failed", "reason", "unknown_code")
		return student.Student{}, ErrUnknownAccessCode
	}

	for _, s := range candidates {
		if s.MatchesName(input.Name) {
			slog.Info("auth_event", "event", "student_login_success", "student_id", s.ID)
			return s, nil
		}
	}

	slog.Info("auth_event", "event", "student_login_failed", "reason", "name_mismatch")
	return student.Student{}, ErrNameMismatch
}

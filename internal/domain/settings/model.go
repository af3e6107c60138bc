package settings

import (
	"errors"
	"strings"
)

// DefaultAdminPasscode is assumed when no auth settings document exists.
const DefaultAdminPasscode = "123456"

// Domain errors
var (
	ErrEmptyUPIID    = errors.New("UPI id cannot be empty")
	ErrEmptyPasscode = errors.New("passcode cannot be empty")
	ErrShortPasscode = errors.New("passcode must be at least 4 characters")
)

// PaymentSettings is the singleton payment configuration read by both the
// admin console and the student pay flow; written only by the admin.
type PaymentSettings struct {
	UPIID      string
	AdminPhone string
}

// Validate checks if the PaymentSettings has valid data.
// POST: Returns nil if valid, error otherwise
func (p *PaymentSettings) Validate() error {
	if strings.TrimSpace(p.UPIID) == "" {
		return ErrEmptyUPIID
	}
	return nil
}

// AuthSettings is the singleton admin credential. The passcode is stored and
// compared in plaintext; there is no hashing, rate limiting, or lockout.
type AuthSettings struct {
	AdminPasscode string
}

// Check compares a submitted passcode against the stored one.
// INVARIANT: fields are not mutated
func (a *AuthSettings) Check(passcode string) bool {
	stored := a.AdminPasscode
	if stored == "" {
		stored = DefaultAdminPasscode
	}
	return passcode == stored
}

// ValidatePasscode rejects unusable replacement passcodes.
func ValidatePasscode(passcode string) error {
	if passcode == "" {
		return ErrEmptyPasscode
	}
	if len(passcode) < 4 {
		return ErrShortPasscode
	}
	return nil
}

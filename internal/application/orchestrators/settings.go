package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymdesk/internal/domain/settings"
)

// SettingsStore defines the store interface needed by settings orchestrators.
type SettingsStore interface {
	GetPayment(ctx context.Context) (settings.PaymentSettings, error)
	SavePayment(ctx context.Context, value settings.PaymentSettings) error
	GetAuth(ctx context.Context) (settings.AuthSettings, error)
	SaveAuth(ctx context.Context, value settings.AuthSettings) error
}

// ErrWrongPasscode is returned when the current passcode check fails.
var ErrWrongPasscode = errors.New("current passcode is incorrect")

// --- Update Payment Settings ---

// UpdatePaymentSettingsInput carries input for the payment settings orchestrator.
type UpdatePaymentSettingsInput struct {
	UPIID      string
	AdminPhone string
}

// UpdatePaymentSettingsDeps holds dependencies for UpdatePaymentSettings.
type UpdatePaymentSettingsDeps struct {
	SettingsStore SettingsStore
}

// ExecuteUpdatePaymentSettings saves the UPI ID and admin contact number
// that drive the student pay flow.
// PRE: UPIID is non-empty
// POST: Payment settings document written
func ExecuteUpdatePaymentSettings(ctx context.Context, input UpdatePaymentSettingsInput, deps UpdatePaymentSettingsDeps) (settings.PaymentSettings, error) {
	value := settings.PaymentSettings{
		UPIID:      input.UPIID,
		AdminPhone: input.AdminPhone,
	}
	if err := value.Validate(); err != nil {
		return settings.PaymentSettings{}, err
	}

	if err := deps.SettingsStore.SavePayment(ctx, value); err != nil {
		return settings.PaymentSettings{}, err
	}

	slog.Info("settings_event", "event", "payment_settings_updated")
	return value, nil
}

// --- Change Passcode ---

// ChangePasscodeInput carries input for the passcode change orchestrator.
type ChangePasscodeInput struct {
	CurrentPasscode string
	NewPasscode     string
}

// ChangePasscodeDeps holds dependencies for ChangePasscode.
type ChangePasscodeDeps struct {
	SettingsStore SettingsStore
}

// ExecuteChangePasscode replaces the admin passcode after verifying the
// current one.
// PRE: CurrentPasscode matches the stored passcode; NewPasscode is usable
// POST: Auth settings document holds NewPasscode
func ExecuteChangePasscode(ctx context.Context, input ChangePasscodeInput, deps ChangePasscodeDeps) error {
	auth, err := deps.SettingsStore.GetAuth(ctx)
	if err != nil {
		return err
	}

	if !auth.Check(input.CurrentPasscode) {
		slog.Info("settings_event", "event", "passcode_change_rejected", "reason", "wrong_current")
		return ErrWrongPasscode
	}

	if err := settings.ValidatePasscode(input.NewPasscode); err != nil {
		return err
	}

	auth.AdminPasscode = input.NewPasscode
	if err := deps.SettingsStore.SaveAuth(ctx, auth); err != nil {
		return err
	}

	slog.Info("settings_event", "event", "passcode_changed")
	return nil
}

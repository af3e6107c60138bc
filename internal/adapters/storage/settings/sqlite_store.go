package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"gymdesk/internal/adapters/storage"
	domain "gymdesk/internal/domain/settings"
)

// Singleton document keys.
const (
	KeyPayment = "payment"
	KeyAuth    = "auth"
)

// SQLiteStore implements Store using SQLite. Each singleton is one row in
// the settings table holding a JSON document.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new settings store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

type paymentDoc struct {
	UPIID      string `json:"upiId"`
	AdminPhone string `json:"adminPhone"`
}

type authDoc struct {
	AdminPasscode string `json:"adminPasscode"`
}

// GetPayment retrieves the payment settings document.
// POST: Returns stored settings, or the zero value when absent
func (s *SQLiteStore) GetPayment(ctx context.Context) (domain.PaymentSettings, error) {
	var doc paymentDoc
	found, err := s.getDoc(ctx, KeyPayment, &doc)
	if err != nil {
		return domain.PaymentSettings{}, err
	}
	if !found {
		return domain.PaymentSettings{}, nil
	}
	return domain.PaymentSettings{UPIID: doc.UPIID, AdminPhone: doc.AdminPhone}, nil
}

// SavePayment merge-writes the payment settings document, creating it if absent.
// PRE: value has been validated
// POST: Document persisted
func (s *SQLiteStore) SavePayment(ctx context.Context, value domain.PaymentSettings) error {
	return s.putDoc(ctx, KeyPayment, paymentDoc{UPIID: value.UPIID, AdminPhone: value.AdminPhone})
}

// GetAuth retrieves the auth settings document.
// POST: Returns stored settings; an absent document yields the zero value,
// whose Check falls back to the default passcode
func (s *SQLiteStore) GetAuth(ctx context.Context) (domain.AuthSettings, error) {
	var doc authDoc
	found, err := s.getDoc(ctx, KeyAuth, &doc)
	if err != nil {
		return domain.AuthSettings{}, err
	}
	if !found {
		return domain.AuthSettings{}, nil
	}
	return domain.AuthSettings{AdminPasscode: doc.AdminPasscode}, nil
}

// SaveAuth merge-writes the auth settings document, creating it if absent.
// POST: Document persisted
func (s *SQLiteStore) SaveAuth(ctx context.Context, value domain.AuthSettings) error {
	return s.putDoc(ctx, KeyAuth, authDoc{AdminPasscode: value.AdminPasscode})
}

// EnsureAuthDefaults seeds the auth document with the default passcode when
// no document exists yet. Called once at startup.
// POST: An auth document exists
func (s *SQLiteStore) EnsureAuthDefaults(ctx context.Context) error {
	var doc authDoc
	found, err := s.getDoc(ctx, KeyAuth, &doc)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return s.putDoc(ctx, KeyAuth, authDoc{AdminPasscode: domain.DefaultAdminPasscode})
}

func (s *SQLiteStore) getDoc(ctx context.Context, key string, out any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT doc FROM settings WHERE key = ?", key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("bad settings doc %q: %w", key, err)
	}
	return true, nil
}

func (s *SQLiteStore) putDoc(ctx context.Context, key string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO settings (key, doc) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET doc=excluded.doc",
		key, string(raw))
	return err
}

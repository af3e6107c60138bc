package settings

import (
	"context"

	domain "gymdesk/internal/domain/settings"
)

// Store persists the two singleton settings documents. Reads fall back to
// defaults when a document is absent; writes are merge-writes (the document
// is created if missing).
type Store interface {
	GetPayment(ctx context.Context) (domain.PaymentSettings, error)
	SavePayment(ctx context.Context, value domain.PaymentSettings) error
	GetAuth(ctx context.Context) (domain.AuthSettings, error)
	SaveAuth(ctx context.Context, value domain.AuthSettings) error
}

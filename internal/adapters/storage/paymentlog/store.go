package paymentlog

import (
	"context"

	domain "gymdesk/internal/domain/paymentlog"
)

// Store persists PaymentLog entries. The collection is append-only: entries
// are never updated or deleted, and List returns them newest first.
type Store interface {
	Append(ctx context.Context, value domain.PaymentLog) error
	List(ctx context.Context) ([]domain.PaymentLog, error)
}

package student

import (
	"context"

	"gymdesk/internal/domain/paymentlog"
	domain "gymdesk/internal/domain/student"
)

// Store persists Student state.
//
// Save is compare-and-swap on the record's version token: a save carrying a
// stale version fails with storage.ErrVersionConflict instead of silently
// overwriting another writer's fields. The returned Student carries the new
// version.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Student, error)
	GetByAccessCode(ctx context.Context, code string) ([]domain.Student, error)
	Save(ctx context.Context, value domain.Student) (domain.Student, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Student, error)
}

// SettlementStore persists a payment approval: the student's PAID state and
// the appended payment log succeed or fail together.
type SettlementStore interface {
	GetByID(ctx context.Context, id string) (domain.Student, error)
	SaveSettlement(ctx context.Context, value domain.Student, log paymentlog.PaymentLog) (domain.Student, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status string // payment status, empty for all
}

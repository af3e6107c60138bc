package projections

import (
	"context"

	storageStudent "gymdesk/internal/adapters/storage/student"
	domainAnnouncement "gymdesk/internal/domain/announcement"
	domainPaymentLog "gymdesk/internal/domain/paymentlog"
	domainSettings "gymdesk/internal/domain/settings"
	domainStudent "gymdesk/internal/domain/student"
)

// StudentStore interface for student queries.
type StudentStore interface {
	GetByID(ctx context.Context, id string) (domainStudent.Student, error)
	List(ctx context.Context, filter storageStudent.ListFilter) ([]domainStudent.Student, error)
}

// PaymentLogStore interface for payment log queries.
type PaymentLogStore interface {
	List(ctx context.Context) ([]domainPaymentLog.PaymentLog, error)
}

// AnnouncementStore interface for announcement queries.
type AnnouncementStore interface {
	List(ctx context.Context) ([]domainAnnouncement.Announcement, error)
}

// SettingsStore interface for settings queries.
type SettingsStore interface {
	GetPayment(ctx context.Context) (domainSettings.PaymentSettings, error)
}

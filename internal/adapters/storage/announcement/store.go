package announcement

import (
	"context"

	domain "gymdesk/internal/domain/announcement"
)

// Store persists Announcement state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Announcement, error)
	Save(ctx context.Context, value domain.Announcement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Announcement, error)
}

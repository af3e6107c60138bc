package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gymdesk/internal/domain/announcement"
)

// AnnouncementStore defines the store interface needed by announcement orchestrators.
type AnnouncementStore interface {
	GetByID(ctx context.Context, id string) (announcement.Announcement, error)
	Save(ctx context.Context, a announcement.Announcement) error
	Delete(ctx context.Context, id string) error
}

// --- Create Announcement ---

// CreateAnnouncementInput carries input for the create announcement orchestrator.
type CreateAnnouncementInput struct {
	Message string // Markdown content
}

// CreateAnnouncementDeps holds dependencies for CreateAnnouncement.
type CreateAnnouncementDeps struct {
	AnnouncementStore AnnouncementStore
	GenerateID        func() string
	Now               func() time.Time
}

// ExecuteCreateAnnouncement posts a new announcement.
// PRE: Message is non-empty and within length bounds
// POST: Announcement created with CreatedAt = PostedAt = now
func ExecuteCreateAnnouncement(ctx context.Context, input CreateAnnouncementInput, deps CreateAnnouncementDeps) (announcement.Announcement, error) {
	now := deps.Now()
	a := announcement.Announcement{
		ID:        deps.GenerateID(),
		Message:   input.Message,
		CreatedAt: now,
		PostedAt:  now,
	}

	if err := a.Validate(); err != nil {
		return announcement.Announcement{}, err
	}

	if err := deps.AnnouncementStore.Save(ctx, a); err != nil {
		return announcement.Announcement{}, err
	}

	slog.Info("announcement_event", "event", "announcement_created", "announcement_id", a.ID)
	return a, nil
}

// --- Edit Announcement ---

// EditAnnouncementInput carries input for the edit announcement orchestrator.
type EditAnnouncementInput struct {
	AnnouncementID string
	Message        string
}

// EditAnnouncementDeps holds dependencies for EditAnnouncement.
type EditAnnouncementDeps struct {
	AnnouncementStore AnnouncementStore
	Now               func() time.Time
}

// ExecuteEditAnnouncement replaces an announcement's message. Editing bumps
// the ordering timestamp so the announcement moves to the top of the feed.
// PRE: AnnouncementID non-empty; announcement exists; Message non-empty
// POST: Message replaced, PostedAt = now, CreatedAt unchanged
func ExecuteEditAnnouncement(ctx context.Context, input EditAnnouncementInput, deps EditAnnouncementDeps) (announcement.Announcement, error) {
	if input.AnnouncementID == "" {
		return announcement.Announcement{}, errors.New("announcement ID is required")
	}

	a, err := deps.AnnouncementStore.GetByID(ctx, input.AnnouncementID)
	if err != nil {
		return announcement.Announcement{}, err
	}

	if err := a.Edit(input.Message, deps.Now()); err != nil {
		return announcement.Announcement{}, err
	}

	if err := deps.AnnouncementStore.Save(ctx, a); err != nil {
		return announcement.Announcement{}, err
	}

	slog.Info("announcement_event", "event", "announcement_edited", "announcement_id", a.ID)
	return a, nil
}

// --- Delete Announcement ---

// DeleteAnnouncementDeps holds dependencies for DeleteAnnouncement.
type DeleteAnnouncementDeps struct {
	AnnouncementStore AnnouncementStore
}

// ExecuteDeleteAnnouncement removes an announcement from the feed.
// PRE: announcementID non-empty; announcement exists
// POST: Announcement deleted
func ExecuteDeleteAnnouncement(ctx context.Context, announcementID string, deps DeleteAnnouncementDeps) error {
	if announcementID == "" {
		return errors.New("announcement ID is required")
	}

	if _, err := deps.AnnouncementStore.GetByID(ctx, announcementID); err != nil {
		return err
	}

	if err := deps.AnnouncementStore.Delete(ctx, announcementID); err != nil {
		return err
	}

	slog.Info("announcement_event", "event", "announcement_deleted", "announcement_id", announcementID)
	return nil
}

package announcement

import (
	"errors"
	"strings"
	"time"
)

// MaxMessageLength bounds the announcement body.
const MaxMessageLength = 2000

// Domain errors
var (
	ErrEmptyMessage   = errors.New("announcement message cannot be empty")
	ErrMessageTooLong = errors.New("announcement message cannot exceed 2000 characters")
)

// Announcement is a broadcast message shown on the student dashboard.
// Message supports Markdown formatting. Display order is PostedAt
// descending; editing bumps PostedAt so an edited announcement sorts first.
type Announcement struct {
	ID        string
	Message   string // Markdown content
	CreatedAt time.Time
	PostedAt  time.Time // ordering timestamp, bumped on edit
}

// Validate checks if the Announcement has valid data.
// PRE: Announcement struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Announcement) Validate() error {
	if strings.TrimSpace(a.Message) == "" {
		return ErrEmptyMessage
	}
	if len(a.Message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	return nil
}

// Edit replaces the message and moves the announcement to the top of the
// display order.
// PRE: message is non-empty
// POST: Message replaced, PostedAt = now
func (a *Announcement) Edit(message string, now time.Time) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	if len(message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	a.Message = message
	a.PostedAt = now
	return nil
}

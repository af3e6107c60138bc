package announcement_test

import (
	"strings"
	"testing"
	"time"

	"gymdesk/internal/domain/announcement"
)

// TestAnnouncement_Validate tests announcement validation.
func TestAnnouncement_Validate(t *testing.T) {
	tests := []struct {
		name    string
		message string
		wantErr bool
	}{
		{"valid", "Gym closed this Sunday for maintenance.", false},
		{"markdown ok", "**New timings** from Monday: 6am-10pm", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"too long", strings.Repeat("x", 2001), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := announcement.Announcement{ID: "a-1", Message: tt.message, CreatedAt: time.Now(), PostedAt: time.Now()}
			if err := a.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestAnnouncement_Edit tests that editing bumps the ordering timestamp.
func TestAnnouncement_Edit(t *testing.T) {
	created := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	a := announcement.Announcement{ID: "a-1", Message: "old", CreatedAt: created, PostedAt: created}

	editedAt := created.Add(48 * time.Hour)
	if err := a.Edit("updated message", editedAt); err != nil {
		t.Fatalf("Edit() unexpected error: %v", err)
	}
	if a.Message != "updated message" {
		t.Errorf("Message = %q", a.Message)
	}
	if !a.PostedAt.Equal(editedAt) {
		t.Errorf("PostedAt = %v, want %v", a.PostedAt, editedAt)
	}
	if !a.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt must not change on edit, got %v", a.CreatedAt)
	}

	if err := a.Edit("  ", editedAt); err != announcement.ErrEmptyMessage {
		t.Errorf("Edit with blank message = %v, want ErrEmptyMessage", err)
	}
}

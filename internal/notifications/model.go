// Package notifications lists account alerts and tracks which were read.
package notifications

import "github.com/ccms-app/dashboard/internal/store"

// Record is a notification as the API returns it.
type Record struct {
	MongoID           string         `json:"_id,omitempty"`
	ID                string         `json:"id,omitempty"`
	UserID            string         `json:"user_id,omitempty"`
	Title             string         `json:"title,omitempty"`
	Message           string         `json:"message,omitempty"`
	NotificationType  string         `json:"notification_type,omitempty"`
	Priority          string         `json:"priority,omitempty"`
	IsRead            bool           `json:"is_read"`
	Channels          []string       `json:"channels,omitempty"`
	RelatedEntityType string         `json:"related_entity_type,omitempty"`
	RelatedEntityID   string         `json:"related_entity_id,omitempty"`
	ActionURL         string         `json:"action_url,omitempty"`
	ActionText        string         `json:"action_text,omitempty"`
	RequiresAction    bool           `json:"requires_action"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	ExpiresAt         string         `json:"expires_at,omitempty"`
	SentAt            string         `json:"sent_at,omitempty"`
	ReadAt            string         `json:"read_at,omitempty"`
	CreatedAt         string         `json:"created_at,omitempty"`
}

// View is a notification ready for display.
type View struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	Type           string `json:"type,omitempty"`
	Priority       string `json:"priority,omitempty"`
	Read           bool   `json:"read"`
	Date           string `json:"date"`
	ActionURL      string `json:"actionUrl,omitempty"`
	ActionText     string `json:"actionText,omitempty"`
	RequiresAction bool   `json:"requiresAction"`
}

// Normalize maps an API notification onto its display form.
func Normalize(r Record) View {
	return View{
		ID:             store.RecordID(r.MongoID, r.ID),
		Title:          r.Title,
		Body:           r.Message,
		Type:           r.NotificationType,
		Priority:       r.Priority,
		Read:           r.IsRead,
		Date:           r.CreatedAt,
		ActionURL:      r.ActionURL,
		ActionText:     r.ActionText,
		RequiresAction: r.RequiresAction,
	}
}

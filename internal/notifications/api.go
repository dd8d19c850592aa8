package notifications

import (
	"context"
	"net/url"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/store"
)

// Filters narrows a notification listing. Zero values are left off the query.
type Filters struct {
	Page       int    `json:"page,omitempty"`
	PerPage    int    `json:"per_page,omitempty"`
	Type       string `json:"type,omitempty"`
	Priority   string `json:"priority,omitempty"`
	IsRead     *bool  `json:"is_read,omitempty"`
	UnreadOnly *bool  `json:"unread_only,omitempty"`
}

// Values encodes f as query parameters.
func (f Filters) Values() url.Values {
	return apiclient.NewQuery().
		Int("page", f.Page).
		Int("per_page", f.PerPage).
		String("type", f.Type).
		String("priority", f.Priority).
		Bool("is_read", f.IsRead).
		Bool("unread_only", f.UnreadOnly).
		Values()
}

// ListResponse is the envelope of GET /notifications.
type ListResponse struct {
	Notifications []Record `json:"notifications"`
	store.Meta
}

// CreateRequest posts a notification to the user's inbox.
type CreateRequest struct {
	Title             string         `json:"title" validate:"required"`
	Message           string         `json:"message" validate:"required"`
	NotificationType  string         `json:"notification_type" validate:"required"`
	Priority          string         `json:"priority,omitempty"`
	Channels          []string       `json:"channels,omitempty"`
	RelatedEntityType string         `json:"related_entity_type,omitempty"`
	RelatedEntityID   string         `json:"related_entity_id,omitempty"`
	ActionURL         string         `json:"action_url,omitempty"`
	ActionText        string         `json:"action_text,omitempty"`
	RequiresAction    *bool          `json:"requires_action,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	Tags              []string       `json:"tags,omitempty"`
	ExpiresAt         string         `json:"expires_at,omitempty"`
}

// API wraps the /notifications endpoints.
type API struct {
	client *apiclient.Client
}

// NewAPI binds the notification endpoints to client.
func NewAPI(client *apiclient.Client) *API {
	return &API{client: client}
}

func notificationPath(id string) string {
	return "/notifications/" + url.PathEscape(id)
}

// List returns one page of notifications.
func (a *API) List(ctx context.Context, f Filters) (ListResponse, error) {
	var resp ListResponse
	err := a.client.Get(ctx, "/notifications", f.Values(), &resp)
	return resp, err
}

// Get returns one notification.
func (a *API) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := a.client.Get(ctx, notificationPath(id), nil, &rec)
	return rec, err
}

// Create posts a notification.
func (a *API) Create(ctx context.Context, req CreateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Post(ctx, "/notifications", req, &out)
	return out, err
}

// MarkRead flags a notification as read.
func (a *API) MarkRead(ctx context.Context, id string) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, notificationPath(id)+"/read", nil, &out)
	return out, err
}

// MarkUnread flags a notification as unread.
func (a *API) MarkUnread(ctx context.Context, id string) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, notificationPath(id)+"/unread", nil, &out)
	return out, err
}

// MarkAllRead flags every notification as read.
func (a *API) MarkAllRead(ctx context.Context) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, "/notifications/mark-all-read", nil, &out)
	return out, err
}

// Update edits arbitrary notification fields.
func (a *API) Update(ctx context.Context, id string, fields map[string]any) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Put(ctx, notificationPath(id), fields, &out)
	return out, err
}

// Delete removes a notification.
func (a *API) Delete(ctx context.Context, id string) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Delete(ctx, notificationPath(id), &out)
	return out, err
}

// Types lists the notification types the API knows.
func (a *API) Types(ctx context.Context) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Get(ctx, "/notifications/types", nil, &out)
	return out, err
}

// Summary returns the API's inbox counters.
func (a *API) Summary(ctx context.Context) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Get(ctx, "/notifications/summary", nil, &out)
	return out, err
}

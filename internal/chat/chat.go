// Package chat relays the assistant widget's sessions to the chat API. It
// carries messages; it does not interpret them.
package chat

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/store"
)

// Message is one turn of a chat session.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Record is a chat session as the API returns it.
type Record struct {
	MongoID   string    `json:"_id,omitempty"`
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title,omitempty"`
	Model     string    `json:"model,omitempty"`
	Messages  []Message `json:"messages,omitempty"`
	CreatedAt string    `json:"created_at,omitempty"`
	UpdatedAt string    `json:"updated_at,omitempty"`
}

// Session is a chat session ready for display.
type Session struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Model     string    `json:"model,omitempty"`
	Messages  []Message `json:"messages"`
	UpdatedAt string    `json:"updatedAt,omitempty"`
}

// Normalize maps an API session onto its display form.
func Normalize(r Record) Session {
	messages := r.Messages
	if messages == nil {
		messages = []Message{}
	}
	updated := r.UpdatedAt
	if updated == "" {
		updated = r.CreatedAt
	}
	return Session{
		ID:        store.RecordID(r.MongoID, r.ID),
		Title:     r.Title,
		Model:     r.Model,
		Messages:  messages,
		UpdatedAt: updated,
	}
}

// ListResponse is the envelope of GET /chat/sessions.
type ListResponse struct {
	Sessions []Record `json:"sessions"`
	store.Meta
}

type createRequest struct {
	Title string `json:"title,omitempty"`
	Model string `json:"model,omitempty"`
}

// SendRequest is one user message. Model overrides the session model when set.
type SendRequest struct {
	Message string `json:"message" validate:"required"`
	Model   string `json:"model,omitempty"`
}

// API wraps the /chat/sessions endpoints.
type API struct {
	client *apiclient.Client
}

// NewAPI binds the chat endpoints to client.
func NewAPI(client *apiclient.Client) *API {
	return &API{client: client}
}

func sessionPath(id string) string {
	return "/chat/sessions/" + url.PathEscape(id)
}

// CreateSession opens a session; empty title and model let the API choose.
func (a *API) CreateSession(ctx context.Context, title, model string) (Record, error) {
	var rec Record
	err := a.client.Post(ctx, "/chat/sessions", createRequest{Title: title, Model: model}, &rec)
	return rec, err
}

// Sessions returns one page of the user's sessions.
func (a *API) Sessions(ctx context.Context, page, perPage int) (ListResponse, error) {
	query := apiclient.NewQuery().Int("page", page).Int("per_page", perPage).Values()
	var resp ListResponse
	err := a.client.Get(ctx, "/chat/sessions", query, &resp)
	return resp, err
}

// Session returns one session with its messages.
func (a *API) Session(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := a.client.Get(ctx, sessionPath(id), nil, &rec)
	return rec, err
}

// Send posts a message and waits for the complete reply.
func (a *API) Send(ctx context.Context, id string, req SendRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := a.client.Post(ctx, sessionPath(id)+"/send", req, &out)
	return out, err
}

// Stream posts a message and returns the reply as it is produced. The
// caller must close the reader.
func (a *API) Stream(ctx context.Context, id string, req SendRequest) (io.ReadCloser, error) {
	return a.client.Stream(ctx, http.MethodPost, sessionPath(id)+"/stream", req)
}

package chat

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/ccms-app/dashboard/internal/apiclient/apitest"
)

func TestCreateAndListSessions(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/chat/sessions", http.StatusCreated, map[string]any{"_id": "s1", "title": "Card help", "model": "default"})
	srv.JSON(http.MethodGet, "/chat/sessions", http.StatusOK, map[string]any{
		"sessions": []map[string]any{{"_id": "s1", "title": "Card help", "created_at": "2024-06-01"}},
		"total":    1,
	})

	api := NewAPI(srv.Client())
	ctx := context.Background()

	rec, err := api.CreateSession(ctx, "Card help", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if Normalize(rec).ID != "s1" {
		t.Fatalf("unexpected session %+v", rec)
	}
	if body := string(srv.Last(http.MethodPost, "/chat/sessions").Body); body != `{"title":"Card help"}` {
		t.Fatalf("unexpected create body %s", body)
	}

	list, err := api.Sessions(ctx, 1, 20)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(list.Sessions) != 1 || list.Total != 1 {
		t.Fatalf("unexpected list %+v", list)
	}
	s := Normalize(list.Sessions[0])
	if s.UpdatedAt != "2024-06-01" || s.Messages == nil {
		t.Fatalf("unexpected normalized session %+v", s)
	}
	if q := srv.Last(http.MethodGet, "/chat/sessions").Query; q != "page=1&per_page=20" {
		t.Fatalf("unexpected query %q", q)
	}
}

func TestStreamReturnsBody(t *testing.T) {
	srv := apitest.New(t)
	srv.Handle(http.MethodPost, "/chat/sessions/s1/stream", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = io.WriteString(w, "data: Hello\n\ndata: there\n\n")
	})

	rc, err := NewAPI(srv.Client()).Stream(context.Background(), "s1", SendRequest{Message: "hi"})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "data: Hello\n\ndata: there\n\n" {
		t.Fatalf("unexpected stream %q", data)
	}
}

func TestSendError(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/chat/sessions/s1/send", http.StatusBadRequest, map[string]any{"error": "Message is required"})

	_, err := NewAPI(srv.Client()).Send(context.Background(), "s1", SendRequest{})
	if err == nil || err.Error() == "" {
		t.Fatal("expected send error")
	}
}

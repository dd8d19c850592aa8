package notifications

import (
	"context"
	"net/http"
	"testing"

	"github.com/ccms-app/dashboard/internal/apiclient/apitest"
)

func inbox() map[string]any {
	return map[string]any{
		"notifications": []map[string]any{
			{"_id": "n1", "title": "Bill due", "message": "BESCOM bill due in 3 days", "is_read": false, "created_at": "2024-06-02T09:00:00"},
			{"_id": "n2", "title": "Payment received", "message": "₹5,000 received", "is_read": true, "created_at": "2024-06-01T09:00:00"},
			{"_id": "n3", "title": "Score updated", "message": "Your CIBIL score changed", "is_read": false, "created_at": "2024-05-30T09:00:00"},
		},
		"total":        3,
		"pages":        1,
		"current_page": 1,
		"per_page":     10,
	}
}

func find(items []View, id string) (View, bool) {
	for _, v := range items {
		if v.ID == id {
			return v, true
		}
	}
	return View{}, false
}

func TestFetchMapsNotifications(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/notifications", http.StatusOK, inbox())

	st := NewStore(NewAPI(srv.Client()), Filters{})
	st.Fetch(context.Background())

	n, ok := find(st.Snapshot().Items, "n1")
	if !ok || n.Body != "BESCOM bill due in 3 days" || n.Read || n.Date != "2024-06-02T09:00:00" {
		t.Fatalf("unexpected mapping %+v", n)
	}
	if st.UnreadCount() != 2 {
		t.Fatalf("expected 2 unread, got %d", st.UnreadCount())
	}
}

func TestMarkReadIsOptimisticAndRevertsOnFailure(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/notifications", http.StatusOK, inbox())

	st := NewStore(NewAPI(srv.Client()), Filters{})
	ctx := context.Background()
	st.Fetch(ctx)

	var sawRead bool
	var sawUnread int
	srv.Handle(http.MethodPut, "/notifications/n1/read", func(w http.ResponseWriter, _ *http.Request) {
		n, _ := find(st.Snapshot().Items, "n1")
		sawRead = n.Read
		sawUnread = st.UnreadCount()
		apitest.WriteJSON(w, http.StatusInternalServerError, map[string]any{"error": "Notification service down"})
	})

	if err := st.MarkRead(ctx, "n1"); err == nil {
		t.Fatal("expected mark read error")
	}
	if !sawRead || sawUnread != 1 {
		t.Fatalf("before the API answered: read=%v unread=%d, want true and 1", sawRead, sawUnread)
	}

	n, _ := find(st.Snapshot().Items, "n1")
	if n.Read || st.UnreadCount() != 2 {
		t.Fatalf("failure should revert via refetch: read=%v unread=%d", n.Read, st.UnreadCount())
	}
	if st.Snapshot().Error != "Notification service down" {
		t.Fatalf("unexpected error %q", st.Snapshot().Error)
	}
	if c := srv.Count(http.MethodGet, "/notifications"); c != 2 {
		t.Fatalf("expected one reconciling refetch, got %d list calls", c)
	}
}

func TestMarkReadSuccessDoesNotRefetch(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/notifications", http.StatusOK, inbox())
	srv.JSON(http.MethodPut, "/notifications/n1/read", http.StatusOK, map[string]any{"message": "ok"})
	srv.JSON(http.MethodPut, "/notifications/n2/read", http.StatusOK, map[string]any{"message": "ok"})

	st := NewStore(NewAPI(srv.Client()), Filters{})
	ctx := context.Background()
	st.Fetch(ctx)

	if err := st.MarkRead(ctx, "n1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if st.UnreadCount() != 1 {
		t.Fatalf("expected 1 unread, got %d", st.UnreadCount())
	}
	if err := st.MarkRead(ctx, "n2"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if st.UnreadCount() != 1 {
		t.Fatalf("re-reading a read notification must not change the count, got %d", st.UnreadCount())
	}
	if c := srv.Count(http.MethodGet, "/notifications"); c != 1 {
		t.Fatalf("successful optimistic update should not refetch, got %d", c)
	}
}

func TestMarkUnread(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/notifications", http.StatusOK, inbox())
	srv.JSON(http.MethodPut, "/notifications/n2/unread", http.StatusOK, map[string]any{})

	st := NewStore(NewAPI(srv.Client()), Filters{})
	ctx := context.Background()
	st.Fetch(ctx)

	if err := st.MarkUnread(ctx, "n2"); err != nil {
		t.Fatalf("mark unread: %v", err)
	}
	if st.UnreadCount() != 3 {
		t.Fatalf("expected 3 unread, got %d", st.UnreadCount())
	}
}

func TestDeleteIsOptimistic(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/notifications", http.StatusOK, inbox())
	srv.JSON(http.MethodDelete, "/notifications/n3", http.StatusOK, map[string]any{"message": "deleted"})

	st := NewStore(NewAPI(srv.Client()), Filters{})
	ctx := context.Background()
	st.Fetch(ctx)

	if err := st.Delete(ctx, "n3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	snap := st.Snapshot()
	if _, ok := find(snap.Items, "n3"); ok || len(snap.Items) != 2 || snap.Pagination.Total != 2 {
		t.Fatalf("unexpected state after delete %+v", snap)
	}
}

func TestMarkAllReadRefetches(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/notifications", http.StatusOK, inbox())
	srv.JSON(http.MethodPut, "/notifications/mark-all-read", http.StatusOK, map[string]any{"updated": 2})

	st := NewStore(NewAPI(srv.Client()), Filters{})
	if err := st.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("mark all: %v", err)
	}
	if c := srv.Count(http.MethodGet, "/notifications"); c != 1 {
		t.Fatalf("expected one refetch, got %d", c)
	}
}

func TestSetFiltersUnreadOnly(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/notifications", http.StatusOK, inbox())

	st := NewStore(NewAPI(srv.Client()), Filters{})
	ctx := context.Background()
	yes := true
	if !st.SetFilters(ctx, Filters{UnreadOnly: &yes}) {
		t.Fatal("unread-only change should refetch")
	}
	again := true
	if st.SetFilters(ctx, Filters{UnreadOnly: &again, Priority: "high"}) {
		t.Fatal("same unread-only value and an unwatched priority should not refetch")
	}
	if q := srv.Last(http.MethodGet, "/notifications").Query; q != "unread_only=true" {
		t.Fatalf("unexpected query %q", q)
	}
}

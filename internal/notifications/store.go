package notifications

import (
	"context"
	"sync"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/store"
)

// Store keeps one screen's notification list in sync with the API. Read
// state changes and deletions are applied locally first and only reconciled
// with a refetch when the API rejects them.
type Store struct {
	api  *API
	list *store.List[Record, View]

	mu      sync.Mutex
	filters Filters
}

// NewStore builds an unloaded store; call Fetch to mount it.
func NewStore(api *API, filters Filters) *Store {
	s := &Store{api: api, filters: filters}
	s.list = store.NewList(s.load, Normalize, "Failed to fetch notifications")
	return s
}

func (s *Store) load(ctx context.Context) ([]Record, store.Meta, error) {
	resp, err := s.api.List(ctx, s.Filters())
	if err != nil {
		return nil, store.Meta{}, err
	}
	return resp.Notifications, resp.Meta, nil
}

// Fetch reloads the list with the current filters.
func (s *Store) Fetch(ctx context.Context) {
	s.list.Fetch(ctx)
}

// Filters returns the filters the next fetch will use.
func (s *Store) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// SetFilters replaces the filters and refetches when the page, type or
// unread-only flag changed. It reports whether a fetch happened.
func (s *Store) SetFilters(ctx context.Context, f Filters) bool {
	s.mu.Lock()
	prev := s.filters
	s.filters = f
	s.mu.Unlock()

	if prev.Page == f.Page && prev.Type == f.Type && sameFlag(prev.UnreadOnly, f.UnreadOnly) {
		return false
	}
	s.Fetch(ctx)
	return true
}

func sameFlag(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Snapshot returns the current list state.
func (s *Store) Snapshot() store.Snapshot[View] {
	return s.list.Snapshot()
}

// UnreadCount counts the loaded notifications not yet read.
func (s *Store) UnreadCount() int {
	n := 0
	for _, v := range s.list.Items() {
		if !v.Read {
			n++
		}
	}
	return n
}

// Create posts a notification and reloads the list.
func (s *Store) Create(ctx context.Context, req CreateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := s.list.Mutate(ctx, "Failed to create notification", true, func(ctx context.Context) error {
		var err error
		out, err = s.api.Create(ctx, req)
		return err
	})
	return out, err
}

// MarkRead flips the notification to read immediately, then tells the API.
func (s *Store) MarkRead(ctx context.Context, id string) error {
	s.setRead(id, true)
	if _, err := s.api.MarkRead(ctx, id); err != nil {
		s.reconcile(ctx, apiclient.MessageOr(err, "Failed to mark as read"))
		return err
	}
	return nil
}

// MarkUnread flips the notification to unread immediately, then tells the API.
func (s *Store) MarkUnread(ctx context.Context, id string) error {
	s.setRead(id, false)
	if _, err := s.api.MarkUnread(ctx, id); err != nil {
		s.reconcile(ctx, apiclient.MessageOr(err, "Failed to mark as unread"))
		return err
	}
	return nil
}

// MarkAllRead flags everything read and reloads the list.
func (s *Store) MarkAllRead(ctx context.Context) error {
	return s.list.Mutate(ctx, "Failed to mark all as read", true, func(ctx context.Context) error {
		_, err := s.api.MarkAllRead(ctx)
		return err
	})
}

// Delete drops the notification locally, then tells the API.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.list.Update(func(items []View, p store.Pagination) ([]View, store.Pagination) {
		kept := items[:0]
		for _, v := range items {
			if v.ID != id {
				kept = append(kept, v)
			}
		}
		if len(kept) < len(items) && p.Total > 0 {
			p.Total--
		}
		return kept, p
	})
	if _, err := s.api.Delete(ctx, id); err != nil {
		s.reconcile(ctx, apiclient.MessageOr(err, "Failed to delete notification"))
		return err
	}
	return nil
}

// Summary passes through the inbox counters.
func (s *Store) Summary(ctx context.Context) (apiclient.Result, error) {
	return s.api.Summary(ctx)
}

func (s *Store) setRead(id string, read bool) {
	s.list.Update(func(items []View, p store.Pagination) ([]View, store.Pagination) {
		for i := range items {
			if items[i].ID == id {
				items[i].Read = read
			}
		}
		return items, p
	})
}

// reconcile discards local edits by reloading from the API and keeps the
// failure visible afterwards.
func (s *Store) reconcile(ctx context.Context, msg string) {
	s.list.Fetch(ctx)
	s.list.SetError(msg)
}

package bills

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/store"
)

// Store keeps one screen's bill list in sync with the API.
type Store struct {
	api  *API
	list *store.List[Record, View]

	mu      sync.Mutex
	filters Filters
}

// NewStore builds an unloaded store; call Fetch to mount it.
func NewStore(api *API, filters Filters) *Store {
	s := &Store{api: api, filters: filters}
	s.list = store.NewList(s.load, Normalize, "Failed to fetch bills")
	return s
}

func (s *Store) load(ctx context.Context) ([]Record, store.Meta, error) {
	resp, err := s.api.List(ctx, s.Filters())
	if err != nil {
		return nil, store.Meta{}, err
	}
	return resp.Bills, resp.Meta, nil
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

// SetFilters replaces the filters and refetches when the page, status or type
// changed. It reports whether a fetch happened.
func (s *Store) SetFilters(ctx context.Context, f Filters) bool {
	s.mu.Lock()
	prev := s.filters
	s.filters = f
	s.mu.Unlock()

	if prev.Page == f.Page && prev.Status == f.Status && prev.Type == f.Type {
		return false
	}
	s.Fetch(ctx)
	return true
}

// Snapshot returns the current list state.
func (s *Store) Snapshot() store.Snapshot[View] {
	return s.list.Snapshot()
}

// Pending returns the loaded bills that are not yet paid.
func (s *Store) Pending() []View {
	var out []View
	for _, b := range s.list.Items() {
		if !b.Paid() {
			out = append(out, b)
		}
	}
	return out
}

// Create registers a bill and reloads the list.
func (s *Store) Create(ctx context.Context, req CreateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := s.list.Mutate(ctx, "Failed to create bill", true, func(ctx context.Context) error {
		var err error
		out, err = s.api.Create(ctx, req)
		return err
	})
	return out, err
}

// Pay settles a bill and reloads the list.
func (s *Store) Pay(ctx context.Context, id string, amount *decimal.Decimal) (apiclient.Result, error) {
	var out apiclient.Result
	err := s.list.Mutate(ctx, "Failed to pay bill", true, func(ctx context.Context) error {
		var err error
		out, err = s.api.Pay(ctx, id, amount)
		return err
	})
	return out, err
}

// ToggleAutoPay switches automatic payment and reloads the list.
func (s *Store) ToggleAutoPay(ctx context.Context, id string, enable bool) error {
	return s.list.Mutate(ctx, "Failed to toggle auto-pay", true, func(ctx context.Context) error {
		_, err := s.api.ToggleAutoPay(ctx, id, enable)
		return err
	})
}

// Delete removes a bill and reloads the list.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.list.Mutate(ctx, "Failed to delete bill", true, func(ctx context.Context) error {
		_, err := s.api.Delete(ctx, id)
		return err
	})
}

// Summary passes through the bill totals without touching list state.
func (s *Store) Summary(ctx context.Context) (apiclient.Result, error) {
	return s.api.Summary(ctx)
}

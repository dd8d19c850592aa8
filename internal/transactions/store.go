package transactions

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/store"
)

// Store keeps one screen's transaction list in sync with the API.
type Store struct {
	api  *API
	list *store.List[Record, View]

	mu      sync.Mutex
	filters Filters
}

// NewStore builds an unloaded store; call Fetch to mount it.
func NewStore(api *API, filters Filters) *Store {
	s := &Store{api: api, filters: filters}
	s.list = store.NewList(s.load, Normalize, "Failed to fetch transactions")
	return s
}

func (s *Store) load(ctx context.Context) ([]Record, store.Meta, error) {
	resp, err := s.api.List(ctx, s.Filters())
	if err != nil {
		return nil, store.Meta{}, err
	}
	return resp.Transactions, resp.Meta, nil
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

// SetFilters replaces the filters and refetches when the page, card or status
// changed. It reports whether a fetch happened.
func (s *Store) SetFilters(ctx context.Context, f Filters) bool {
	s.mu.Lock()
	prev := s.filters
	s.filters = f
	s.mu.Unlock()

	if prev.Page == f.Page && prev.CardID == f.CardID && prev.Status == f.Status {
		return false
	}
	s.Fetch(ctx)
	return true
}

// Snapshot returns the current list state.
func (s *Store) Snapshot() store.Snapshot[View] {
	return s.list.Snapshot()
}

// Create records a transaction and reloads the list.
func (s *Store) Create(ctx context.Context, req CreateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := s.list.Mutate(ctx, "Failed to create transaction", true, func(ctx context.Context) error {
		var err error
		out, err = s.api.Create(ctx, req)
		return err
	})
	return out, err
}

// Refund refunds a transaction and reloads the list.
func (s *Store) Refund(ctx context.Context, id string, amount *decimal.Decimal) (apiclient.Result, error) {
	var out apiclient.Result
	err := s.list.Mutate(ctx, "Failed to refund transaction", true, func(ctx context.Context) error {
		var err error
		out, err = s.api.Refund(ctx, id, amount)
		return err
	})
	return out, err
}

// Summary passes through the spending summary without touching list state.
func (s *Store) Summary(ctx context.Context, days int) (apiclient.Result, error) {
	return s.api.Summary(ctx, days)
}

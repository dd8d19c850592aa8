package emis

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/store"
)

// Store keeps one screen's EMI list in sync with the API.
type Store struct {
	api  *API
	list *store.List[Record, View]

	mu      sync.Mutex
	filters Filters
}

// NewStore builds an unloaded store; call Fetch to mount it.
func NewStore(api *API, filters Filters) *Store {
	s := &Store{api: api, filters: filters}
	s.list = store.NewList(s.load, Normalize, "Failed to fetch EMIs")
	return s
}

func (s *Store) load(ctx context.Context) ([]Record, store.Meta, error) {
	resp, err := s.api.List(ctx, s.Filters())
	if err != nil {
		return nil, store.Meta{}, err
	}
	return resp.EMIs, resp.Meta, nil
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

// Create converts a purchase into an EMI and reloads the list.
func (s *Store) Create(ctx context.Context, req CreateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := s.list.Mutate(ctx, "Failed to create EMI", true, func(ctx context.Context) error {
		var err error
		out, err = s.api.Create(ctx, req)
		return err
	})
	return out, err
}

// Pay records an instalment and reloads the list.
func (s *Store) Pay(ctx context.Context, id string, amount *decimal.Decimal, date string) (apiclient.Result, error) {
	var out apiclient.Result
	err := s.list.Mutate(ctx, "Failed to pay EMI", true, func(ctx context.Context) error {
		var err error
		out, err = s.api.Pay(ctx, id, amount, date)
		return err
	})
	return out, err
}

// PreClose settles an EMI early and reloads the list.
func (s *Store) PreClose(ctx context.Context, id string, amount *decimal.Decimal) (apiclient.Result, error) {
	var out apiclient.Result
	err := s.list.Mutate(ctx, "Failed to pre-close EMI", true, func(ctx context.Context) error {
		var err error
		out, err = s.api.PreClose(ctx, id, amount)
		return err
	})
	return out, err
}

// ToggleAutoPay switches automatic instalments and reloads the list.
func (s *Store) ToggleAutoPay(ctx context.Context, id string, enable bool, day int) error {
	return s.list.Mutate(ctx, "Failed to toggle auto-pay", true, func(ctx context.Context) error {
		_, err := s.api.ToggleAutoPay(ctx, id, enable, day)
		return err
	})
}

// Cancel deletes an EMI and reloads the list.
func (s *Store) Cancel(ctx context.Context, id string) error {
	return s.list.Mutate(ctx, "Failed to cancel EMI", true, func(ctx context.Context) error {
		_, err := s.api.Cancel(ctx, id)
		return err
	})
}

// Calculate prices an EMI without touching list state.
func (s *Store) Calculate(ctx context.Context, req CalculateRequest) (apiclient.Result, error) {
	return s.api.Calculate(ctx, req)
}

// Summary returns the EMI totals without touching list state.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	return s.api.Summary(ctx)
}

// Totals counts active EMIs and sums what is still owed across the loaded
// list.
func (s *Store) Totals() (active int, remaining decimal.Decimal) {
	remaining = decimal.Zero
	for _, e := range s.list.Items() {
		if e.Active() {
			active++
		}
		remaining = remaining.Add(e.RemainingValue)
	}
	return active, remaining
}

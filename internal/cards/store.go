package cards

import (
	"context"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/store"
)

// Store keeps one screen's card list in sync with the API.
type Store struct {
	api  *API
	list *store.List[Record, View]
}

// NewStore builds an unloaded store; call Fetch to mount it.
func NewStore(api *API) *Store {
	s := &Store{api: api}
	s.list = store.NewList(s.load, Normalize, "Failed to fetch cards")
	return s
}

func (s *Store) load(ctx context.Context) ([]Record, store.Meta, error) {
	resp, err := s.api.List(ctx)
	if err != nil {
		return nil, store.Meta{}, err
	}
	return resp.Cards, store.Meta{Total: len(resp.Cards)}, nil
}

// Fetch reloads the cards.
func (s *Store) Fetch(ctx context.Context) {
	s.list.Fetch(ctx)
}

// Snapshot returns the current list state.
func (s *Store) Snapshot() store.Snapshot[View] {
	return s.list.Snapshot()
}

// Cards returns the loaded cards.
func (s *Store) Cards() []View {
	return s.list.Items()
}

// Add creates a card and reloads the list.
func (s *Store) Add(ctx context.Context, req CreateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := s.list.Mutate(ctx, "Failed to add card", true, func(ctx context.Context) error {
		var err error
		out, err = s.api.Create(ctx, req)
		return err
	})
	return out, err
}

// Block freezes a card and reloads the list.
func (s *Store) Block(ctx context.Context, id string) error {
	return s.list.Mutate(ctx, "Failed to block card", true, func(ctx context.Context) error {
		_, err := s.api.Block(ctx, id)
		return err
	})
}

// Unblock reactivates a card and reloads the list.
func (s *Store) Unblock(ctx context.Context, id string) error {
	return s.list.Mutate(ctx, "Failed to unblock card", true, func(ctx context.Context) error {
		_, err := s.api.Unblock(ctx, id)
		return err
	})
}

// UpdatePIN changes a card PIN. The list is not reloaded since nothing
// displayed depends on the PIN.
func (s *Store) UpdatePIN(ctx context.Context, id, pin string) error {
	return s.list.Mutate(ctx, "Failed to update PIN", false, func(ctx context.Context) error {
		_, err := s.api.UpdatePIN(ctx, id, pin)
		return err
	})
}

// Delete removes a card and reloads the list.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.list.Mutate(ctx, "Failed to delete card", true, func(ctx context.Context) error {
		_, err := s.api.Delete(ctx, id)
		return err
	})
}

// Package store holds the state machine shared by every resource store: a
// list of display records with loading, error and pagination state, filled by
// fetching backend records and normalizing them.
package store

import (
	"context"
	"sync"

	"github.com/ccms-app/dashboard/internal/apiclient"
)

// Loader fetches one page of backend records with its envelope metadata.
type Loader[R any] func(ctx context.Context) ([]R, Meta, error)

// List is the per-instance state of one resource list. Items are replaced on
// every successful fetch and never merged.
type List[R, V any] struct {
	load      Loader[R]
	normalize func(R) V
	fallback  string

	mu         sync.Mutex
	items      []V
	inflight   int
	errMsg     string
	pagination Pagination
}

// NewList builds an empty list. fetchFallback is the error shown when a fetch
// fails without a server message.
func NewList[R, V any](load Loader[R], normalize func(R) V, fetchFallback string) *List[R, V] {
	return &List[R, V]{
		load:       load,
		normalize:  normalize,
		fallback:   fetchFallback,
		items:      []V{},
		pagination: DefaultPagination(),
	}
}

// Fetch reloads the list. Failures are recorded in the snapshot, the items
// are emptied and the pagination reset so stale data never sits next to an
// error.
func (l *List[R, V]) Fetch(ctx context.Context) {
	l.begin()
	records, meta, err := l.load(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inflight--
	if err != nil {
		l.errMsg = apiclient.MessageOr(err, l.fallback)
		l.items = []V{}
		l.pagination = DefaultPagination()
		return
	}

	items := make([]V, 0, len(records))
	for _, r := range records {
		items = append(items, l.normalize(r))
	}
	l.items = items
	l.pagination = meta.Pagination()
}

// Mutate runs call as a tracked operation. On failure the error message is
// recorded, the items are left untouched and the error is returned. On
// success the list is refetched when refetch is set.
func (l *List[R, V]) Mutate(ctx context.Context, fallback string, refetch bool, call func(ctx context.Context) error) error {
	l.begin()
	defer l.end()

	if err := call(ctx); err != nil {
		l.SetError(apiclient.MessageOr(err, fallback))
		return err
	}
	if refetch {
		l.Fetch(ctx)
	}
	return nil
}

// Update applies fn to the current items without a network call.
func (l *List[R, V]) Update(fn func(items []V, p Pagination) ([]V, Pagination)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	current := make([]V, len(l.items))
	copy(current, l.items)
	l.items, l.pagination = fn(current, l.pagination)
}

// SetError records msg as the last failure.
func (l *List[R, V]) SetError(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errMsg = msg
}

// Snapshot returns a copy of the current state.
func (l *List[R, V]) Snapshot() Snapshot[V] {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]V, len(l.items))
	copy(items, l.items)
	return Snapshot[V]{
		Items:      items,
		Loading:    l.inflight > 0,
		Error:      l.errMsg,
		Pagination: l.pagination,
	}
}

// Items returns a copy of the current items.
func (l *List[R, V]) Items() []V {
	return l.Snapshot().Items
}

func (l *List[R, V]) begin() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inflight++
	l.errMsg = ""
}

func (l *List[R, V]) end() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inflight--
}

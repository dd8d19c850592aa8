package cibil

import (
	"context"
	"net/http"
	"sync"

	"github.com/ccms-app/dashboard/internal/apiclient"
)

// Snapshot is a point-in-time copy of the score state. Current is nil when
// the user has no score on record.
type Snapshot struct {
	Current *View  `json:"current"`
	History []View `json:"history"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Store holds the current score and, once requested, the score history.
type Store struct {
	api *API

	mu       sync.Mutex
	current  *View
	history  []View
	inflight int
	errMsg   string
}

// NewStore builds an unloaded store; call Fetch to mount it.
func NewStore(api *API) *Store {
	return &Store{api: api, history: []View{}}
}

func (s *Store) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight++
	s.errMsg = ""
}

func (s *Store) end(errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if errMsg != "" {
		s.errMsg = errMsg
	}
}

// Fetch reloads the current score. A 404 means no score exists yet and is
// not reported as an error.
func (s *Store) Fetch(ctx context.Context) {
	s.begin()
	rec, err := s.api.Current(ctx)

	var errMsg string
	s.mu.Lock()
	if err != nil {
		s.current = nil
		if apiclient.StatusOf(err) != http.StatusNotFound {
			errMsg = apiclient.MessageOr(err, "Failed to fetch CIBIL score")
		}
	} else {
		v := Normalize(rec)
		s.current = &v
	}
	s.mu.Unlock()
	s.end(errMsg)
}

// FetchHistory loads the score history with f.
func (s *Store) FetchHistory(ctx context.Context, f Filters) {
	s.begin()
	resp, err := s.api.List(ctx, f)

	var errMsg string
	s.mu.Lock()
	if err != nil {
		errMsg = apiclient.MessageOr(err, "Failed to fetch score history")
		s.history = []View{}
	} else {
		history := make([]View, 0, len(resp.Scores))
		for _, r := range resp.Scores {
			history = append(history, Normalize(r))
		}
		s.history = history
	}
	s.mu.Unlock()
	s.end(errMsg)
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		History: append([]View{}, s.history...),
		Loading: s.inflight > 0,
		Error:   s.errMsg,
	}
	if s.current != nil {
		c := *s.current
		snap.Current = &c
	}
	return snap
}

// Score returns the current score, or zero when there is none.
func (s *Store) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	return s.current.Score
}

func (s *Store) mutate(ctx context.Context, fallback string, call func(ctx context.Context) error) error {
	s.begin()
	if err := call(ctx); err != nil {
		s.end(apiclient.MessageOr(err, fallback))
		return err
	}
	s.Fetch(ctx)
	s.end("")
	return nil
}

// Create records a score report and reloads the current score.
func (s *Store) Create(ctx context.Context, req CreateRequest) (apiclient.Result, error) {
	var out apiclient.Result
	err := s.mutate(ctx, "Failed to create CIBIL score", func(ctx context.Context) error {
		var err error
		out, err = s.api.Create(ctx, req)
		return err
	})
	return out, err
}

// Verify marks a report verified and reloads the current score.
func (s *Store) Verify(ctx context.Context, id, date string) error {
	return s.mutate(ctx, "Failed to verify score", func(ctx context.Context) error {
		_, err := s.api.Verify(ctx, id, date)
		return err
	})
}

// Trend passes through the score trend.
func (s *Store) Trend(ctx context.Context, days int) (apiclient.Result, error) {
	return s.api.Trend(ctx, days)
}

// Summary passes through the score overview.
func (s *Store) Summary(ctx context.Context) (apiclient.Result, error) {
	return s.api.Summary(ctx)
}

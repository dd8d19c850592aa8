// Package apitest runs a scripted stand-in for the card-management API so
// resource packages can be tested against real HTTP round trips.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/logging"
	"github.com/ccms-app/dashboard/internal/session"
)

// Token is the bearer token Client stores before any request is made.
const Token = "test-token"

// Request is one call received by the fake API.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   []byte
	Header http.Header
}

// Decode unmarshals the request body into v, failing the test on error.
func (r Request) Decode(t testing.TB, v any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("decode %s %s body %q: %v", r.Method, r.Path, r.Body, err)
	}
}

// Server records every request and answers from handlers registered per
// method and path. Unregistered routes answer 404.
type Server struct {
	t   testing.TB
	srv *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []Request
}

// New starts a server that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{t: t, routes: make(map[string]http.HandlerFunc)}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.srv.Close)
	return s
}

// URL is the base URL of the fake API.
func (s *Server) URL() string {
	return s.srv.URL
}

// Handle registers h for method and path, replacing any earlier handler.
func (s *Server) Handle(method, path string, h http.HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[method+" "+path] = h
}

// JSON registers a handler that always answers status with body encoded as JSON.
func (s *Server) JSON(method, path string, status int, body any) {
	s.Handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, status, body)
	})
}

// Requests returns every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Count returns how many requests hit method and path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent request for method and path.
func (s *Server) Last(method, path string) Request {
	s.t.Helper()
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i]
		}
	}
	s.t.Fatalf("no %s %s request recorded", method, path)
	return Request{}
}

// Client returns an API client pointed at the server with Token already stored.
func (s *Server) Client() *apiclient.Client {
	s.t.Helper()
	sessions := session.NewMemoryStore()
	if err := sessions.SetToken(context.Background(), Token); err != nil {
		s.t.Fatalf("seed token: %v", err)
	}
	return apiclient.New(apiclient.Options{
		BaseURL:  s.URL(),
		Sessions: sessions,
		Logger:   logging.Discard(),
	})
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	r.Body = io.NopCloser(bytes.NewReader(body))

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   body,
		Header: r.Header.Clone(),
	})
	h, ok := s.routes[r.Method+" "+r.URL.Path]
	s.mu.Unlock()

	if !ok {
		WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		return
	}
	h(w, r)
}

// WriteJSON writes body as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

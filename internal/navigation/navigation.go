// Package navigation models the screen the user is currently on and lets
// lower layers request a move to another screen.
package navigation

import (
	"context"
	"strings"
	"sync"
)

// SignInPath is the sign-in screen.
const SignInPath = "/auth"

// Navigator exposes the current location and accepts redirects.
type Navigator interface {
	Path() string
	Redirect(path string)
}

// Recorder is a Navigator that remembers the last redirect requested while
// serving one screen.
type Recorder struct {
	mu     sync.Mutex
	path   string
	target string
}

// NewRecorder starts a recorder positioned at path.
func NewRecorder(path string) *Recorder {
	return &Recorder{path: path}
}

// Path returns the location the recorder was created at.
func (r *Recorder) Path() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.path
}

// Redirect records target as the pending destination. The last call wins.
func (r *Recorder) Redirect(target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.target = target
}

// Target returns the pending destination and whether one was requested.
func (r *Recorder) Target() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.target, r.target != ""
}

// OnSignIn reports whether the navigator already shows the sign-in screen.
func OnSignIn(n Navigator) bool {
	return strings.Contains(n.Path(), SignInPath)
}

type ctxKey struct{}

// WithNavigator attaches n to ctx.
func WithNavigator(ctx context.Context, n Navigator) context.Context {
	return context.WithValue(ctx, ctxKey{}, n)
}

// FromContext returns the navigator attached to ctx, or a detached one that
// ignores redirects when none is present (startup, background work).
func FromContext(ctx context.Context) Navigator {
	if ctx != nil {
		if n, ok := ctx.Value(ctxKey{}).(Navigator); ok && n != nil {
			return n
		}
	}
	return detached{}
}

type detached struct{}

func (detached) Path() string    { return "" }
func (detached) Redirect(string) {}

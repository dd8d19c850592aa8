// Package auth holds the signed-in user for the whole dashboard.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/logging"
	"github.com/ccms-app/dashboard/internal/navigation"
	"github.com/ccms-app/dashboard/internal/session"
	"github.com/ccms-app/dashboard/internal/users"
)

// ErrSignedOut is returned by operations that need a signed-in user.
var ErrSignedOut = errors.New("not signed in")

// UserAPI is the part of the users API the context depends on.
type UserAPI interface {
	Login(ctx context.Context, username, password string) (users.AuthResponse, error)
	Signup(ctx context.Context, req users.SignupRequest) (users.AuthResponse, error)
	CurrentUser(ctx context.Context) (users.Record, error)
	UpdateProfile(ctx context.Context, id string, update users.ProfileUpdate) (users.Record, error)
}

// Context is created once at startup and shared by every handler.
type Context struct {
	api      UserAPI
	sessions session.Store
	logger   *slog.Logger

	mu      sync.RWMutex
	user    *users.User
	loading bool
}

// NewContext binds the context to the users API and the client's credential
// store. A 401 seen by client signs the user out.
func NewContext(api UserAPI, client *apiclient.Client, logger *slog.Logger) *Context {
	c := &Context{
		api:      api,
		sessions: client.Sessions(),
		logger:   logging.Component(logger, "auth"),
		loading:  true,
	}
	client.OnSessionExpired(func(context.Context) {
		c.setUser(nil)
		c.logger.Info("session expired")
	})
	return c
}

// Init restores a cached user and confirms it with the API. Any failure
// purges the stored credentials.
func (c *Context) Init(ctx context.Context) {
	defer c.setLoading(false)

	raw, err := c.sessions.User(ctx)
	if err != nil {
		c.logger.Warn("read cached user", slog.Any("error", err))
		return
	}
	if len(raw) == 0 {
		return
	}

	var cached users.User
	if err := json.Unmarshal(raw, &cached); err != nil {
		c.logger.Warn("cached user unreadable", slog.Any("error", err))
		c.clear(ctx)
		return
	}
	c.setUser(&cached)

	rec, err := c.api.CurrentUser(ctx)
	if err != nil {
		c.logger.Info("cached session rejected", slog.Any("error", err))
		c.clear(ctx)
		c.setUser(nil)
		return
	}
	c.remember(ctx, users.Normalize(rec))
}

// Login signs in and caches the token and user.
func (c *Context) Login(ctx context.Context, username, password string) error {
	resp, err := c.api.Login(ctx, username, password)
	if err != nil {
		return errors.New(apiclient.MessageOr(err, "Login failed"))
	}
	return c.start(ctx, resp)
}

// Signup registers and signs in.
func (c *Context) Signup(ctx context.Context, req users.SignupRequest) error {
	resp, err := c.api.Signup(ctx, req)
	if err != nil {
		return errors.New(apiclient.MessageOr(err, "Signup failed"))
	}
	return c.start(ctx, resp)
}

// Logout forgets the user and sends the browser to the sign-in screen.
func (c *Context) Logout(ctx context.Context) {
	c.clear(ctx)
	c.setUser(nil)
	navigation.FromContext(ctx).Redirect(navigation.SignInPath)
}

// UpdateUser saves profile changes. It does nothing when signed out.
func (c *Context) UpdateUser(ctx context.Context, update users.ProfileUpdate) error {
	current := c.User()
	if current == nil {
		return nil
	}
	rec, err := c.api.UpdateProfile(ctx, current.ID, update)
	if err != nil {
		return errors.New(apiclient.MessageOr(err, "Update failed"))
	}
	c.remember(ctx, users.Normalize(rec))
	return nil
}

// RefreshUser reloads the user from the API.
func (c *Context) RefreshUser(ctx context.Context) error {
	rec, err := c.api.CurrentUser(ctx)
	if err != nil {
		return errors.New(apiclient.MessageOr(err, "Refresh failed"))
	}
	c.remember(ctx, users.Normalize(rec))
	return nil
}

// User returns a copy of the signed-in user, or nil.
func (c *Context) User() *users.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Loading reports whether Init has not finished yet.
func (c *Context) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Context) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user != nil
}

func (c *Context) start(ctx context.Context, resp users.AuthResponse) error {
	if err := c.sessions.SetToken(ctx, resp.Token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	u := users.Normalize(resp.User)
	c.remember(ctx, u)
	c.logger.Info("signed in", slog.String("user_id", u.ID))
	return nil
}

// remember replaces the in-memory user and its cached copy.
func (c *Context) remember(ctx context.Context, u users.User) {
	c.setUser(&u)
	raw, err := json.Marshal(u)
	if err != nil {
		c.logger.Error("encode user", slog.Any("error", err))
		return
	}
	if err := c.sessions.SetUser(ctx, raw); err != nil {
		c.logger.Warn("cache user", slog.Any("error", err))
	}
}

func (c *Context) clear(ctx context.Context) {
	if err := c.sessions.Clear(ctx); err != nil {
		c.logger.Error("clear session", slog.Any("error", err))
	}
}

func (c *Context) setUser(u *users.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = u
}

func (c *Context) setLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
}

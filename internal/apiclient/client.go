// Package apiclient is the single HTTP adapter between the dashboard and the
// card-management REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ccms-app/dashboard/internal/logging"
	"github.com/ccms-app/dashboard/internal/navigation"
	"github.com/ccms-app/dashboard/internal/session"
)

const (
	requestIDHeader = "X-Request-ID"
	defaultTimeout  = 30 * time.Second
	maxErrorBody    = 64 << 10
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Sessions   session.Store
	Logger     *slog.Logger
}

// Client issues JSON requests against the API base URL, attaching the stored
// bearer token and treating any 401 as the end of the session.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions session.Store
	logger   *slog.Logger

	mu        sync.RWMutex
	onExpired []func(ctx context.Context)
}

// New builds a Client. A nil session store means requests go out unauthenticated.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = session.NewMemoryStore()
	}
	return &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		http:     httpClient,
		sessions: sessions,
		logger:   logging.Component(opts.Logger, "apiclient"),
	}
}

// Sessions exposes the credential store the client reads its token from.
func (c *Client) Sessions() session.Store {
	return c.sessions
}

// OnSessionExpired registers fn to run after a 401 cleared the credentials.
func (c *Client) OnSessionExpired(fn func(ctx context.Context)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onExpired = append(c.onExpired, fn)
}

// Get issues a GET with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT with a JSON body; body may be nil.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

// Do sends one request and decodes a JSON response into out (ignored when
// nil). Non-2xx responses become *Error.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Stream sends one request and hands the open response body to the caller,
// who must close it.
func (c *Client) Stream(ctx context.Context, method, path string, body any) (io.ReadCloser, error) {
	resp, err := c.send(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// Health checks the API's /health endpoint, which is served beside the /api
// prefix rather than under it. It sends no credentials.
func (c *Client) Health(ctx context.Context) error {
	endpoint := strings.TrimSuffix(c.baseURL, "/api") + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build health check: %w", err)
	}
	req.Header.Set(requestIDHeader, requestIDFrom(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return &Error{Status: resp.StatusCode, Method: http.MethodGet, Path: "/health"}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, requestIDFrom(ctx))

	token, err := c.sessions.Token(ctx)
	if err != nil {
		c.logger.Warn("read session token", slog.Any("error", err))
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	c.logger.Debug("api request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Bool("has_token", token != ""),
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("api transport error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Debug("api response",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)),
		)
		return resp, nil
	}

	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &Error{Status: resp.StatusCode, Message: serverMessage(raw), Method: method, Path: path}
	c.logger.Warn("api error",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.String("message", apiErr.Message),
		slog.Duration("duration", time.Since(start)),
	)

	if apiErr.Unauthorized() {
		c.expire(ctx)
	}
	return nil, apiErr
}

// expire clears stored credentials and sends the user to the sign-in screen
// unless they are already there.
func (c *Client) expire(ctx context.Context) {
	if err := c.sessions.Clear(ctx); err != nil {
		c.logger.Error("clear session after 401", slog.Any("error", err))
	}

	c.mu.RLock()
	hooks := append([]func(context.Context){}, c.onExpired...)
	c.mu.RUnlock()
	for _, fn := range hooks {
		fn(ctx)
	}

	nav := navigation.FromContext(ctx)
	if !navigation.OnSignIn(nav) {
		nav.Redirect(navigation.SignInPath)
	}
}

type requestIDKey struct{}

// WithRequestID makes outgoing requests reuse id as their X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

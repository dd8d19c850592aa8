// Package session persists the signed-in user's credentials: the bearer token
// issued by the API and the cached display record of the user.
package session

import "context"

const (
	// TokenKey names the stored bearer token.
	TokenKey = "auth_token"
	// UserKey names the stored user record.
	UserKey = "user_data"
)

// Store holds credentials between requests and, depending on the backend,
// across restarts. Missing values are reported as empty, not as errors.
type Store interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	User(ctx context.Context) ([]byte, error)
	SetUser(ctx context.Context, user []byte) error
	// Clear removes both the token and the cached user.
	Clear(ctx context.Context) error
}

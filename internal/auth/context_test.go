package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/ccms-app/dashboard/internal/apiclient"
	"github.com/ccms-app/dashboard/internal/apiclient/apitest"
	"github.com/ccms-app/dashboard/internal/logging"
	"github.com/ccms-app/dashboard/internal/navigation"
	"github.com/ccms-app/dashboard/internal/users"
)

func userRecord() map[string]any {
	return map[string]any{
		"_id":         "u1",
		"username":    "asha",
		"email":       "asha@example.com",
		"first_name":  "Asha",
		"last_name":   "Rao",
		"cibil_score": 782,
	}
}

func newContext(t *testing.T, srv *apitest.Server) (*Context, *apiclient.Client) {
	t.Helper()
	client := srv.Client()
	if err := client.Sessions().Clear(context.Background()); err != nil {
		t.Fatalf("clear: %v", err)
	}
	return NewContext(users.NewAPI(client), client, logging.Discard()), client
}

func TestLoginStoresTokenAndUser(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/users/login", http.StatusOK, map[string]any{"token": "jwt-1", "user": userRecord()})

	ac, client := newContext(t, srv)
	ctx := context.Background()
	if err := ac.Login(ctx, "asha", "pw123456"); err != nil {
		t.Fatalf("login: %v", err)
	}

	u := ac.User()
	if !ac.IsAuthenticated() || u.ID != "u1" || u.Name != "Asha Rao" || u.CibilScore != 782 {
		t.Fatalf("unexpected user %+v", u)
	}
	token, _ := client.Sessions().Token(ctx)
	if token != "jwt-1" {
		t.Fatalf("expected stored token, got %q", token)
	}
	raw, _ := client.Sessions().User(ctx)
	var cached users.User
	if err := json.Unmarshal(raw, &cached); err != nil || cached.ID != "u1" {
		t.Fatalf("unexpected cached user %s (%v)", raw, err)
	}
}

func TestLoginErrorMessages(t *testing.T) {
	srv := apitest.New(t)
	ac, _ := newContext(t, srv)
	ctx := context.Background()

	srv.JSON(http.MethodPost, "/users/login", http.StatusBadRequest, map[string]any{"error": "Invalid credentials"})
	if err := ac.Login(ctx, "asha", "wrong"); err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("expected server message, got %v", err)
	}

	srv.JSON(http.MethodPost, "/users/login", http.StatusInternalServerError, map[string]any{})
	if err := ac.Login(ctx, "asha", "wrong"); err == nil || err.Error() != "Login failed" {
		t.Fatalf("expected fallback message, got %v", err)
	}
	if ac.IsAuthenticated() {
		t.Fatal("failed login must not sign in")
	}
}

func TestInitRevalidatesCachedUser(t *testing.T) {
	srv := apitest.New(t)
	updated := userRecord()
	updated["cibil_score"] = 801
	srv.JSON(http.MethodGet, "/users/me", http.StatusOK, updated)

	ac, client := newContext(t, srv)
	ctx := context.Background()
	_ = client.Sessions().SetToken(ctx, "jwt-1")
	_ = client.Sessions().SetUser(ctx, []byte(`{"id":"u1","name":"Asha Rao","cibilScore":782}`))

	if !ac.Loading() {
		t.Fatal("context should be loading before Init")
	}
	ac.Init(ctx)
	if ac.Loading() {
		t.Fatal("Init should finish loading")
	}
	if u := ac.User(); u == nil || u.CibilScore != 801 {
		t.Fatalf("expected refreshed user, got %+v", u)
	}
}

func TestInitPurgesRejectedSession(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodGet, "/users/me", http.StatusInternalServerError, map[string]any{"error": "boom"})

	ac, client := newContext(t, srv)
	ctx := context.Background()
	_ = client.Sessions().SetToken(ctx, "jwt-1")
	_ = client.Sessions().SetUser(ctx, []byte(`{"id":"u1","name":"Asha Rao"}`))

	ac.Init(ctx)
	if ac.IsAuthenticated() {
		t.Fatal("rejected session should sign out")
	}
	if token, _ := client.Sessions().Token(ctx); token != "" {
		t.Fatalf("token should be purged, got %q", token)
	}
}

func TestInitWithoutCachedUserMakesNoRequest(t *testing.T) {
	srv := apitest.New(t)
	ac, _ := newContext(t, srv)
	ac.Init(context.Background())
	if ac.IsAuthenticated() || ac.Loading() || len(srv.Requests()) != 0 {
		t.Fatalf("unexpected state: auth=%v loading=%v requests=%d", ac.IsAuthenticated(), ac.Loading(), len(srv.Requests()))
	}
}

func TestLogoutRedirectsToSignIn(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/users/login", http.StatusOK, map[string]any{"token": "jwt-1", "user": userRecord()})
	ac, client := newContext(t, srv)

	rec := navigation.NewRecorder("/dashboard")
	ctx := navigation.WithNavigator(context.Background(), rec)
	if err := ac.Login(ctx, "asha", "pw123456"); err != nil {
		t.Fatalf("login: %v", err)
	}
	ac.Logout(ctx)

	if ac.IsAuthenticated() {
		t.Fatal("expected signed out")
	}
	if target, ok := rec.Target(); !ok || target != navigation.SignInPath {
		t.Fatalf("expected redirect to sign-in, got %q", target)
	}
	if token, _ := client.Sessions().Token(ctx); token != "" {
		t.Fatalf("token should be cleared, got %q", token)
	}
}

func TestUpdateUser(t *testing.T) {
	srv := apitest.New(t)
	ac, _ := newContext(t, srv)
	ctx := context.Background()

	if err := ac.UpdateUser(ctx, users.ProfileUpdate{LastName: "Iyer"}); err != nil {
		t.Fatalf("signed-out update should be a no-op, got %v", err)
	}
	if len(srv.Requests()) != 0 {
		t.Fatal("signed-out update must not call the API")
	}

	srv.JSON(http.MethodPost, "/users/login", http.StatusOK, map[string]any{"token": "jwt-1", "user": userRecord()})
	updated := userRecord()
	updated["last_name"] = "Iyer"
	srv.JSON(http.MethodPut, "/users/u1", http.StatusOK, updated)

	if err := ac.Login(ctx, "asha", "pw123456"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := ac.UpdateUser(ctx, users.ProfileUpdate{LastName: "Iyer"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if ac.User().Name != "Asha Iyer" {
		t.Fatalf("unexpected user %+v", ac.User())
	}
}

func TestSessionExpiryClearsUser(t *testing.T) {
	srv := apitest.New(t)
	srv.JSON(http.MethodPost, "/users/login", http.StatusOK, map[string]any{"token": "jwt-1", "user": userRecord()})
	srv.JSON(http.MethodGet, "/users/me", http.StatusUnauthorized, map[string]any{"error": "Token expired"})
	ac, _ := newContext(t, srv)

	rec := navigation.NewRecorder("/profile")
	ctx := navigation.WithNavigator(context.Background(), rec)
	if err := ac.Login(ctx, "asha", "pw123456"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := ac.RefreshUser(ctx); err == nil || err.Error() != "Token expired" {
		t.Fatalf("expected expiry error, got %v", err)
	}
	if ac.IsAuthenticated() {
		t.Fatal("401 should clear the user")
	}
	if target, _ := rec.Target(); target != navigation.SignInPath {
		t.Fatalf("expected redirect to sign-in, got %q", target)
	}
}

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ccms-app/dashboard/internal/apiclient/apitest"
	"github.com/ccms-app/dashboard/internal/auth"
	"github.com/ccms-app/dashboard/internal/config"
	"github.com/ccms-app/dashboard/internal/logging"
	"github.com/ccms-app/dashboard/internal/routes"
	"github.com/ccms-app/dashboard/internal/users"
)

func TestNewRequiresClient(t *testing.T) {
	if _, err := New(config.Config{}, routes.Deps{Logger: logging.Discard()}); err == nil {
		t.Fatal("expected error without an API client")
	}
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	api := apitest.New(t)
	api.JSON(http.MethodPost, "/users/login", http.StatusOK, map[string]any{
		"token": "tok",
		"user":  map[string]any{"_id": "u1", "first_name": "Asha"},
	})
	client := api.Client()
	authCtx := auth.NewContext(users.NewAPI(client), client, logging.Discard())
	if err := authCtx.Login(context.Background(), "asha", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	srv, err := New(config.Config{AppName: "test", CORSOrigins: "*", APITimeout: time.Second}, routes.Deps{
		Logger: logging.Discard(),
		Client: client,
		Auth:   authCtx,
	})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	resp, err := srv.App().Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound || body["error"] == "" {
		t.Fatalf("expected JSON 404, got %d %v", resp.StatusCode, body)
	}
}

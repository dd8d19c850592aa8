package session

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	token, err := store.Token(ctx)
	if err != nil || token != "" {
		t.Fatalf("expected empty token, got %q (%v)", token, err)
	}
	user, err := store.User(ctx)
	if err != nil || user != nil {
		t.Fatalf("expected no user, got %s (%v)", user, err)
	}

	if err := store.SetToken(ctx, "tok-123"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if err := store.SetUser(ctx, []byte(`{"id":"u1"}`)); err != nil {
		t.Fatalf("set user: %v", err)
	}

	if token, _ := store.Token(ctx); token != "tok-123" {
		t.Fatalf("expected stored token, got %q", token)
	}
	if user, _ := store.User(ctx); string(user) != `{"id":"u1"}` {
		t.Fatalf("expected stored user, got %s", user)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if token, _ := store.Token(ctx); token != "" {
		t.Fatalf("token survived clear: %q", token)
	}
	if user, _ := store.User(ctx); user != nil {
		t.Fatalf("user survived clear: %s", user)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	exerciseStore(t, NewRedisStore(client, "test", time.Hour))
}

func TestRedisStoreExpiry(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, "test", time.Minute)
	ctx := context.Background()
	if err := store.SetToken(ctx, "short-lived"); err != nil {
		t.Fatalf("set token: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if token, _ := store.Token(ctx); token != "" {
		t.Fatalf("expected token to expire, got %q", token)
	}
}

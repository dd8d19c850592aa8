package infra

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/ccms-app/dashboard/internal/config"
	"github.com/ccms-app/dashboard/internal/session"
)

func TestOpenWithoutURLs(t *testing.T) {
	b, err := Open(context.Background(), config.Config{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close(nil)
	if b.DB != nil || b.Cache != nil {
		t.Fatal("expected no backends without URLs")
	}

	store, err := b.Sessions(context.Background(), config.Config{SessionStore: config.SessionStoreMemory})
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if _, ok := store.(*session.RedisStore); ok {
		t.Fatal("expected the in-process store")
	}
}

func TestRedisSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Config{
		AppEnv:       "test",
		RedisURL:     "redis://" + mr.Addr(),
		SessionStore: config.SessionStoreRedis,
		SessionTTL:   time.Hour,
	}

	b, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close(nil)

	store, err := b.Sessions(context.Background(), cfg)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if err := store.SetToken(context.Background(), "tok"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if !mr.Exists("ccms:session:v1:test:" + session.TokenKey) {
		t.Fatalf("expected namespaced key, have %v", mr.Keys())
	}
}

func TestPostgresSessionsNeedDatabase(t *testing.T) {
	b := &Backends{}
	if _, err := b.Sessions(context.Background(), config.Config{SessionStore: config.SessionStorePostgres}); err == nil {
		t.Fatal("expected error without a database")
	}
}

func TestOpenRejectsBadRedisURL(t *testing.T) {
	if _, err := Open(context.Background(), config.Config{RedisURL: "not-a-url"}); err == nil {
		t.Fatal("expected parse error")
	}
}

package infra

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ccms-app/dashboard/internal/config"
	"github.com/ccms-app/dashboard/internal/session"
)

// Backends holds the optional stores the dashboard can run with. Either
// field is nil when its URL is not configured.
type Backends struct {
	DB    *pgxpool.Pool
	Cache *redis.Client
}

// Open connects to every backend that has a URL configured.
func Open(ctx context.Context, cfg config.Config) (*Backends, error) {
	b := &Backends{}
	if cfg.DatabaseURL != "" {
		db, err := NewPostgresPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		b.DB = db
	}
	if cfg.RedisURL != "" {
		cache, err := NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			b.Close(nil)
			return nil, err
		}
		b.Cache = cache
	}
	return b, nil
}

// Sessions returns the credential store selected by cfg.SessionStore.
func (b *Backends) Sessions(ctx context.Context, cfg config.Config) (session.Store, error) {
	namespace := cfg.AppEnv
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		if b.Cache == nil {
			return nil, fmt.Errorf("redis session store needs REDIS_URL")
		}
		return session.NewRedisStore(b.Cache, namespace, cfg.SessionTTL), nil
	case config.SessionStorePostgres:
		if b.DB == nil {
			return nil, fmt.Errorf("postgres session store needs DATABASE_URL")
		}
		store := session.NewPostgresStore(b.DB, namespace, cfg.SessionTTL)
		if err := store.Migrate(ctx); err != nil {
			return nil, fmt.Errorf("migrate sessions: %w", err)
		}
		return store, nil
	default:
		return session.NewMemoryStore(), nil
	}
}

// Close releases every open backend.
func (b *Backends) Close(logger *slog.Logger) {
	if b.DB != nil {
		b.DB.Close()
	}
	if b.Cache != nil {
		if err := b.Cache.Close(); err != nil && logger != nil {
			logger.Warn("close redis", "error", err)
		}
	}
}

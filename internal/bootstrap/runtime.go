// Package bootstrap wires the runtime dependencies shared by the command
// line entry points.
package bootstrap

import (
	"context"
	"fmt"

	"agora/internal/cache"
	"agora/internal/config"
	"agora/internal/database"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	RunMigrations bool
}

// InitRuntime connects to the database, initializes Redis and optionally
// applies pending migrations. Redis being unreachable is not fatal; the
// cache layer degrades to pass-through.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	if opts.RunMigrations {
		if err := database.RunMigrations(context.Background(), db); err != nil {
			return nil, nil, fmt.Errorf("migrations failed: %w", err)
		}
	}

	return db, cache.GetClient(), nil
}

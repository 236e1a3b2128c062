package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/portfolio-admin/admin-backend/config"
	"github.com/portfolio-admin/admin-backend/internal/auth/repository"
	"github.com/portfolio-admin/admin-backend/internal/auth/service"
)

// SessionBackend is a session store that can report its own health.
type SessionBackend interface {
	service.SessionStore
	Ping(ctx context.Context) error
}

type SessionOptions struct {
	PingTO     time.Duration
	SweepEvery string
}

// OpenSessions connects to Redis when REDIS_ADDR is set and falls back to an
// in-process store swept by cron otherwise. The returned func releases
// whatever was opened.
func OpenSessions(ctx context.Context, cfg config.RedisConfig, opt SessionOptions, logger *slog.Logger) (SessionBackend, func(), error) {
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}
	if opt.SweepEvery == "" {
		opt.SweepEvery = "@every 1m"
	}

	if cfg.Addr == "" {
		repo := repository.NewMemorySessionRepository()
		c := cron.New()
		if _, err := repo.ScheduleSweep(c, opt.SweepEvery); err != nil {
			return nil, nil, fmt.Errorf("session sweep: %w", err)
		}
		c.Start()
		logger.Info("using in-memory sessions", "sweep", opt.SweepEvery)
		return repo, func() { <-c.Stop().Done() }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, opt.PingTO)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info("using redis sessions", "addr", cfg.Addr)

	return repository.NewSessionRepository(client), func() { _ = client.Close() }, nil
}

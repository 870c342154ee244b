// Package idempotency lets clients safely retry create requests that carry an
// Idempotency-Key header.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/config"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/logger"
)

// RedisGuard implements port.IdempotencyGuard. The id produced for a key is
// cached for ttl; concurrent requests with the same key are serialised by a
// redislock lock and the loser gets domain.ErrIdempotencyInProgress.
type RedisGuard struct {
	rdb     redis.UniversalClient
	locker  *redislock.Client
	ttl     time.Duration
	lockTTL time.Duration
	log     logrus.FieldLogger
}

// NewRedisGuard creates a RedisGuard on top of rdb.
func NewRedisGuard(rdb redis.UniversalClient, ttl, lockTTL time.Duration, log logrus.FieldLogger) *RedisGuard {
	return &RedisGuard{
		rdb:     rdb,
		locker:  redislock.New(rdb),
		ttl:     ttl,
		lockTTL: lockTTL,
		log:     log,
	}
}

// NewClient opens a Redis client from cfg and checks it with PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

func resultKey(tenantID uuid.UUID, key string) string {
	return fmt.Sprintf("idem:%s:%s", tenantID, key)
}

func lockKey(tenantID uuid.UUID, key string) string {
	return fmt.Sprintf("lock:idem:%s:%s", tenantID, key)
}

// Do runs fn unless a result for (tenantID, key) is already cached.
func (g *RedisGuard) Do(ctx context.Context, tenantID uuid.UUID, key string, fn func(ctx context.Context) (uuid.UUID, error)) (uuid.UUID, bool, error) {
	if id, ok, err := g.cached(ctx, tenantID, key); err != nil || ok {
		return id, ok, err
	}

	lock, err := g.locker.Obtain(ctx, lockKey(tenantID, key), g.lockTTL, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return uuid.Nil, false, domain.ErrIdempotencyInProgress
	} else if err != nil {
		logger.LogError(g.log, "idempotency", "Do", "obtaining lock", key, err)
		return uuid.Nil, false, err
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			logger.LogError(g.log, "idempotency", "Do", "releasing lock", key, err)
		}
	}()

	// The previous holder may have finished between the first read and Obtain.
	if id, ok, err := g.cached(ctx, tenantID, key); err != nil || ok {
		return id, ok, err
	}

	id, err := fn(ctx)
	if err != nil {
		return uuid.Nil, false, err
	}
	if err := g.rdb.Set(ctx, resultKey(tenantID, key), id.String(), g.ttl).Err(); err != nil {
		// The write already committed; a replay will create a duplicate.
		logger.LogError(g.log, "idempotency", "Do", "caching result", key, err)
	}
	return id, false, nil
}

func (g *RedisGuard) cached(ctx context.Context, tenantID uuid.UUID, key string) (uuid.UUID, bool, error) {
	v, err := g.rdb.Get(ctx, resultKey(tenantID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("idempotency lookup: %w", err)
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

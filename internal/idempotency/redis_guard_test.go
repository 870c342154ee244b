package idempotency_test

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/config"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/idempotency"
)

// Runs against a real Redis when NAVODITA_TEST_REDIS_ADDR is set, e.g. localhost:6379.
func newGuard(t *testing.T) *idempotency.RedisGuard {
	t.Helper()
	addr := os.Getenv("NAVODITA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("NAVODITA_TEST_REDIS_ADDR not set")
	}
	rdb, err := idempotency.NewClient(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	return idempotency.NewRedisGuard(rdb, time.Minute, 5*time.Second, log)
}

func TestRedisGuard_ReplaysCachedID(t *testing.T) {
	g := newGuard(t)
	ctx := context.Background()
	tenantID, want := uuid.New(), uuid.New()

	id, replayed, err := g.Do(ctx, tenantID, "pay-1", func(context.Context) (uuid.UUID, error) { return want, nil })
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, want, id)

	id, replayed, err = g.Do(ctx, tenantID, "pay-1", func(context.Context) (uuid.UUID, error) {
		t.Fatal("fn must not run on replay")
		return uuid.Nil, nil
	})
	require.NoError(t, err)
	assert.True(t, replayed)
	assert.Equal(t, want, id)
}

func TestRedisGuard_FailureIsNotCached(t *testing.T) {
	g := newGuard(t)
	ctx := context.Background()
	tenantID := uuid.New()
	boom := errors.New("boom")

	_, _, err := g.Do(ctx, tenantID, "pay-2", func(context.Context) (uuid.UUID, error) { return uuid.Nil, boom })
	assert.ErrorIs(t, err, boom)

	want := uuid.New()
	id, replayed, err := g.Do(ctx, tenantID, "pay-2", func(context.Context) (uuid.UUID, error) { return want, nil })
	require.NoError(t, err)
	assert.False(t, replayed)
	assert.Equal(t, want, id)
}

func TestRedisGuard_KeysAreTenantScoped(t *testing.T) {
	g := newGuard(t)
	ctx := context.Background()

	var runs atomic.Int32
	fn := func(context.Context) (uuid.UUID, error) {
		runs.Add(1)
		return uuid.New(), nil
	}
	_, _, err := g.Do(ctx, uuid.New(), "shared", fn)
	require.NoError(t, err)
	_, replayed, err := g.Do(ctx, uuid.New(), "shared", fn)
	require.NoError(t, err)

	assert.False(t, replayed)
	assert.Equal(t, int32(2), runs.Load())
}

func TestRedisGuard_ConcurrentSameKey(t *testing.T) {
	g := newGuard(t)
	ctx := context.Background()
	tenantID := uuid.New()

	var (
		runs       atomic.Int32
		inProgress atomic.Int32
		wg         sync.WaitGroup
	)
	release := make(chan struct{})
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := g.Do(ctx, tenantID, "pay-3", func(context.Context) (uuid.UUID, error) {
				runs.Add(1)
				<-release
				return uuid.New(), nil
			})
			if errors.Is(err, domain.ErrIdempotencyInProgress) {
				inProgress.Add(1)
			}
		}()
	}
	time.Sleep(200 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, int32(4), inProgress.Load())
}

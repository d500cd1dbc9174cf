package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/flightapp/booking/config"
	"github.com/flightapp/booking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// CachedClient keeps short-lived flight snapshots in redis so that
// the fast-path availability check does not hit the remote service on
// every request. Seat adjustments always pass through and drop the
// cached snapshot, since it is stale by definition afterwards.
type CachedClient struct {
	inner Client
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedClient(inner Client, cfg config.RedisConfig, ttl time.Duration) *CachedClient {
	return &CachedClient{
		inner: inner,
		rdb:   redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:   ttl,
	}
}

func (c *CachedClient) GetByID(ctx context.Context, flightID int64) (*domain.FlightInventory, error) {
	key := snapshotKey(flightID)
	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var flight domain.FlightInventory
		if err := json.Unmarshal(data, &flight); err == nil {
			return &flight, nil
		}
	}

	flight, err := c.inner.GetByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if payload, err := json.Marshal(flight); err == nil {
		_ = c.rdb.Set(ctx, key, payload, c.ttl).Err()
	}
	return flight, nil
}

func (c *CachedClient) ReduceSeats(ctx context.Context, flightID int64, n int) (bool, error) {
	ok, err := c.inner.ReduceSeats(ctx, flightID, n)
	c.invalidate(ctx, flightID)
	return ok, err
}

func (c *CachedClient) RestoreSeats(ctx context.Context, flightID int64, n int) (bool, error) {
	ok, err := c.inner.RestoreSeats(ctx, flightID, n)
	c.invalidate(ctx, flightID)
	return ok, err
}

func (c *CachedClient) invalidate(ctx context.Context, flightID int64) {
	_ = c.rdb.Del(ctx, snapshotKey(flightID)).Err()
}

func snapshotKey(flightID int64) string {
	return fmt.Sprintf("cache:inventory:%d", flightID)
}

var _ Client = (*CachedClient)(nil)

package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fhuszti/assets-ms-go/internal/logger"
	"github.com/fhuszti/assets-ms-go/internal/port"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

// Ping reports whether the redis server answers.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) GetAssetDetails(ctx context.Context, id int64) ([]byte, error) {
	logger.Debugf(ctx, "getting entry in cache for asset #%d...", id)
	return c.get(ctx, getCacheKey(id, false))
}

func (c *Cache) GetEtagAssetDetails(ctx context.Context, id int64) (string, error) {
	val, err := c.get(ctx, getCacheKey(id, true))
	if err != nil || val == nil {
		return "", err
	}
	return string(val), nil
}

func (c *Cache) get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

// SetAssetDetails stores data until validUntil. Failures are only logged, a
// missing entry is rebuilt on the next read.
func (c *Cache) SetAssetDetails(ctx context.Context, id int64, data []byte, validUntil time.Time) {
	logger.Debugf(ctx, "creating entry in cache for asset #%d, valid until %s...", id, validUntil.Format(time.RFC1123))
	c.set(ctx, getCacheKey(id, false), data, validUntil)
}

func (c *Cache) SetEtagAssetDetails(ctx context.Context, id int64, etag string, validUntil time.Time) {
	c.set(ctx, getCacheKey(id, true), etag, validUntil)
}

func (c *Cache) set(ctx context.Context, key string, value any, validUntil time.Time) {
	ttl := time.Until(validUntil)
	if ttl <= 0 {
		return
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		logger.Warnf(ctx, "redis set of %q failed: %v", key, err)
	}
}

func (c *Cache) DeleteAssetDetails(ctx context.Context, id int64) error {
	logger.Debugf(ctx, "deleting entry in cache for asset #%d...", id)
	return c.del(ctx, getCacheKey(id, false))
}

func (c *Cache) DeleteEtagAssetDetails(ctx context.Context, id int64) error {
	return c.del(ctx, getCacheKey(id, true))
}

func (c *Cache) del(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

// MarkDownloader adds visitor to the downloaders of the asset and reports
// whether it was not there yet.
func (c *Cache) MarkDownloader(ctx context.Context, id int64, visitor string) (bool, error) {
	added, err := c.client.SAdd(ctx, getDownloadersKey(id), visitor).Result()
	if err != nil {
		return false, fmt.Errorf("redis sadd failed: %w", err)
	}
	return added == 1, nil
}

func getCacheKey(id int64, etag bool) string {
	key := "asset:" + strconv.FormatInt(id, 10)
	if etag {
		return "etag:" + key
	}
	return key
}

func getDownloadersKey(id int64) string {
	return getCacheKey(id, false) + ":downloaders"
}

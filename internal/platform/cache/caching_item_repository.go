// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fleamarket_backend/internal/feature/items/domain/entity"
	"fleamarket_backend/internal/feature/items/usecase"
)

// CachingItemRepository decorates an ItemRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Every write invalidates the affected
// entries, so stale reads are bounded by the write path, not only the TTL.
type CachingItemRepository struct {
	inner     usecase.ItemRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.ItemRepository = (*CachingItemRepository)(nil)

// NewCachingItemRepository decorates an ItemRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "items".
func NewCachingItemRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ItemRepository, namespace string) *CachingItemRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "items"
	}
	return &CachingItemRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// listKey is the cache key for the full item listing.
func (c *CachingItemRepository) listKey() string {
	return c.namespace + ":all"
}

// itemKey is the cache key for a single item.
func (c *CachingItemRepository) itemKey(id string) string {
	return fmt.Sprintf("%s:id:%s", c.namespace, id)
}

// invalidate removes cache entries after a write. Best effort: a failed
// deletion must not fail the write that already happened.
func (c *CachingItemRepository) invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

// FindAll retrieves all items, checking cache first then falling back to the database.
func (c *CachingItemRepository) FindAll(ctx context.Context) ([]entity.Item, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindAll(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Item
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByID retrieves a single item, checking cache first then falling back to the database.
func (c *CachingItemRepository) FindByID(ctx context.Context, id string) (*entity.Item, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.itemKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Item
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Create inserts an item and invalidates the listing cache.
func (c *CachingItemRepository) Create(ctx context.Context, item *entity.Item) error {
	if err := c.inner.Create(ctx, item); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey())
	return nil
}

// CompareAndSetStatus advances an item's status and invalidates its cache entries.
// The conditional write itself happens in the inner repository; the cache is
// never consulted for the compare step.
func (c *CachingItemRepository) CompareAndSetStatus(ctx context.Context, id string, from, to entity.ItemStatus) error {
	if err := c.inner.CompareAndSetStatus(ctx, id, from, to); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey(), c.itemKey(id))
	return nil
}

// Delete removes an item and invalidates its cache entries.
func (c *CachingItemRepository) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey(), c.itemKey(id))
	return nil
}

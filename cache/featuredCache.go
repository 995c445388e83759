package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Kariqs/storefront-api/models"
)

const (
	FeaturedProductsKey = "featured_products"
	// FeaturedVersionKey is bumped by every Set and Clear so that a read-path
	// Fill computed before a write cannot land after it.
	FeaturedVersionKey = "featured_products:version"
)

// RedisFeaturedCache mirrors the featured product set under a single key.
// Entries carry no TTL; they are only ever overwritten or deleted.
type RedisFeaturedCache struct {
	client     *redis.Client
	key        string
	versionKey string
}

func NewRedisFeaturedCache(client *redis.Client) *RedisFeaturedCache {
	return &RedisFeaturedCache{client: client, key: FeaturedProductsKey, versionKey: FeaturedVersionKey}
}

// Get returns the cached products and whether the key was present.
func (c *RedisFeaturedCache) Get(ctx context.Context) ([]models.Product, bool, error) {
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read featured cache: %w", err)
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false, fmt.Errorf("decode featured cache: %w", err)
	}
	return products, true, nil
}

// Version returns the current write version, 0 before the first write.
func (c *RedisFeaturedCache) Version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, c.versionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read featured cache version: %w", err)
	}
	return v, nil
}

// Fill stores products only if no Set or Clear happened since version was
// read. It reports whether the value was written.
func (c *RedisFeaturedCache) Fill(ctx context.Context, version int64, products []models.Product) (bool, error) {
	raw, err := json.Marshal(products)
	if err != nil {
		return false, fmt.Errorf("encode featured cache: %w", err)
	}

	stale := errors.New("featured cache version changed")
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, c.versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return stale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key, raw, 0)
			return nil
		})
		return err
	}, c.versionKey)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, stale), errors.Is(err, redis.TxFailedErr):
		return false, nil
	default:
		return false, fmt.Errorf("fill featured cache: %w", err)
	}
}

func (c *RedisFeaturedCache) Set(ctx context.Context, products []models.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode featured cache: %w", err)
	}
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.key, raw, 0)
		pipe.Incr(ctx, c.versionKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("write featured cache: %w", err)
	}
	return nil
}

func (c *RedisFeaturedCache) Clear(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, c.key)
		pipe.Incr(ctx, c.versionKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear featured cache: %w", err)
	}
	return nil
}

package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Kariqs/storefront-api/models"
)

func newTestCache(t *testing.T) (*RedisFeaturedCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisFeaturedCache(client), mr
}

func TestFeaturedCacheMiss(t *testing.T) {
	c, _ := newTestCache(t)

	products, ok, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, products)
}

func TestFeaturedCacheSetGetClear(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	featured := []models.Product{
		{ID: 1, Name: "Kikoy", Price: 1500, Images: datatypes.JSONSlice[string]{"https://cdn/a.jpg"}, IsFeatured: true},
	}
	require.NoError(t, c.Set(ctx, featured))
	assert.True(t, mr.Exists(FeaturedProductsKey))
	assert.Equal(t, 0, int(mr.TTL(FeaturedProductsKey)))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Kikoy", got[0].Name)
	assert.Equal(t, []string{"https://cdn/a.jpg"}, []string(got[0].Images))

	require.NoError(t, c.Clear(ctx))
	assert.False(t, mr.Exists(FeaturedProductsKey))
}

func TestFeaturedCacheCorruptValue(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set(FeaturedProductsKey, "not json"))

	_, ok, err := c.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestFeaturedCacheWritesBumpVersion(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	v, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	require.NoError(t, c.Set(ctx, []models.Product{{ID: 1}}))
	require.NoError(t, c.Clear(ctx))

	v, err = c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestFeaturedCacheFillSkipsAfterWrite(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	v, err := c.Version(ctx)
	require.NoError(t, err)

	// a product write lands between the read-path query and its fill
	require.NoError(t, c.Set(ctx, []models.Product{{ID: 2, Name: "Fresh"}}))

	stored, err := c.Fill(ctx, v, []models.Product{{ID: 1, Name: "Stale"}})
	require.NoError(t, err)
	assert.False(t, stored)

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Fresh", got[0].Name)

	require.NoError(t, c.Clear(ctx))
	stored, err = c.Fill(ctx, v+1, []models.Product{{ID: 1, Name: "Stale"}})
	require.NoError(t, err)
	assert.False(t, stored)
	assert.False(t, mr.Exists(FeaturedProductsKey))
}

func TestFeaturedCacheFillWithCurrentVersion(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	require.NoError(t, c.Clear(ctx))

	v, err := c.Version(ctx)
	require.NoError(t, err)
	stored, err := c.Fill(ctx, v, []models.Product{{ID: 3, Name: "Lamp"}})
	require.NoError(t, err)
	assert.True(t, stored)

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Lamp", got[0].Name)
}

package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Kariqs/storefront-api/metrics"
	"github.com/Kariqs/storefront-api/models"
)

// FeaturedService keeps the featured-products cache in step with the
// product table.
type FeaturedService struct {
	products ProductStore
	cache    FeaturedCache
}

func NewFeaturedService(products ProductStore, cache FeaturedCache) *FeaturedService {
	return &FeaturedService{products: products, cache: cache}
}

// Featured serves from the cache, recomputing and repopulating on a miss.
func (s *FeaturedService) Featured(ctx context.Context) ([]models.Product, error) {
	products, ok, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		metrics.FeaturedCacheLookups.WithLabelValues("error").Inc()
		log.Ctx(ctx).Warn().Err(err).Msg("featured cache read failed, falling back to database")
	case ok:
		metrics.FeaturedCacheLookups.WithLabelValues("hit").Inc()
		return products, nil
	default:
		metrics.FeaturedCacheLookups.WithLabelValues("miss").Inc()
	}

	version, verr := s.cache.Version(ctx)
	products, err = s.products.FindFeatured(ctx)
	if err != nil {
		return nil, err
	}
	if verr != nil {
		log.Ctx(ctx).Warn().Err(verr).Msg("featured cache version read failed, skipping fill")
		return products, nil
	}
	if len(products) > 0 {
		if _, err := s.cache.Fill(ctx, version, products); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to fill featured products cache")
		}
	}
	return products, nil
}

// Refresh recomputes the featured set after a product write. Failures are
// logged; the write that triggered the refresh has already happened.
func (s *FeaturedService) Refresh(ctx context.Context) {
	products, err := s.products.FindFeatured(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to refresh featured products cache")
		return
	}

	if len(products) == 0 {
		err = s.cache.Clear(ctx)
	} else {
		err = s.cache.Set(ctx, products)
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to write featured products cache")
	}
}

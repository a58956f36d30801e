package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/deppfellow/restaurant-backend/internal/errs"
	"github.com/deppfellow/restaurant-backend/internal/lib/cache"
	"github.com/deppfellow/restaurant-backend/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type RestaurantReader interface {
	GetBySlug(ctx context.Context, slug string) (*model.Restaurant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Restaurant, error)
}

// TenantService resolves storefront requests to a restaurant, reading
// through a cache keyed by slug.
type TenantService struct {
	restaurants RestaurantReader
	cache       cache.Cache
	ttl         time.Duration
	logger      *zerolog.Logger
}

func NewTenantService(restaurants RestaurantReader, c cache.Cache, ttl time.Duration, logger *zerolog.Logger) *TenantService {
	return &TenantService{
		restaurants: restaurants,
		cache:       c,
		ttl:         ttl,
		logger:      logger,
	}
}

func slugKey(slug string) string {
	return "slug:" + slug
}

func errRestaurantNotFound() *errs.HTTPError {
	return errs.NewNotFoundError("Restaurant not found", true, errs.Code(errs.CodeRestaurantNotFound))
}

// BySlug returns the restaurant for slug or a 404. Cache errors fall back
// to the database.
func (s *TenantService) BySlug(ctx context.Context, slug string) (*model.Restaurant, error) {
	if slug == "" {
		return nil, errRestaurantNotFound()
	}

	if raw, ok, err := s.cache.Get(ctx, slugKey(slug)); err != nil {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("restaurant cache read failed")
	} else if ok {
		var restaurant model.Restaurant
		if err := json.Unmarshal(raw, &restaurant); err == nil {
			return &restaurant, nil
		}
	}

	restaurant, err := s.restaurants.GetBySlug(ctx, slug)
	if errors.Is(err, model.ErrNotFound) {
		return nil, errRestaurantNotFound()
	}
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(restaurant); err == nil {
		if err := s.cache.Set(ctx, slugKey(slug), raw, s.ttl); err != nil {
			s.logger.Warn().Err(err).Str("slug", slug).Msg("restaurant cache write failed")
		}
	}

	return restaurant, nil
}

// Invalidate drops the cached entry after settings change.
func (s *TenantService) Invalidate(ctx context.Context, slug string) {
	if err := s.cache.Delete(ctx, slugKey(slug)); err != nil {
		s.logger.Warn().Err(err).Str("slug", slug).Msg("restaurant cache invalidation failed")
	}
}

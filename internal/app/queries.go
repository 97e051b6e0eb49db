package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant_refresh/internal/domain"
)

// QueryService answers the dashboard's reads from the latest snapshot.
type QueryService struct {
	src      domain.SnapshotReader
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewQueryService(src domain.SnapshotReader, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{src: src, cache: c, cacheTTL: ttl}
}

func (s *QueryService) ListRestaurants(ctx context.Context, q domain.RestaurantQuery) ([]domain.Restaurant, error) {
	key := fmt.Sprintf("restaurants:%s|%s|%s|%s|%s",
		q.City, q.FoodType, q.Neighborhood, q.Type, strings.ToLower(q.Search))
	var out []domain.Restaurant
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}

	rs, err := s.src.LatestSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	out = filterRestaurants(rs, q)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	}
	return out, nil
}

func (s *QueryService) Stats(ctx context.Context) (domain.Stats, error) {
	const key = "restaurants:stats"
	var st domain.Stats
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &st); ok {
			return st, nil
		}
	}
	rs, err := s.src.LatestSnapshot(ctx)
	if err != nil {
		return domain.Stats{}, err
	}
	st = computeStats(rs)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, st, int(s.cacheTTL.Seconds()))
	}
	return st, nil
}

package app_test

import (
	"context"
	"sync"
	"sync/atomic"

	"restaurant_refresh/internal/domain"
)

// ---- fakes ----

type fakePlaces struct {
	hits       map[string][]domain.PlaceHit // by query
	details    map[string]domain.PlaceDetails
	searchErr  error
	detailsErr error
	searches   int32
	lookups    int32
}

func (f *fakePlaces) TextSearch(ctx context.Context, query string) ([]domain.PlaceHit, error) {
	atomic.AddInt32(&f.searches, 1)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.hits[query], nil
}

func (f *fakePlaces) Details(ctx context.Context, placeID string) (domain.PlaceDetails, error) {
	atomic.AddInt32(&f.lookups, 1)
	if f.detailsErr != nil {
		return domain.PlaceDetails{}, f.detailsErr
	}
	return f.details[placeID], nil
}

type fakeLinks struct {
	mu    sync.Mutex
	ok    map[string]bool
	calls []string
}

func (f *fakeLinks) Check(ctx context.Context, url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, url)
	return f.ok[url]
}

type fakeDash struct{ got int }

func (f *fakeDash) Render(ctx context.Context, rs []domain.Restaurant) error {
	f.got = len(rs)
	return nil
}

type fakeStore struct {
	rep domain.RunReport
	rs  []domain.Restaurant
	err error
}

func (f *fakeStore) SaveSnapshot(ctx context.Context, rep domain.RunReport, rs []domain.Restaurant) error {
	f.rep, f.rs = rep, rs
	return f.err
}

type fakeSource struct {
	rs    []domain.Restaurant
	err   error
	reads int
}

func (f *fakeSource) LatestSnapshot(ctx context.Context) ([]domain.Restaurant, error) {
	f.reads++
	return f.rs, f.err
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *[]domain.Restaurant:
		*d = v.([]domain.Restaurant)
	case *domain.Stats:
		*d = v.(domain.Stats)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error { return nil }

func ptr[T any](v T) *T { return &v }

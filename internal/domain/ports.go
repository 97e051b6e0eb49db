package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// PlacesClient is the slice of the places web service the refresh uses.
type PlacesClient interface {
	TextSearch(ctx context.Context, query string) ([]PlaceHit, error)
	Details(ctx context.Context, placeID string) (PlaceDetails, error)
}

type LinkChecker interface {
	Check(ctx context.Context, url string) bool
}

type DashboardRenderer interface {
	Render(ctx context.Context, rs []Restaurant) error
}

// SnapshotStore persists the records of a finished run.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, rep RunReport, rs []Restaurant) error
}

// SnapshotReader returns the records of the most recent run.
type SnapshotReader interface {
	LatestSnapshot(ctx context.Context) ([]Restaurant, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// RestaurantQuery holds the dashboard filters. Empty fields match everything.
type RestaurantQuery struct {
	City         string
	FoodType     string
	Neighborhood string
	Type         string
	Search       string
}

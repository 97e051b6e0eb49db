package app

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"restaurant_refresh/internal/adapters/observability"
	"restaurant_refresh/internal/domain"
)

// Enricher attaches live place data to restaurants.
type Enricher struct {
	places  domain.PlacesClient
	enabled bool
}

// NewEnricher returns an Enricher. With enabled=false (no usable credential)
// every record passes through as skipped and p may be nil.
func NewEnricher(p domain.PlacesClient, enabled bool) *Enricher {
	return &Enricher{places: p, enabled: enabled && p != nil}
}

// Enrich never fails the batch: whatever happens, r comes back either
// untouched or with a complete Enrichment attached.
func (e *Enricher) Enrich(ctx context.Context, r domain.Restaurant) (domain.Restaurant, domain.Outcome) {
	out, oc := e.enrich(ctx, r)
	observability.ObserveOutcome(string(oc.Status))
	return out, oc
}

func (e *Enricher) enrich(ctx context.Context, r domain.Restaurant) (domain.Restaurant, domain.Outcome) {
	if !e.enabled {
		log.Info().Str("name", r.Name).Msg("places API key not configured, skipping lookup")
		return r, domain.Outcome{Status: domain.OutcomeSkipped}
	}

	hits, err := e.places.TextSearch(ctx, searchQuery(r))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return r, failed(r, err)
	}
	if len(hits) == 0 {
		log.Info().Str("name", r.Name).Msg("not found on places service")
		return r, domain.Outcome{Status: domain.OutcomeNotFound}
	}

	// first match wins
	d, err := e.places.Details(ctx, hits[0].PlaceID)
	if err != nil {
		return r, failed(r, err)
	}

	r.Enrichment = mapDetails(d)
	log.Info().
		Str("name", r.Name).
		Str("place_id", hits[0].PlaceID).
		Interface("rating", r.Rating).
		Int("total_ratings", r.TotalRatings).
		Msg("enriched")
	return r, domain.Outcome{Status: domain.OutcomeEnriched}
}

func failed(r domain.Restaurant, err error) domain.Outcome {
	log.Error().Err(err).Str("name", r.Name).Msg("places lookup failed")
	return domain.Outcome{Status: domain.OutcomeError, Reason: err.Error()}
}

func searchQuery(r domain.Restaurant) string {
	return strings.Join([]string{r.Name, r.Address, r.City}, " ")
}

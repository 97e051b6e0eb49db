package app

import (
	"strings"

	"restaurant_refresh/internal/domain"
)

// mapDetails copies the optional details keys, filling the documented
// defaults for whatever the service left out.
func mapDetails(d domain.PlaceDetails) *domain.Enrichment {
	e := &domain.Enrichment{GoogleMapsURL: d.URL}
	if d.Rating != nil {
		e.Rating = domain.Known(*d.Rating)
	}
	if d.UserRatingsTotal != nil {
		e.TotalRatings = *d.UserRatingsTotal
	}
	if d.PriceLevel != nil {
		e.PriceLevel = domain.Known(*d.PriceLevel)
	}
	if d.OpeningHours != nil && d.OpeningHours.OpenNow != nil {
		open := *d.OpeningHours.OpenNow
		e.IsOpen = &open
	}
	return e
}

// "Todos" is the dashboard's "any" choice.
const anyFacet = "Todos"

func facetMatch(want, got string) bool {
	return want == "" || want == anyFacet || want == got
}

func matches(q domain.RestaurantQuery, r domain.Restaurant) bool {
	if !facetMatch(q.City, r.City) || !facetMatch(q.FoodType, r.FoodType) ||
		!facetMatch(q.Neighborhood, r.Neighborhood) || !facetMatch(q.Type, r.Type) {
		return false
	}
	return strings.Contains(strings.ToLower(r.Name), strings.ToLower(q.Search))
}

func filterRestaurants(rs []domain.Restaurant, q domain.RestaurantQuery) []domain.Restaurant {
	out := make([]domain.Restaurant, 0, len(rs))
	for _, r := range rs {
		if matches(q, r) {
			out = append(out, r)
		}
	}
	return out
}

// Trip status and reservation values used by the spreadsheet.
const (
	statusVisited  = "FOMOS"
	statusPending  = "PENDING"
	reservationYes = "SIM"
)

func computeStats(rs []domain.Restaurant) domain.Stats {
	s := domain.Stats{Total: len(rs)}
	for _, r := range rs {
		switch r.Status {
		case statusVisited:
			s.Visited++
		case statusPending:
			s.Pending++
		}
		if r.Reservation == reservationYes {
			s.WithReservation++
		}
	}
	return s
}

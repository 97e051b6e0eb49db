package domain

import "time"

// Sentinel values found in the source spreadsheet.
const (
	TemplateSentinel = "TEMPLATE"
	MenuUnavailable  = "Indisponivel"
)

// Restaurant is one row of the spreadsheet plus whatever the refresh attached to it.
// Field order here is the field order of the JSON output.
type Restaurant struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	FoodType     string `json:"foodType"`
	Menu         string `json:"menu"`
	Occasion     string `json:"occasion"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	Reservation  string `json:"reservation"`
	Region       string `json:"region"`
	State        string `json:"state"`

	*Enrichment

	MenuValid *bool `json:"menu_valido,omitempty"`
}

// Enrichment is the live data pulled from the places service.
// It is attached whole or not at all.
type Enrichment struct {
	Rating        Maybe[float64] `json:"rating"`
	TotalRatings  int            `json:"total_ratings"`
	PriceLevel    Maybe[int]     `json:"price_level"`
	IsOpen        *bool          `json:"is_open"`
	GoogleMapsURL string         `json:"google_maps_url"`
}

// PlaceHit is one text-search result.
type PlaceHit struct {
	PlaceID          string `json:"place_id"`
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address"`
}

// PlaceDetails holds the optional keys of a details lookup.
type PlaceDetails struct {
	Rating           *float64      `json:"rating,omitempty"`
	UserRatingsTotal *int          `json:"user_ratings_total,omitempty"`
	PriceLevel       *int          `json:"price_level,omitempty"`
	OpeningHours     *OpeningHours `json:"opening_hours,omitempty"`
	URL              string        `json:"url,omitempty"`
}

type OpeningHours struct {
	OpenNow *bool `json:"open_now,omitempty"`
}

// OutcomeStatus tells what the enrichment step did with a record.
type OutcomeStatus string

const (
	OutcomeEnriched OutcomeStatus = "enriched"
	OutcomeNotFound OutcomeStatus = "not_found"
	OutcomeSkipped  OutcomeStatus = "skipped"
	OutcomeError    OutcomeStatus = "error"
)

type Outcome struct {
	Status OutcomeStatus
	Reason string
}

// RunReport summarizes one refresh run.
type RunReport struct {
	StartedAt    time.Time
	FinishedAt   time.Time
	OutputPath   string
	Loaded       int
	Enriched     int
	NotFound     int
	Skipped      int
	Failed       int
	LinksValid   int
	LinksInvalid int
}

// Stats mirrors the counters shown on top of the dashboard.
type Stats struct {
	Total           int `json:"total"`
	Visited         int `json:"visited"`
	Pending         int `json:"pending"`
	WithReservation int `json:"withReservation"`
}

// internal/adapters/places/client.go
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"restaurant_refresh/internal/adapters/observability"
	"restaurant_refresh/internal/domain"
)

// Fields asked for in a details lookup.
const detailsFields = "rating,user_ratings_total,price_level,opening_hours,url"

type Client struct {
	base  string
	hc    *http.Client
	key   string
	rl    *rate.Limiter
	cache domain.Cache
	ttl   int
}

type Option func(*Client)

// WithCache puts c in front of Details lookups for ttlSec seconds.
func WithCache(c domain.Cache, ttlSec int) Option {
	return func(cl *Client) {
		cl.cache = c
		cl.ttl = ttlSec
	}
}

func New(base, key string, rps int, timeout time.Duration, opts ...Option) (*Client, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	c := &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ---- Public API ----

// TextSearch returns the results for a free-text query in service order.
func (c *Client) TextSearch(ctx context.Context, query string) ([]domain.PlaceHit, error) {
	q := url.Values{}
	q.Set("query", query)
	var out struct {
		envelope
		Results []domain.PlaceHit `json:"results"`
	}
	if err := c.get(ctx, "textsearch", q, &out); err != nil {
		return nil, err
	}
	if out.Status == "ZERO_RESULTS" {
		return nil, nil
	}
	if err := out.err(); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Details looks up one place by identifier.
func (c *Client) Details(ctx context.Context, placeID string) (domain.PlaceDetails, error) {
	key := "place:details:" + placeID
	var d domain.PlaceDetails
	if c.cache != nil {
		if ok, _ := c.cache.Get(ctx, key, &d); ok {
			return d, nil
		}
	}

	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", detailsFields)
	var out struct {
		envelope
		Result domain.PlaceDetails `json:"result"`
	}
	if err := c.get(ctx, "details", q, &out); err != nil {
		return domain.PlaceDetails{}, err
	}
	if err := out.err(); err != nil {
		return domain.PlaceDetails{}, err
	}
	if c.cache != nil {
		_ = c.cache.Set(ctx, key, out.Result, c.ttl)
	}
	return out.Result, nil
}

// ---- Internals ----

var (
	ErrNotFound     = fmt.Errorf("places: %w", domain.ErrNotFound)
	ErrUnauthorized = errors.New("places: unauthorized")
	ErrForbidden    = errors.New("places: forbidden")
)

// envelope is the status block every web service response carries.
type envelope struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

func (e envelope) err() error {
	switch e.Status {
	case "OK", "":
		return nil
	case "NOT_FOUND", "ZERO_RESULTS":
		return ErrNotFound
	case "REQUEST_DENIED":
		return fmt.Errorf("%w: %s", ErrUnauthorized, e.ErrorMessage)
	default:
		if e.ErrorMessage != "" {
			return fmt.Errorf("places: status %s: %s", e.Status, e.ErrorMessage)
		}
		return fmt.Errorf("places: status %s", e.Status)
	}
}

// get performs a single rate-limited GET of {base}/{endpoint}/json and decodes into out.
// There are no retries: a failed call is reported to the caller as is.
func (c *Client) get(ctx context.Context, endpoint string, q url.Values, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	q.Set("key", c.key)
	u := fmt.Sprintf("%s/%s/json?%s", c.base, endpoint, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "restaurant-refresh/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("places", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("places", endpoint, resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("places: decode %s: %w", endpoint, err)
		}
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	default:
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
}

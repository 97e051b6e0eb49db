package linkcheck

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"restaurant_refresh/internal/adapters/observability"
	"restaurant_refresh/internal/domain"
)

// Checker probes menu links with a single HEAD request.
type Checker struct {
	hc *http.Client
}

func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	// the default CheckRedirect follows up to 10 redirects
	return &Checker{hc: &http.Client{Timeout: timeout}}
}

// Check reports whether url answers HEAD with 200. Empty and placeholder
// links are invalid without touching the network. Any failure is false.
func (c *Checker) Check(ctx context.Context, url string) bool {
	if url == "" || url == domain.MenuUnavailable {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		log.Debug().Err(err).Str("url", url).Msg("menu link rejected")
		return false
	}
	req.Header.Set("User-Agent", "restaurant-refresh/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("menu", "head", 0, time.Since(start))
		log.Debug().Err(err).Str("url", url).Msg("menu link unreachable")
		return false
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	observability.ObserveExternal("menu", "head", resp.StatusCode, time.Since(start))

	return resp.StatusCode == http.StatusOK
}

// Package dashboard is where the HTML dashboard would be produced.
package dashboard

import (
	"context"

	"github.com/rs/zerolog/log"

	"restaurant_refresh/internal/domain"
)

// Renderer is a placeholder: it reports what it would render and writes nothing.
type Renderer struct {
	Path     string
	DataPath string
}

func (r Renderer) Render(ctx context.Context, rs []domain.Restaurant) error {
	log.Info().Str("path", r.Path).Msg("generating dashboard")
	log.Info().
		Int("restaurants", len(rs)).
		Str("data", r.DataPath).
		Msg("dashboard rendering not implemented, data file is the source of truth")
	return nil
}

package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"restaurant_refresh/internal/adapters/observability"
	"restaurant_refresh/internal/domain"
)

// LoadFunc reads the input table.
type LoadFunc func(path string) ([]domain.Restaurant, error)

// WriteFunc persists the final records.
type WriteFunc func(path string, rs []domain.Restaurant) error

type RefreshConfig struct {
	InputPath   string
	OutputPath  string
	LinkWorkers int
}

// RefreshService runs one refresh: load, enrich, check menus, render, write.
type RefreshService struct {
	cfg       RefreshConfig
	load      LoadFunc
	write     WriteFunc
	enricher  *Enricher
	links     domain.LinkChecker
	dashboard domain.DashboardRenderer
	store     domain.SnapshotStore
	now       func() time.Time
}

func NewRefreshService(cfg RefreshConfig, load LoadFunc, write WriteFunc, e *Enricher,
	links domain.LinkChecker, dash domain.DashboardRenderer, store domain.SnapshotStore) *RefreshService {
	if cfg.LinkWorkers < 1 {
		cfg.LinkWorkers = 1
	}
	return &RefreshService{
		cfg: cfg, load: load, write: write, enricher: e,
		links: links, dashboard: dash, store: store, now: time.Now,
	}
}

// Run returns an error only when the input cannot be read, the output cannot
// be written, or ctx is cancelled. Per-record failures are logged and counted.
func (s *RefreshService) Run(ctx context.Context) (domain.RunReport, error) {
	rep := domain.RunReport{StartedAt: s.now(), OutputPath: s.cfg.OutputPath}

	log.Info().Str("path", s.cfg.InputPath).Msg("reading restaurants")
	rs, err := s.load(s.cfg.InputPath)
	if err != nil {
		return rep, fmt.Errorf("load %s: %w", s.cfg.InputPath, err)
	}
	rep.Loaded = len(rs)
	log.Info().Int("count", len(rs)).Msg("restaurants loaded")

	// 1) enrichment, one record at a time
	for i := range rs {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		log.Info().Int("n", i+1).Int("of", len(rs)).Str("name", rs[i].Name).Msg("processing")
		var oc domain.Outcome
		rs[i], oc = s.enricher.Enrich(ctx, rs[i])
		switch oc.Status {
		case domain.OutcomeEnriched:
			rep.Enriched++
		case domain.OutcomeNotFound:
			rep.NotFound++
		case domain.OutcomeSkipped:
			rep.Skipped++
		case domain.OutcomeError:
			rep.Failed++
		}
	}

	// 2) menu links
	log.Info().Int("workers", s.cfg.LinkWorkers).Msg("validating menu links")
	if err := s.checkMenus(ctx, rs); err != nil {
		return rep, err
	}
	for _, r := range rs {
		if r.MenuValid == nil {
			continue
		}
		if *r.MenuValid {
			rep.LinksValid++
		} else {
			rep.LinksInvalid++
		}
	}

	// 3) dashboard placeholder, then the data file
	if s.dashboard != nil {
		if err := s.dashboard.Render(ctx, rs); err != nil {
			log.Warn().Err(err).Msg("dashboard render failed")
		}
	}
	if err := s.write(s.cfg.OutputPath, rs); err != nil {
		return rep, fmt.Errorf("write %s: %w", s.cfg.OutputPath, err)
	}
	rep.FinishedAt = s.now()
	log.Info().Str("path", s.cfg.OutputPath).Int("count", len(rs)).Msg("data saved")

	// 4) optional history, best-effort
	if s.store != nil {
		if err := s.store.SaveSnapshot(ctx, rep, rs); err != nil {
			log.Warn().Err(err).Msg("snapshot save failed")
		}
	}

	return rep, nil
}

// checkMenus sets MenuValid on every record that has a menu value. With more
// than one worker the checks overlap but each result lands on its own index.
func (s *RefreshService) checkMenus(ctx context.Context, rs []domain.Restaurant) error {
	sem := semaphore.NewWeighted(int64(s.cfg.LinkWorkers))
	var wg sync.WaitGroup

	for i := range rs {
		if rs[i].Menu == "" {
			continue
		}
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)

			ok := s.links.Check(ctx, rs[i].Menu)
			rs[i].MenuValid = &ok
			observability.ObserveMenu(ok)
			log.Info().Str("name", rs[i].Name).Bool("valid", ok).Msg("menu checked")
		}(i)
	}
	wg.Wait()
	return ctx.Err()
}

package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"restaurant_refresh/internal/domain"
)

// rows per multi-row INSERT
const batchSize = 200

func valBool(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}

func valMaybe[T any](m domain.Maybe[T]) any {
	if !m.Known {
		return nil
	}
	return m.V
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// SaveSnapshot stores one run and its records in a single transaction.
func (r *Repo) SaveSnapshot(ctx context.Context, rep domain.RunReport, rs []domain.Restaurant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	res, err := tx.ExecContext(ctx, insertRunSQL,
		rep.StartedAt.UTC(), rep.FinishedAt.UTC(), rep.OutputPath,
		rep.Loaded, rep.Enriched, rep.NotFound, rep.Skipped, rep.Failed,
		rep.LinksValid, rep.LinksInvalid,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for start := 0; start < len(rs); start += batchSize {
		end := min(start+batchSize, len(rs))
		if err := insertBatch(ctx, tx, runID, start, rs[start:end]); err != nil {
			return fmt.Errorf("insert snapshot rows: %w", err)
		}
	}
	return tx.Commit()
}

func insertBatch(ctx context.Context, tx *sql.Tx, runID int64, offset int, rs []domain.Restaurant) error {
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*21)
	for i, rec := range rs {
		raw, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		var rating, price, isOpen, mapsURL, total any
		if e := rec.Enrichment; e != nil {
			rating, price, isOpen = valMaybe(e.Rating), valMaybe(e.PriceLevel), valBool(e.IsOpen)
			mapsURL, total = e.GoogleMapsURL, e.TotalRatings
		}
		values = append(values, snapshotRowPlaceholders)
		args = append(args,
			runID, offset+i,
			rec.Name, rec.Address, rec.City, rec.Neighborhood, rec.FoodType, rec.Menu,
			rec.Occasion, rec.Type, rec.Status, rec.Reservation, rec.Region, rec.State,
			rating, total, price, isOpen, mapsURL,
			valBool(rec.MenuValid),
			string(raw),
		)
	}
	_, err := tx.ExecContext(ctx, insertSnapshotPrefix+strings.Join(values, ","), args...)
	return err
}

// LatestSnapshot returns the records of the newest run or domain.ErrNotFound.
func (r *Repo) LatestSnapshot(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.db.QueryContext(ctx, latestSnapshotSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Restaurant
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var rec domain.Restaurant
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("decode snapshot row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, domain.ErrNotFound
	}
	return out, nil
}

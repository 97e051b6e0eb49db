package mysql

const insertRunSQL = `
INSERT INTO refresh_runs
  (started_at, finished_at, output_path, loaded, enriched, not_found, skipped, failed, links_valid, links_invalid)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const insertSnapshotPrefix = "INSERT INTO restaurant_snapshots\n" +
	"  (run_id, position, name, address, city, neighborhood, food_type, menu, occasion, `type`, trip_status,\n" +
	"   reservation, region, state, rating, total_ratings, price_level, is_open, google_maps_url, menu_valid, raw)\nVALUES "

const snapshotRowPlaceholders = "(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)"

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

// Records of the newest run, in input order. Only raw is needed to rebuild
// the record; the typed columns exist for ad-hoc SQL.
const latestSnapshotSQL = `
SELECT s.raw
FROM restaurant_snapshots s
WHERE s.run_id = (SELECT MAX(id) FROM refresh_runs)
ORDER BY s.position
`

//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"restaurant_refresh/internal/domain"
	mysqlrepo "restaurant_refresh/internal/storage/mysql"
)

// ---------- small helpers ----------
func pbool(b bool) *bool { return &b }

func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("migrations dir %s is not a directory or missing", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("dockertest: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=refresh",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/refresh?parseTime=true&multiStatements=true&charset=utf8mb4&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	pool.MaxWait = 2 * time.Minute
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

// ---------- the test ----------
func TestRepo_MySQL_SaveAndLatest(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	if _, err := repo.LatestSnapshot(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	first := []domain.Restaurant{{Name: "Old", City: "Recife"}}
	rep := domain.RunReport{StartedAt: time.Now(), FinishedAt: time.Now(), OutputPath: "restaurantes.json", Loaded: 1}
	if err := repo.SaveSnapshot(ctx, rep, first); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	second := []domain.Restaurant{
		{
			Name: "Café São Bento", City: "SAO PAULO", Menu: "https://example.com/menu",
			Enrichment: &domain.Enrichment{
				Rating: domain.Known(4.4), TotalRatings: 12, IsOpen: pbool(true),
				GoogleMapsURL: "https://maps.google.com/?cid=2",
			},
			MenuValid: pbool(true),
		},
		{Name: "Bistro A", City: "Paris", Menu: "Indisponivel", MenuValid: pbool(false)},
	}
	rep.Loaded = 2
	if err := repo.SaveSnapshot(ctx, rep, second); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	got, err := repo.LatestSnapshot(ctx)
	if err != nil {
		t.Fatalf("LatestSnapshot: %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Fatalf("unexpected snapshot:\n got %+v\nwant %+v", got, second)
	}

	var rating sql.NullFloat64
	if err := db.QueryRow(`SELECT rating FROM restaurant_snapshots WHERE name = ?`, "Café São Bento").Scan(&rating); err != nil {
		t.Fatalf("select rating: %v", err)
	}
	if !rating.Valid || rating.Float64 != 4.4 {
		t.Fatalf("unexpected rating column: %+v", rating)
	}
}

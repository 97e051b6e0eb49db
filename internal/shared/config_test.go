package shared_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"restaurant_refresh/internal/shared"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REFRESH_CONFIG", "")
	t.Setenv("PLACES_API_KEY", "")

	c := shared.Load()
	if c.InputPath != "restaurantes.csv" || c.OutputPath != "restaurantes.json" {
		t.Fatalf("unexpected paths: %q %q", c.InputPath, c.OutputPath)
	}
	if c.LinkTimeout != 5*time.Second {
		t.Fatalf("link timeout: %v", c.LinkTimeout)
	}
	if c.RequestTimeout != 20*time.Second {
		t.Fatalf("request timeout: %v", c.RequestTimeout)
	}
	if c.HasCredential() {
		t.Fatalf("placeholder credential must not count as configured")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "refresh.yaml")
	body := "input_path: from-file.csv\noutput_path: from-file.json\nlink_workers: 3\nlink_timeout_seconds: 9\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("REFRESH_CONFIG", p)
	t.Setenv("OUTPUT_PATH", "from-env.json")
	t.Setenv("PLACES_API_KEY", "real-key")

	c := shared.Load()
	if c.InputPath != "from-file.csv" {
		t.Fatalf("file value lost: %q", c.InputPath)
	}
	if c.OutputPath != "from-env.json" {
		t.Fatalf("env should win: %q", c.OutputPath)
	}
	if c.LinkWorkers != 3 || c.LinkTimeout != 9*time.Second {
		t.Fatalf("unexpected workers/timeout: %d %v", c.LinkWorkers, c.LinkTimeout)
	}
	if !c.HasCredential() {
		t.Fatalf("expected credential")
	}
}

func TestLoad_BadWorkersClamped(t *testing.T) {
	t.Setenv("REFRESH_CONFIG", "")
	t.Setenv("LINK_WORKERS", "0")
	if c := shared.Load(); c.LinkWorkers != 1 {
		t.Fatalf("expected 1 worker, got %d", c.LinkWorkers)
	}
}

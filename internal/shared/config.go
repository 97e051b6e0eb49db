package shared

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// PlaceholderKey is the value shipped in the sample config; it disables enrichment.
const PlaceholderKey = "SUA_API_KEY_AQUI"

type Config struct {
	AppEnv         string        `yaml:"app_env"`
	InputPath      string        `yaml:"input_path"`
	OutputPath     string        `yaml:"output_path"`
	DashboardPath  string        `yaml:"dashboard_path"`
	Credential     string        `yaml:"credential"`
	PlacesBase     string        `yaml:"places_base_url"`
	PlacesRPS      int           `yaml:"places_rps"`
	RequestTimeout time.Duration `yaml:"-"`
	LinkTimeout    time.Duration `yaml:"-"`
	LinkWorkers    int           `yaml:"link_workers"`
	HTTPAddr       string        `yaml:"http_addr"`
	MetricsAddr    string        `yaml:"metrics_addr"`
	MySQLDSN       string        `yaml:"mysql_dsn"`
	RedisAddr      string        `yaml:"redis_addr"`
	RedisDB        int           `yaml:"redis_db"`
	RedisPass      string        `yaml:"redis_password"`
	CacheTTL       time.Duration `yaml:"-"`

	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
	LinkTimeoutSeconds    int `yaml:"link_timeout_seconds"`
	CacheTTLSeconds       int `yaml:"cache_ttl_seconds"`
}

func Defaults() Config {
	return Config{
		AppEnv:                "prod",
		InputPath:             "restaurantes.csv",
		OutputPath:            "restaurantes.json",
		DashboardPath:         "restaurantes-dashboard.html",
		Credential:            PlaceholderKey,
		PlacesBase:            "https://maps.googleapis.com/maps/api/place",
		PlacesRPS:             5,
		LinkWorkers:           1,
		HTTPAddr:              ":8080",
		RequestTimeoutSeconds: 20,
		LinkTimeoutSeconds:    5,
		CacheTTLSeconds:       900,
	}
}

// Load builds the config from defaults, then the YAML file named by
// REFRESH_CONFIG (if any), then the environment.
func Load() Config {
	c := Defaults()
	if p := os.Getenv("REFRESH_CONFIG"); p != "" {
		if err := c.overlayFile(p); err != nil {
			log.Warn().Err(err).Str("path", p).Msg("config file ignored")
		}
	}
	c.applyEnv()
	c.finish()

	if !c.HasCredential() {
		log.Warn().Msg("PLACES_API_KEY is not configured, enrichment will be skipped")
	}
	return c
}

// HasCredential reports whether the places credential is usable.
func (c Config) HasCredential() bool {
	return c.Credential != "" && c.Credential != PlaceholderKey
}

func (c *Config) overlayFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c.AppEnv = env("APP_ENV", c.AppEnv)
	c.InputPath = env("INPUT_PATH", c.InputPath)
	c.OutputPath = env("OUTPUT_PATH", c.OutputPath)
	c.DashboardPath = env("DASHBOARD_PATH", c.DashboardPath)
	c.Credential = env("PLACES_API_KEY", c.Credential)
	c.PlacesBase = env("PLACES_BASE_URL", c.PlacesBase)
	c.PlacesRPS = atoi("PLACES_RPS", c.PlacesRPS)
	c.LinkWorkers = atoi("LINK_WORKERS", c.LinkWorkers)
	c.HTTPAddr = env("HTTP_ADDR", c.HTTPAddr)
	c.MetricsAddr = env("METRICS_ADDR", c.MetricsAddr)
	c.MySQLDSN = env("MYSQL_DSN", c.MySQLDSN)
	c.RedisAddr = env("REDIS_ADDR", c.RedisAddr)
	c.RedisDB = atoi("REDIS_DB", c.RedisDB)
	c.RedisPass = env("REDIS_PASSWORD", c.RedisPass)
	c.RequestTimeoutSeconds = atoi("REQUEST_TIMEOUT_SECONDS", c.RequestTimeoutSeconds)
	c.LinkTimeoutSeconds = atoi("LINK_TIMEOUT_SECONDS", c.LinkTimeoutSeconds)
	c.CacheTTLSeconds = atoi("CACHE_TTL_SECONDS", c.CacheTTLSeconds)
}

func (c *Config) finish() {
	if c.LinkWorkers < 1 {
		c.LinkWorkers = 1
	}
	c.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second
	c.LinkTimeout = time.Duration(c.LinkTimeoutSeconds) * time.Second
	c.CacheTTL = time.Duration(c.CacheTTLSeconds) * time.Second
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

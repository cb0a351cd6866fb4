package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/hillbillynomad/powder/internal/httpcache"
	"github.com/hillbillynomad/powder/internal/logger"
)

// AppConfig holds all runtime configuration, read from the environment
// with sensible defaults.
type AppConfig struct {
	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration

	// Response cache settings.
	CacheEnabled bool
	CacheTTL     time.Duration
	CacheDir     string

	// ResortsFile optionally overrides the embedded resort database.
	ResortsFile string

	// Serve-mode settings.
	Port            string
	RefreshInterval time.Duration
	TrackedResorts  []string
	SnapshotMaxAge  time.Duration
	StoreMaxHistory int
}

// Load reads configuration from the environment, honoring a local
// .env file when present.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debugf("no .env file loaded: %v", err)
	}

	cfg := &AppConfig{}

	timeout, err := getenvDuration("POWDER_HTTP_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid POWDER_HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.CacheEnabled = getenvBool("POWDER_CACHE", true)
	ttl, err := getenvDuration("POWDER_CACHE_TTL", httpcache.DefaultTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid POWDER_CACHE_TTL: %w", err)
	}
	cfg.CacheTTL = ttl
	cfg.CacheDir = getenvDefault("POWDER_CACHE_DIR", httpcache.DefaultDir())

	cfg.ResortsFile = os.Getenv("POWDER_RESORTS_FILE")

	cfg.Port = getenvDefault("POWDER_PORT", "8080")

	refresh, err := getenvDuration("POWDER_REFRESH_INTERVAL", 6*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid POWDER_REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	maxAge, err := getenvDuration("POWDER_SNAPSHOT_MAX_AGE", 12*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("invalid POWDER_SNAPSHOT_MAX_AGE: %w", err)
	}
	cfg.SnapshotMaxAge = maxAge

	cfg.StoreMaxHistory = getenvInt("POWDER_STORE_MAX_HISTORY", 8)

	if tracked := os.Getenv("POWDER_TRACKED_RESORTS"); tracked != "" {
		for _, slug := range strings.Split(tracked, ",") {
			if slug = strings.TrimSpace(slug); slug != "" {
				cfg.TrackedResorts = append(cfg.TrackedResorts, slug)
			}
		}
	}

	return cfg, nil
}

// CacheConfig builds the httpcache configuration from the app config.
func (c *AppConfig) CacheConfig() httpcache.Config {
	return httpcache.Config{
		Enabled: c.CacheEnabled,
		TTL:     c.CacheTTL,
		Dir:     c.CacheDir,
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}

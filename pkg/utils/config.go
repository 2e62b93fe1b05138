package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type AuthConfig struct {
	JWTSecret     string
	JWTIssuer     string
	JWTDuration   time.Duration
	AdminPassword string
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("EVENTHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("EVENTHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "eventhub"
	}

	password := os.Getenv("EVENTHUB_ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}

	ttl := 24 * time.Hour
	if h := os.Getenv("EVENTHUB_JWT_TTL_HOURS"); h != "" {
		if n, err := strconv.Atoi(h); err == nil && n > 0 {
			ttl = time.Duration(n) * time.Hour
		}
	}

	return AuthConfig{
		JWTSecret:     secret,
		JWTIssuer:     issuer,
		JWTDuration:   ttl,
		AdminPassword: password,
	}
}

// ScraperConfig carries the pipeline/scheduler knobs. The env names
// match what the deployment already sets for the scraper jobs.
type ScraperConfig struct {
	Schedule     string // hourly | every_6_hours | every_12_hours | twice_daily | daily
	MaxEvents    int
	RunOnStartup bool
	Headless     bool
	SnapshotPath string
	SourcesPath  string // YAML file listing source adapters
}

func LoadScraperConfig() ScraperConfig {
	cfg := ScraperConfig{
		Schedule:     "daily",
		MaxEvents:    100,
		RunOnStartup: false,
		Headless:     true,
		SnapshotPath: "scraped_data/combined_events.json",
		SourcesPath:  "configs/sources.yml",
	}

	if s := os.Getenv("SCRAPER_SCHEDULE"); s != "" {
		cfg.Schedule = strings.ToLower(strings.TrimSpace(s))
	}
	if s := os.Getenv("SCRAPER_MAX_EVENTS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			cfg.MaxEvents = n
		}
	}
	cfg.RunOnStartup = envBool("SCRAPER_RUN_ON_STARTUP", cfg.RunOnStartup)
	cfg.Headless = envBool("HEADLESS_MODE", cfg.Headless)
	if s := os.Getenv("EVENTHUB_SNAPSHOT_PATH"); s != "" {
		cfg.SnapshotPath = s
	}
	if s := os.Getenv("EVENTHUB_SOURCES_PATH"); s != "" {
		cfg.SourcesPath = s
	}
	return cfg
}

func envBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch v {
	case "":
		return def
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

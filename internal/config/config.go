package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"innovata/internal/validation"
)

// Dataset names accepted by SheetURLFor.
const (
	DatasetProjects      = "projects"
	DatasetPrizes        = "prizes"
	DatasetAnnouncements = "announcements"
	DatasetFormats       = "formats"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr   string
	CORSOrigins  string // Comma-separated allowed origins, empty allows none cross-site
	RateLimitMax int    // POST requests per minute per IP

	// Data sources. SheetURL is the shared default for datasets without
	// their own URL; an empty URL disables the dataset.
	SheetURL              string
	ProjectsSheetURL      string
	PrizesSheetURL        string
	AnnouncementsSheetURL string
	FormatsSheetURL       string
	SheetFormat           string // "auto", "csv" or "xlsx"

	// Cache
	StaleTime       time.Duration
	RefreshInterval time.Duration
	FetchTimeout    time.Duration

	// Snapshot store
	RedisURL    string // env: REDIS_URL, default: "" (snapshots disabled)
	SnapshotTTL time.Duration

	// Tables file (thumbnail convention, resource icons, phase links)
	ConfigFile string

	// Directory served under the thumbnail base path
	ThumbnailDir string

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Innovata"
	SiteTagline string // env: SITE_TAGLINE, default: "Student innovation showcase"
	SiteFooter  string // env: SITE_FOOTER, default: "Innovata - Student innovation showcase"
	SiteLogoURL string // env: SITE_LOGO_URL, default: "" (no logo, text only)
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:          getEnv("ENV", "development"),
		ServerAddr:   getEnv("SERVER_ADDR", ":3000"),
		CORSOrigins:  getEnv("CORS_ORIGINS", ""),
		RateLimitMax: getInt("RATE_LIMIT_MAX", 30),

		SheetURL:              getEnv("SHEET_URL", ""),
		ProjectsSheetURL:      getEnv("PROJECTS_SHEET_URL", ""),
		PrizesSheetURL:        getEnv("PRIZES_SHEET_URL", ""),
		AnnouncementsSheetURL: getEnv("ANNOUNCEMENTS_SHEET_URL", ""),
		FormatsSheetURL:       getEnv("FORMATS_SHEET_URL", ""),
		SheetFormat:           getEnv("SHEET_FORMAT", "auto"),

		StaleTime:       getDuration("STALE_TIME", 5*time.Minute),
		RefreshInterval: getDuration("REFRESH_INTERVAL", 5*time.Minute),
		FetchTimeout:    getDuration("FETCH_TIMEOUT", 15*time.Second),

		RedisURL:    getEnv("REDIS_URL", ""),
		SnapshotTTL: getDuration("SNAPSHOT_TTL", 24*time.Hour),

		ConfigFile:   getEnv("CONFIG_FILE", "config.yaml"),
		ThumbnailDir: getEnv("THUMBNAIL_DIR", "./project-thumbnails"),

		SiteTitle:   getEnv("SITE_TITLE", "Innovata"),
		SiteTagline: getEnv("SITE_TAGLINE", "Student innovation showcase"),
		SiteFooter:  getEnv("SITE_FOOTER", "Innovata - Student innovation showcase"),
		SiteLogoURL: getEnv("SITE_LOGO_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		slog.Warn("ignoring invalid integer setting", "key", key, "value", raw)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("ignoring invalid duration setting", "key", key, "value", raw)
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// SheetURLFor returns the source URL for a dataset, falling back to the shared
// SHEET_URL. It returns "" when the dataset has no source.
func (c *Config) SheetURLFor(dataset string) string {
	var url string
	switch dataset {
	case DatasetProjects:
		url = c.ProjectsSheetURL
	case DatasetPrizes:
		url = c.PrizesSheetURL
	case DatasetAnnouncements:
		url = c.AnnouncementsSheetURL
	case DatasetFormats:
		url = c.FormatsSheetURL
	default:
		return ""
	}
	if url == "" {
		url = c.SheetURL
	}
	return url
}

// Validate checks the configured source URLs.
func (c *Config) Validate() error {
	sources := []struct{ key, url string }{
		{"SHEET_URL", c.SheetURL},
		{"PROJECTS_SHEET_URL", c.ProjectsSheetURL},
		{"PRIZES_SHEET_URL", c.PrizesSheetURL},
		{"ANNOUNCEMENTS_SHEET_URL", c.AnnouncementsSheetURL},
		{"FORMATS_SHEET_URL", c.FormatsSheetURL},
	}
	for _, src := range sources {
		if valid, msg := validation.ValidateSheetURL(src.url); !valid {
			return fmt.Errorf("%s: %s", src.key, msg)
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.SheetFormat)) {
	case "auto", "csv", "xlsx":
	default:
		return fmt.Errorf("SHEET_FORMAT: unsupported format %q", c.SheetFormat)
	}
	return nil
}

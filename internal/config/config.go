package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pauljones0/garden-stock-bot/internal/validator"
)

const (
	// DefaultScraperAPIURL wraps the stock page with a span text-extraction selector.
	DefaultScraperAPIURL = "https://web.scraper.workers.dev/?url=https%3A%2F%2Fvulcanvalues.com%2Fgrow-a-garden%2Fstock&selector=span&scrape=text&pretty=true"
	DefaultStockPageURL  = "https://vulcanvalues.com/grow-a-garden/stock"
	DefaultStateKey      = "gardenLastStockData"

	FetchModeProxy   = "proxy"
	FetchModePage    = "page"
	FetchModeBrowser = "browser"

	BackendFirestore = "firestore"
	BackendSQLite    = "sqlite"
	BackendMemory    = "memory"
)

type Config struct {
	DiscordWebhookURL string
	CronSecret        string
	RoleMentions      []string `validate:"dive,required"`
	Production        bool
	Port              string `validate:"required,numeric"`

	FetchMode      string        `validate:"oneof=proxy page browser"`
	ScraperAPIURL  string        `validate:"required,url"`
	StockPageURL   string        `validate:"required,url"`
	StockSelector  string        `validate:"required"`
	RequestTimeout time.Duration `validate:"gt=0"`

	StateBackend             string `validate:"oneof=firestore sqlite memory"`
	ProjectID                string `validate:"required_if=StateBackend firestore"`
	FirestoreCredentialsFile string
	SQLitePath               string `validate:"required_if=StateBackend sqlite"`
	StateKey                 string `validate:"required"`

	CatalogPath   string
	CheckInterval time.Duration `validate:"gte=0"`
	LogLevel      string        `validate:"oneof=debug info warn error"`
	LogFormat     string        `validate:"oneof=text json"`
}

// WebhookConfigured reports whether a real webhook destination is set.
func (c *Config) WebhookConfigured() bool {
	return c.DiscordWebhookURL != "" && c.DiscordWebhookURL != validator.WebhookPlaceholder
}

func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := validator.New()

	// A bad webhook only disables sending; fetching and parsing still run.
	discordWebhookURL := os.Getenv("DISCORD_WEBHOOK_URL")
	if err := v.ValidateVar(discordWebhookURL, "webhookurl"); err != nil {
		slog.Warn("DISCORD_WEBHOOK_URL is not a valid http(s) URL, Discord notifications will be skipped", "error", err)
		discordWebhookURL = ""
	}
	if discordWebhookURL == "" || discordWebhookURL == validator.WebhookPlaceholder {
		slog.Warn("DISCORD_WEBHOOK_URL not set, Discord notifications will be skipped")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = os.Getenv("NODE_ENV")
	}
	production := appEnv == "production"

	cronSecret := os.Getenv("CRON_SECRET")
	if production && cronSecret == "" {
		slog.Warn("CRON_SECRET not set in production, every trigger request will be rejected")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		slog.Info("Defaulting to port", "port", port)
	}

	requestTimeout, err := durationEnv("REQUEST_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	checkInterval, err := durationEnv("CHECK_INTERVAL", 0)
	if err != nil {
		return nil, err
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	stateBackend := os.Getenv("STATE_BACKEND")
	if stateBackend == "" {
		stateBackend = BackendSQLite
		if projectID != "" {
			stateBackend = BackendFirestore
		}
	}

	cfg := &Config{
		DiscordWebhookURL:        discordWebhookURL,
		CronSecret:               cronSecret,
		RoleMentions:             strings.Fields(os.Getenv("DISCORD_ROLE_IDS_TO_PING")),
		Production:               production,
		Port:                     port,
		FetchMode:                envOr("FETCH_MODE", FetchModeProxy),
		ScraperAPIURL:            envOr("SCRAPER_API_URL", DefaultScraperAPIURL),
		StockPageURL:             envOr("STOCK_PAGE_URL", DefaultStockPageURL),
		StockSelector:            envOr("STOCK_SELECTOR", "span"),
		RequestTimeout:           requestTimeout,
		StateBackend:             stateBackend,
		ProjectID:                projectID,
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		SQLitePath:               envOr("SQLITE_PATH", "garden-stock.db"),
		StateKey:                 envOr("STATE_KEY", DefaultStateKey),
		CatalogPath:              os.Getenv("CATALOG_PATH"),
		CheckInterval:            checkInterval,
		LogLevel:                 strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFormat:                strings.ToLower(envOr("LOG_FORMAT", "text")),
	}

	if err := v.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadDotEnv preloads ENV_FILE (default .env) without overriding variables already set.
func loadDotEnv() error {
	path := envOr("ENV_FILE", ".env")
	err := godotenv.Load(path)
	if err == nil {
		slog.Info("Loaded environment file", "path", path)
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file %q: %w", path, err)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

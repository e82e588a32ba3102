package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// SMTPConfig holds the raw SMTP relay settings.
type SMTPConfig struct {
	Host     string
	Port     string
	User     string
	Password string
}

// DatabaseConfig sizes the pgx pool.
type DatabaseConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// SenderConfig identifies the outbound sender used in campaign emails.
type SenderConfig struct {
	Name    string
	Email   string
	Company string
}

// Config aggregates application-wide configuration values.
type Config struct {
	Env      string
	LogLevel string
	Port     string

	DatabaseURL            string
	Database               DatabaseConfig
	SupabaseURL            string
	SupabaseServiceRoleKey string

	JWTSecret    string
	TokenTTL     time.Duration
	AuthRequired bool
	DemoMode     bool

	EmailVerifyMX bool

	ApolloAPIKey       string
	ApolloBaseURL      string
	ApolloRateLimit    RateLimitConfig
	ContactsPerCompany int

	CrunchbaseAPIKey string
	NewsAPIKey       string
	NewsFeeds        []string
	ScrapeSources    []string

	OpenAIAPIKey string
	OpenAIModel  string

	SendGridAPIKey string
	SMTP           SMTPConfig
	Sender         SenderConfig
	EmailRateLimit RateLimitConfig

	RateLimitDiscovery RateLimitConfig
	ScoringConfigPath  string
}

// MailMode names the transport selected for campaign delivery.
type MailMode string

const (
	MailModeSendGrid MailMode = "sendgrid"
	MailModeSMTP     MailMode = "smtp"
	MailModeDemo     MailMode = "demo"
)

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("PORT", "8080"),

		DatabaseURL: getEnv("DATABASE_URL", os.Getenv("SUPABASE_DB_URL")),
		Database: DatabaseConfig{
			MaxConns:        int32(parseInt(os.Getenv("DB_MAX_CONNS"), 10)),
			MinConns:        int32(parseInt(os.Getenv("DB_MIN_CONNS"), 0)),
			MaxConnLifetime: durationOr(os.Getenv("DB_MAX_CONN_LIFETIME"), time.Hour),
			MaxConnIdleTime: durationOr(os.Getenv("DB_MAX_CONN_IDLE"), 15*time.Minute),
			ConnectTimeout:  durationOr(os.Getenv("DB_CONNECT_TIMEOUT"), 10*time.Second),
		},
		SupabaseURL:            os.Getenv("NEXT_PUBLIC_SUPABASE_URL"),
		SupabaseServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),

		JWTSecret:    getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:     parseDuration(getEnv("JWT_TTL", "24h")),
		AuthRequired: parseBool(os.Getenv("AUTH_REQUIRED")),
		DemoMode:     parseBool(os.Getenv("DEMO_MODE")),

		EmailVerifyMX: parseBool(os.Getenv("EMAIL_VERIFY_MX")),

		ApolloAPIKey:       strings.TrimSpace(os.Getenv("APOLLO_API_KEY")),
		ApolloBaseURL:      getEnv("APOLLO_BASE_URL", "https://api.apollo.io/api/v1"),
		ContactsPerCompany: parseInt(os.Getenv("CONTACTS_PER_COMPANY"), 10),

		CrunchbaseAPIKey: strings.TrimSpace(os.Getenv("CRUNCHBASE_API_KEY")),
		NewsAPIKey:       strings.TrimSpace(os.Getenv("NEWS_API_KEY")),
		NewsFeeds:        splitList(os.Getenv("NEWS_FEEDS")),
		ScrapeSources:    splitList(os.Getenv("SCRAPE_SOURCES")),

		OpenAIAPIKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		SendGridAPIKey: strings.TrimSpace(os.Getenv("SENDGRID_API_KEY")),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
		},
		Sender: SenderConfig{
			Name:    getEnv("SENDER_NAME", "Ferreira CTO"),
			Email:   getEnv("SENDER_EMAIL", "hello@ferreiracto.com"),
			Company: getEnv("SENDER_COMPANY", "Ferreira CTO"),
		},

		ScoringConfigPath: os.Getenv("SCORING_CONFIG"),
	}

	limits := map[string]*RateLimitConfig{
		"APOLLO_RATE_LIMIT":    &cfg.ApolloRateLimit,
		"EMAIL_RATE_LIMIT":     &cfg.EmailRateLimit,
		"RATE_LIMIT_DISCOVERY": &cfg.RateLimitDiscovery,
	}
	defaults := map[string]string{
		"APOLLO_RATE_LIMIT":    "5/sec",
		"EMAIL_RATE_LIMIT":     "1/sec",
		"RATE_LIMIT_DISCOVERY": "20/min",
	}
	for key, target := range limits {
		rl, err := parseRateLimit(getEnv(key, defaults[key]))
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", key, err)
		}
		*target = rl
	}

	if cfg.ContactsPerCompany <= 0 || cfg.ContactsPerCompany > 50 {
		return nil, fmt.Errorf("CONTACTS_PER_COMPANY must be between 1 and 50, got %d", cfg.ContactsPerCompany)
	}

	if cfg.Database.MaxConns <= 0 || cfg.Database.MinConns < 0 || cfg.Database.MinConns > cfg.Database.MaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNS/DB_MAX_CONNS must satisfy 0 <= min <= max, max >= 1, got %d/%d", cfg.Database.MinConns, cfg.Database.MaxConns)
	}

	return cfg, nil
}

// ApolloEnabled reports whether live Apollo discovery can be used.
// DEMO_MODE and the literal key "demo" both force the curated dataset.
func (c *Config) ApolloEnabled() bool {
	if c.DemoMode {
		return false
	}
	return c.ApolloAPIKey != "" && !strings.EqualFold(c.ApolloAPIKey, "demo")
}

// DatabaseEnabled reports whether a Postgres DSN is configured.
func (c *Config) DatabaseEnabled() bool {
	return strings.TrimSpace(c.DatabaseURL) != ""
}

// AIEnabled reports whether the LLM scorer can call upstream.
func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// MailMode selects SendGrid over SMTP, falling back to the demo mailer.
func (c *Config) MailMode() MailMode {
	switch {
	case c.SendGridAPIKey != "":
		return MailModeSendGrid
	case c.SMTP.Host != "":
		return MailModeSMTP
	default:
		return MailModeDemo
	}
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

func durationOr(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(input))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseBool(input string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(input))
	return err == nil && v
}

func parseInt(input string, fallback int) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return fallback
	}
	v, err := strconv.Atoi(input)
	if err != nil {
		return -1
	}
	return v
}

func splitList(input string) []string {
	var out []string
	for _, part := range strings.Split(input, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anirbansen/credit-insight/internal/engine"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBConn    string
	LogLevel  string
	JWTSecret string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	AlertEmail   string

	BatchSchedule string

	WindowSizes          []int
	TrendStableThreshold float64
	ScoreValidMin        int
	ScoreValidMax        int
}

// NewConfig loads configuration from environment variables. Invalid engine
// options are rejected here, before any analysis can run.
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		DBConn:        getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=credit sslmode=disable"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SenderEmail:   getEnv("SENDER_EMAIL", "alerts@credit-insight.local"),
		AlertEmail:    getEnv("ALERT_EMAIL", ""),
		BatchSchedule: getEnv("BATCH_SCHEDULE", "0 2 * * *"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	windows, err := parseWindowSizes(getEnv("CI_WINDOW_SIZES", "3,6,12,24"))
	if err != nil {
		return nil, fmt.Errorf("CI_WINDOW_SIZES: %w", err)
	}
	cfg.WindowSizes = windows

	cfg.TrendStableThreshold, err = strconv.ParseFloat(getEnv("CI_TREND_STABLE_THRESHOLD", "5.0"), 64)
	if err != nil {
		return nil, fmt.Errorf("CI_TREND_STABLE_THRESHOLD: %w", err)
	}
	cfg.ScoreValidMin, err = strconv.Atoi(getEnv("CI_SCORE_MIN", "300"))
	if err != nil {
		return nil, fmt.Errorf("CI_SCORE_MIN: %w", err)
	}
	cfg.ScoreValidMax, err = strconv.Atoi(getEnv("CI_SCORE_MAX", "900"))
	if err != nil {
		return nil, fmt.Errorf("CI_SCORE_MAX: %w", err)
	}

	if err := cfg.EngineOptions().Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EngineOptions maps the configuration onto the engine's option set.
func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		WindowSizes:          c.WindowSizes,
		TrendStableThreshold: c.TrendStableThreshold,
		ScoreValidMin:        c.ScoreValidMin,
		ScoreValidMax:        c.ScoreValidMax,
	}
}

func parseWindowSizes(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		size, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad window size %q: %w", part, err)
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

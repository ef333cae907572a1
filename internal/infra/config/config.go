package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvPracticumToken    = "PRACTICUM_TOKEN"
	EnvTelegramToken     = "TELEGRAM_TOKEN"
	EnvTelegramChatID    = "TELEGRAM_CHAT_ID"
	EnvPracticumEndpoint = "PRACTICUM_ENDPOINT"
	EnvPollSchedule      = "POLL_SCHEDULE"
	EnvFromDate          = "FROM_DATE"
	EnvLogLevel          = "LOG_LEVEL"
	EnvEnvironment       = "ENVIRONMENT"
)

const (
	DefaultEndpoint     = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultPollSchedule = "@every 10m"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken    string
	TelegramToken     string
	TelegramChatID    string
	PracticumEndpoint string
	PollSchedule      string // robfig/cron spec, e.g. "@every 10m"
	FromDate          int64  // 0 means "start from now"
	LogLevel          string
	Environment       string
}

// MissingTokensError lists every required variable that was not set.
type MissingTokensError struct {
	Missing []string
}

func (e *MissingTokensError) Error() string {
	return "Отсутствуют обязательные переменные окружения: " + strings.Join(e.Missing, ", ")
}

// Load reads configuration from environment variables and .env file (if present).
// Credentials are not validated here, see CheckTokens.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables; a missing .env is fine.
	_ = godotenv.Load()

	cfg := &AppConfig{
		PracticumToken:    strings.TrimSpace(os.Getenv(EnvPracticumToken)),
		TelegramToken:     strings.TrimSpace(os.Getenv(EnvTelegramToken)),
		TelegramChatID:    strings.TrimSpace(os.Getenv(EnvTelegramChatID)),
		PracticumEndpoint: os.Getenv(EnvPracticumEndpoint),
		PollSchedule:      os.Getenv(EnvPollSchedule),
		LogLevel:          strings.ToLower(os.Getenv(EnvLogLevel)),
		Environment:       strings.ToLower(os.Getenv(EnvEnvironment)),
	}

	if cfg.PracticumEndpoint == "" {
		cfg.PracticumEndpoint = DefaultEndpoint
	}
	if cfg.PollSchedule == "" {
		cfg.PollSchedule = DefaultPollSchedule
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	if fromDateStr := os.Getenv(EnvFromDate); fromDateStr != "" {
		fromDate, err := strconv.ParseInt(fromDateStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvFromDate, err)
		}
		if fromDate < 0 {
			return nil, fmt.Errorf("invalid %s: must not be negative, got %d", EnvFromDate, fromDate)
		}
		cfg.FromDate = fromDate
	}

	return cfg, nil
}

// CheckTokens confirms that all credentials are present. Every missing name is
// reported, in a fixed order, not just the first one.
func CheckTokens(cfg *AppConfig) error {
	required := []struct {
		name  string
		value string
	}{
		{EnvPracticumToken, cfg.PracticumToken},
		{EnvTelegramToken, cfg.TelegramToken},
		{EnvTelegramChatID, cfg.TelegramChatID},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return &MissingTokensError{Missing: missing}
	}
	return nil
}

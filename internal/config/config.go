package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"invoicer/internal/logger"
	"invoicer/internal/money"
)

type Config struct {
	// Storage Configuration
	DBPath string

	// Presentation Configuration
	Locale   string
	Currency string

	// Draft Defaults
	DefaultTaxRate decimal.Decimal
	DueDays        int

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	taxRate, err := decimal.NewFromString(getEnv("INVOICER_DEFAULT_TAX_RATE", "19"))
	if err != nil {
		return nil, fmt.Errorf("INVOICER_DEFAULT_TAX_RATE is not a number: %w", err)
	}
	dueDays, err := strconv.Atoi(getEnv("INVOICER_DUE_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("INVOICER_DUE_DAYS is not an integer: %w", err)
	}

	config := &Config{
		DBPath:         getEnv("INVOICER_DB_PATH", "invoices.db"),
		Locale:         getEnv("INVOICER_LOCALE", money.DefaultLocale),
		Currency:       getEnv("INVOICER_CURRENCY", money.DefaultCurrency),
		DefaultTaxRate: taxRate,
		DueDays:        dueDays,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:      getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Default returns the configuration used when the environment cannot be loaded.
func Default() *Config {
	return &Config{
		DBPath:         "invoices.db",
		Locale:         money.DefaultLocale,
		Currency:       money.DefaultCurrency,
		DefaultTaxRate: decimal.NewFromInt(19),
		DueDays:        30,
		LogLevel:       "info",
		LogFormat:      "console",
		LogTimeFormat:  "2006-01-02T15:04:05Z07:00",
		LogOutput:      "stderr",
	}
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("INVOICER_DB_PATH is required")
	}
	if _, err := money.NewFormatter(c.Locale, c.Currency); err != nil {
		return fmt.Errorf("INVOICER_LOCALE/INVOICER_CURRENCY: %w", err)
	}
	if c.DefaultTaxRate.IsNegative() || c.DefaultTaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("INVOICER_DEFAULT_TAX_RATE must be between 0 and 100")
	}
	if c.DueDays < 0 {
		return fmt.Errorf("INVOICER_DUE_DAYS must not be negative")
	}
	return nil
}

// Formatter returns the money formatter for the configured locale and currency.
func (c *Config) Formatter() (*money.Formatter, error) {
	return money.NewFormatter(c.Locale, c.Currency)
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

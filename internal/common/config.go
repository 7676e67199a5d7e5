package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Catalog  CatalogConfig
	LLM      LLMConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// CatalogConfig holds remote catalog (monday.com) configuration
type CatalogConfig struct {
	APIURL      string
	APIToken    string
	BoardID     string
	TitleColumn string
	DateColumn  string
	SinceDate   string
	Threshold   float64
	Timeout     time.Duration
	PageLimit   int
	SearchLimit int
}

// LLMConfig holds completion oracle configuration
type LLMConfig struct {
	APIKey         string
	Model          string
	Timeout        time.Duration
	MaxAttempts    int
	BackoffFloor   time.Duration
	BackoffCeiling time.Duration
}

// DatabaseConfig holds enquiry-history database configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			APIURL:      getEnv("MONDAY_API_URL", "https://api.monday.com/v2/"),
			APIToken:    getEnv("MONDAY_API_TOKEN", ""),
			BoardID:     getEnv("MONDAY_BOARD_ID", "1825117125"),
			TitleColumn: getEnv("MONDAY_TITLE_COLUMN", "text3__1"),
			DateColumn:  getEnv("MONDAY_DATE_COLUMN", "date9__1"),
			SinceDate:   getEnv("MONDAY_SINCE_DATE", "2021-01-01"),
			Threshold:   getEnvAsFloat64("MATCH_THRESHOLD", 0.55),
			Timeout:     getEnvAsDuration("MONDAY_TIMEOUT", 30*time.Second),
			PageLimit:   getEnvAsInt("MONDAY_PAGE_LIMIT", 500),
			SearchLimit: getEnvAsInt("MONDAY_SEARCH_LIMIT", 10),
		},
		LLM: LLMConfig{
			APIKey:         getEnv("GOOGLE_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout:        getEnvAsDuration("GEMINI_TIMEOUT", 45*time.Second),
			MaxAttempts:    getEnvAsInt("GEMINI_MAX_ATTEMPTS", 5),
			BackoffFloor:   getEnvAsDuration("GEMINI_BACKOFF_FLOOR", 500*time.Millisecond),
			BackoffCeiling: getEnvAsDuration("GEMINI_BACKOFF_CEILING", 16*time.Second),
		},
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", "enquiry-history.db"),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Catalog.APIToken == "" {
		return NewAppError("CONFIG_ERROR", "MONDAY_API_TOKEN is required", ErrInvalidInput)
	}
	if c.Catalog.BoardID == "" {
		return NewAppError("CONFIG_ERROR", "MONDAY_BOARD_ID is required", ErrInvalidInput)
	}
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GOOGLE_API_KEY is required", ErrInvalidInput)
	}
	if c.Catalog.Threshold < 0 || c.Catalog.Threshold > 1 {
		return NewAppError("CONFIG_ERROR", "MATCH_THRESHOLD must be within [0,1]", ErrInvalidInput)
	}
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	return nil
}

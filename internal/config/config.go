// Package config provides application configuration loading from environment variables and .env files.
// It uses viper for flexible configuration management with sensible defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds all application configuration loaded from environment variables or .env file.
// Configuration priority: environment variables > .env file > defaults.
// It is loaded once at startup and treated as read-only afterwards.
type Config struct {
	AppEnv          string        // Application environment (dev, staging, prod)
	HTTPAddr        string        // HTTP server bind address (e.g., ":3000")
	MetricsAddr     string        // Metrics server bind address; empty disables it
	OfficialEmail   string        // Identity included in every response envelope
	GeminiAPIKey    string        // Gemini credentials; empty disables the live AI path
	GeminiModel     string        // Gemini model name
	AITimeout       time.Duration // Upper bound for a single live AI call
	LogLevel        string        // zerolog level (debug, info, warn, error)
	LogFormat       string        // json or console
	OTLPEndpoint    string        // OTLP/HTTP trace endpoint (host:port); empty disables tracing
	ShutdownTimeout time.Duration // Graceful shutdown bound
}

const defaultOfficialEmail = "prajyant2494.be23@chitkara.edu.in"

// Load reads configuration from environment variables and .env file (if present).
// Environment variables take precedence over .env file values.
//
// The HTTP address is APP_HTTP_ADDR when set, otherwise ":" + PORT.
// Use Validate() to check the result.
func Load() (*Config, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigFile(".env") // Optional; silently ignored if file doesn't exist
	_ = viperInstance.ReadInConfig()    // Ignore error - .env is optional
	viperInstance.AutomaticEnv()        // Read from environment variables

	setConfigDefaults(viperInstance)

	httpAddr := strings.TrimSpace(viperInstance.GetString("APP_HTTP_ADDR"))
	if httpAddr == "" {
		if port := strings.TrimSpace(viperInstance.GetString("PORT")); port != "" {
			httpAddr = ":" + port
		}
	}

	return &Config{
		AppEnv:          viperInstance.GetString("APP_ENV"),
		HTTPAddr:        httpAddr,
		MetricsAddr:     viperInstance.GetString("METRICS_ADDR"),
		OfficialEmail:   strings.TrimSpace(viperInstance.GetString("OFFICIAL_EMAIL")),
		GeminiAPIKey:    strings.TrimSpace(viperInstance.GetString("GEMINI_API_KEY")),
		GeminiModel:     viperInstance.GetString("GEMINI_MODEL"),
		AITimeout:       viperInstance.GetDuration("AI_TIMEOUT"),
		LogLevel:        strings.ToLower(viperInstance.GetString("LOG_LEVEL")),
		LogFormat:       strings.ToLower(viperInstance.GetString("LOG_FORMAT")),
		OTLPEndpoint:    viperInstance.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ShutdownTimeout: viperInstance.GetDuration("SHUTDOWN_TIMEOUT"),
	}, nil
}

// setConfigDefaults sets default values for all configuration options.
func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", "3000")
	v.SetDefault("METRICS_ADDR", ":9090")
	v.SetDefault("OFFICIAL_EMAIL", defaultOfficialEmail)
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("AI_TIMEOUT", "5s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// AIEnabled reports whether credentials for the live AI path are present.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}

// ValidationError represents a configuration validation error with details about what failed.
type ValidationError struct {
	Field   string // Name of the configuration field
	Message string // Human-readable error message
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("config validation failed [%s]: %s", e.Field, e.Message)
}

// Validate checks the configuration and returns the first problem found.
//
// Validation Rules:
//  1. HTTPAddr must be non-empty
//  2. OfficialEmail must be non-empty and look like an address
//  3. AITimeout and ShutdownTimeout must be positive
//  4. LogLevel must be a zerolog level
//  5. LogFormat must be "json" or "console"
//
// A missing GEMINI_API_KEY is not an error; the service answers AI
// questions from the fallback table instead.
func (c *Config) Validate() error {
	if c.HTTPAddr == "" {
		return ValidationError{
			Field:   "PORT",
			Message: "HTTP server address cannot be empty (set PORT or APP_HTTP_ADDR)",
		}
	}

	if c.OfficialEmail == "" || !strings.Contains(c.OfficialEmail, "@") {
		return ValidationError{
			Field:   "OFFICIAL_EMAIL",
			Message: fmt.Sprintf("must be an email address, got '%s'", c.OfficialEmail),
		}
	}

	if c.AITimeout <= 0 {
		return ValidationError{
			Field:   "AI_TIMEOUT",
			Message: "must be a positive duration (e.g. 5s)",
		}
	}

	if c.ShutdownTimeout <= 0 {
		return ValidationError{
			Field:   "SHUTDOWN_TIMEOUT",
			Message: "must be a positive duration (e.g. 10s)",
		}
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		return ValidationError{
			Field:   "LOG_LEVEL",
			Message: fmt.Sprintf("unknown log level '%s'", c.LogLevel),
		}
	}

	if c.LogFormat != "json" && c.LogFormat != "console" {
		return ValidationError{
			Field:   "LOG_FORMAT",
			Message: fmt.Sprintf("must be 'json' or 'console', got '%s'", c.LogFormat),
		}
	}

	return nil
}

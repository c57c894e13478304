package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	AIBackend AIBackendConfig
	Generator GeneratorConfig
	KVStore   KVStoreConfig
	Auth      AuthConfig
	Log       LogConfig

	PendingPollInterval time.Duration
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type DatabaseConfig struct {
	URL string
}

// AIBackendConfig points at the planning backend. Timeout 0 means the
// client never gives up on its own; requests end with the caller's context.
type AIBackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type GeneratorConfig struct {
	Provider     string // backend | gemini | openai
	Path         string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
}

// KVStoreConfig: an empty Path keeps state in memory.
type KVStoreConfig struct {
	Path string
}

type AuthConfig struct {
	JWTSecret string
}

type LogConfig struct {
	Level       string
	Development bool
}

// Load loads configuration from environment variables, reading .env first
// when it exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
			AllowedOrigins:  getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("POSTGRES_URL"),
		},
		AIBackend: AIBackendConfig{
			BaseURL: getEnv("AI_BACKEND_URL", "http://127.0.0.1:5000"),
			Timeout: getDurationEnv("AI_BACKEND_TIMEOUT", 0),
		},
		Generator: GeneratorConfig{
			Provider:     strings.ToLower(getEnv("TRIP_GENERATOR_PROVIDER", "backend")),
			Path:         getEnv("TRIP_GENERATOR_PATH", "/generate-trip"),
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
			GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		KVStore: KVStoreConfig{
			Path: os.Getenv("KV_STORE_PATH"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Log: LogConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnv("APP_ENV", "development") != "production",
		},
		PendingPollInterval: getDurationEnv("PENDING_POLL_INTERVAL", 5*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("POSTGRES_URL is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.PendingPollInterval <= 0 {
		return errors.New("PENDING_POLL_INTERVAL must be positive")
	}

	switch c.Generator.Provider {
	case "backend":
	case "gemini":
		if c.Generator.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required when using the gemini generator")
		}
	case "openai":
		if c.Generator.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required when using the openai generator")
		}
	default:
		return fmt.Errorf("unsupported TRIP_GENERATOR_PROVIDER %q. Use 'backend', 'gemini' or 'openai'", c.Generator.Provider)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getListEnv splits a comma-separated value, dropping blanks.
func getListEnv(key string, defaultValue []string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

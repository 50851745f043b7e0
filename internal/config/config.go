package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultUpstreamBaseURL = "https://api.openweathermap.org/data/2.5"

type Config struct {
	Port            string
	WeatherAPIKey   string
	UpstreamBaseURL string
	EscapeCity      bool
	UpstreamTimeout time.Duration
	KafkaBrokers    []string
	LookupTopic     string
	DatabaseURL     string
	LookupRetention time.Duration
	LogLevel        string
	LogFormat       string
}

// Load reads a .env file when present and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env not loaded (ok for prod)")
	}
	return FromEnv()
}

func FromEnv() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		WeatherAPIKey:   os.Getenv("OPENWEATHER_API_KEY"),
		UpstreamBaseURL: strings.TrimRight(getEnv("OPENWEATHER_BASE_URL", DefaultUpstreamBaseURL), "/"),
		EscapeCity:      getEnvBool("GATEWAY_ESCAPE_CITY", true),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		KafkaBrokers:    getEnvSlice("KAFKA_BROKERS", nil),
		LookupTopic:     getEnv("LOOKUP_KAFKA_TOPIC", "weather-lookups"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		LookupRetention: getEnvDuration("LOOKUP_RETENTION", 30*24*time.Hour),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}
}

func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c *Config) DatabaseEnabled() bool {
	return c.DatabaseURL != ""
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

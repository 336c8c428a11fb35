package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port          string
	UpstreamURL   string
	UpstreamToken string
	MirrorPath    string
	LogLevel      slog.Level
	HTTPTimeout   time.Duration
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8585"),
		UpstreamURL:   getEnv("UPSTREAM_URL", "http://localhost:8080/api/v1"),
		UpstreamToken: getEnv("UPSTREAM_TOKEN", ""),
		MirrorPath:    getEnv("MIRROR_PATH", "./maxicoffee-mirror.db"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		slog.Warn("Invalid LOG_LEVEL, falling back to info", "LOG_LEVEL", os.Getenv("LOG_LEVEL"))
		level = slog.LevelInfo
	}
	cfg.LogLevel = level

	timeoutStr := getEnv("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		slog.Warn("Invalid HTTP_TIMEOUT, falling back to 10s", "HTTP_TIMEOUT", timeoutStr)
		timeout = 10 * time.Second
	}
	cfg.HTTPTimeout = timeout

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

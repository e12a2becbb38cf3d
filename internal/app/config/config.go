package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL string
	HTTPAddr    string
	// RedisAddr is optional; when empty, change signals stay in-process.
	RedisAddr       string
	DebounceWindow  time.Duration
	EventPoolSize   int
	MergePrecedence string
}

func Load() (Config, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	cfg := Config{
		DatabaseURL:     dbURL,
		HTTPAddr:        addr,
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		DebounceWindow:  100 * time.Millisecond,
		EventPoolSize:   4,
		MergePrecedence: "origin",
	}

	if v := os.Getenv("ATTENDANCE_DEBOUNCE_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return Config{}, fmt.Errorf("ATTENDANCE_DEBOUNCE_MS must be a positive integer, got %q", v)
		}
		cfg.DebounceWindow = time.Duration(ms) * time.Millisecond
	}

	if v := os.Getenv("EVENT_POOL_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("EVENT_POOL_SIZE must be a positive integer, got %q", v)
		}
		cfg.EventPoolSize = n
	}

	switch v := os.Getenv("MERGE_PRECEDENCE"); v {
	case "", "origin", "ministry":
		if v != "" {
			cfg.MergePrecedence = v
		}
	default:
		return Config{}, fmt.Errorf("MERGE_PRECEDENCE must be origin or ministry, got %q", v)
	}

	return cfg, nil
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"time"

	"timegrid/pkg/logger"
)

type Config struct {
	Port     string
	LogLevel string

	TimetableServiceURL string
	TimetableTimeout    time.Duration

	// EventsTopic enables outcome event publishing when non-empty.
	EventsTopic    string
	EventsDLQTopic string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	DefaultStartOfDay   string
	DefaultBlockMinutes int
	DefaultBlocksPerDay int
	MaxBlocksPerDay     int
	MaxBlockMinutes     int

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port:     getEnvStr(EnvPort, DefaultPort),
		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),

		TimetableServiceURL: getEnvStr(EnvTimetableServiceURL, DefaultTimetableServiceURL),
		TimetableTimeout:    getEnvDuration(EnvTimetableTimeout, DefaultTimetableTimeout),

		EventsTopic:    getEnvStr(EnvEventsTopic, ""),
		EventsDLQTopic: getEnvStr(EnvEventsDLQTopic, ""),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		DefaultStartOfDay:   getEnvStr(EnvDefaultStartOfDay, DefaultDefaultStartOfDay),
		DefaultBlockMinutes: getEnvNum(EnvDefaultBlockDuration, DefaultDefaultBlockDuration),
		DefaultBlocksPerDay: getEnvNum(EnvDefaultBlocksPerDay, DefaultDefaultBlocksPerDay),
		MaxBlocksPerDay:     getEnvNum(EnvMaxBlocksPerDay, DefaultMaxBlocksPerDay),
		MaxBlockMinutes:     getEnvNum(EnvMaxBlockDurationMin, DefaultMaxBlockDurationMin),
	}

	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    "json",
		AddSource: true,
		Service:   serviceName,
	})

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.TimetableServiceURL == "" {
		errors = append(errors, "TimetableServiceURL cannot be empty")
	} else if u, err := url.Parse(cfg.TimetableServiceURL); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("TimetableServiceURL must be an absolute URL, got: %s", cfg.TimetableServiceURL))
	}

	if cfg.TimetableTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("TimetableTimeout must be positive, got: %s", cfg.TimetableTimeout))
	}
	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	timeRegex := regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	if !timeRegex.MatchString(cfg.DefaultStartOfDay) {
		errors = append(errors, fmt.Sprintf("DefaultStartOfDay must be in HH:MM format (00:00-23:59), got: %s", cfg.DefaultStartOfDay))
	}
	if cfg.DefaultBlockMinutes <= 0 {
		errors = append(errors, fmt.Sprintf("DefaultBlockMinutes must be positive, got: %d", cfg.DefaultBlockMinutes))
	}
	if cfg.DefaultBlocksPerDay <= 0 {
		errors = append(errors, fmt.Sprintf("DefaultBlocksPerDay must be positive, got: %d", cfg.DefaultBlocksPerDay))
	}
	if cfg.MaxBlocksPerDay < cfg.DefaultBlocksPerDay {
		errors = append(errors, fmt.Sprintf("MaxBlocksPerDay (%d) must be >= DefaultBlocksPerDay (%d)", cfg.MaxBlocksPerDay, cfg.DefaultBlocksPerDay))
	}
	if cfg.MaxBlockMinutes < cfg.DefaultBlockMinutes {
		errors = append(errors, fmt.Sprintf("MaxBlockMinutes (%d) must be >= DefaultBlockMinutes (%d)", cfg.MaxBlockMinutes, cfg.DefaultBlockMinutes))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"timetable_service_url", cfg.TimetableServiceURL,
		"timetable_timeout", cfg.TimetableTimeout,
		"events_topic", cfg.EventsTopic,
		"events_dlq_topic", cfg.EventsDLQTopic,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"default_start_of_day", cfg.DefaultStartOfDay,
		"default_block_minutes", cfg.DefaultBlockMinutes,
		"default_blocks_per_day", cfg.DefaultBlocksPerDay,
		"max_blocks_per_day", cfg.MaxBlocksPerDay,
		"max_block_minutes", cfg.MaxBlockMinutes,
	)
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultTimetableServiceURL = "http://localhost:8090"
	DefaultTimetableTimeout    = 10 * time.Second

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 64 * 1024 // configuration payloads are small

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultDefaultStartOfDay    = "08:00"
	DefaultDefaultBlockDuration = 90
	DefaultDefaultBlocksPerDay  = 4
	DefaultMaxBlocksPerDay      = 48
	DefaultMaxBlockDurationMin  = 1440
)

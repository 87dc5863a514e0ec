package config

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvTimetableServiceURL = "TIMETABLE_SERVICE_URL"
	EnvTimetableTimeout    = "TIMETABLE_TIMEOUT"

	EnvEventsTopic    = "EVENTS_TOPIC"
	EnvEventsDLQTopic = "EVENTS_DLQ_TOPIC"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultStartOfDay    = "DEFAULT_START_OF_DAY"
	EnvDefaultBlockDuration = "DEFAULT_BLOCK_DURATION_MIN"
	EnvDefaultBlocksPerDay  = "DEFAULT_BLOCKS_PER_DAY"
	EnvMaxBlocksPerDay      = "MAX_BLOCKS_PER_DAY"
	EnvMaxBlockDurationMin  = "MAX_BLOCK_DURATION_MIN"
)

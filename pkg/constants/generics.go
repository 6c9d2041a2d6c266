package constants

import "time"

// ISO 8601 with millisecond precision, as produced by JavaScript's toISOString
// when the time is in UTC. Waitlist timestamps use this format.
const ISO8601MillisFormat = "2006-01-02T15:04:05.000Z07:00"

// Default rate limiting configuration
const (
	DefaultRateLimitRequests      = 100
	DefaultRateLimitWindowMinutes = 1
)

func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}

// Upload limits for the font generation endpoint.
const (
	MaxPDFUploadBytes     int64 = 10 << 20
	UploadRouteBodyLimit  int64 = 32 << 20
	DefaultBodyLimitBytes int64 = 1 << 20
)

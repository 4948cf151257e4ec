package constants

import "time"

type ContextKey string

const TraceIDKey ContextKey = "trace_id"

const (
	ServerReadHeaderTimeout = 5 * time.Second
	ServerReadTimeout       = 15 * time.Second
	ServerWriteTimeout      = 15 * time.Second
	ServerIdleTimeout       = 60 * time.Second
)

const DefaultMaxRequestSize = 1 << 20

const (
	DefaultAccessTokenTTL = 24 * time.Hour
	MinJWTSecretLength    = 32
)

const (
	RateLimitLoginRequestsPerSecond   = 1.0
	RateLimitLoginBurst               = 5
	RateLimitSignupRequestsPerSecond  = 0.5
	RateLimitSignupBurst              = 3
	RateLimitGeneralRequestsPerSecond = 20.0
	RateLimitGeneralBurst             = 40
	RateLimitCleanupInterval          = 10 * time.Minute
)

const DBPoolMetricsInterval = 30 * time.Second

package common

type contextKey string

const (
	TraceIdKey              contextKey = "trace_id"
	UserIDContextKey        contextKey = "user_id"
	UserRoleContextKey      contextKey = "user_role"
	ClientIdentityKey       contextKey = "client_identity"
	FingerprintIdContextKey contextKey = "fingerprint_id"
	APIVersionContextKey    contextKey = "api_version"
	LatencyContextKey       contextKey = "__execution_time"
)

package common

import "time"

const (
	ProductCacheTTL      = 5 * time.Minute
	ProductListCacheTTL  = 1 * time.Minute
	FarmerCacheTTL       = 10 * time.Minute
	UserCacheTTL         = 5 * time.Minute
	SubscriptionCacheTTL = 5 * time.Minute

	CsrfTokenHeader = "X-CSRF-Token" // #nosec G101 -- header name, not a credential

	RateLimitLimitHeader     = "X-RateLimit-Limit"
	RateLimitRemainingHeader = "X-RateLimit-Remaining"
	RateLimitResetHeader     = "X-RateLimit-Reset"
	RetryAfterHeader         = "Retry-After"
)

package middleware

import "github.com/gofiber/fiber/v2"

// Middleware is the common shape every middleware in the chain implements.
type Middleware interface {
	Middleware() fiber.Handler
}

// Transport bundles the chain in its mounting order.
type Transport struct {
	PanicRecoverMiddleware Middleware
	MetricsMiddleware      Middleware
	FingerprintMiddleware  Middleware
	RateLimitMiddleware    Middleware
	SessionMiddleware      Middleware
	CsrfMiddleware         Middleware
}

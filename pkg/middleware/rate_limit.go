package middleware

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/common"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/infra/prometheus"
	"github.com/harvesthub/harvesthub/pkg/ratelimit"
)

type rateLimitMiddleware struct {
	logger   *logrus.Logger
	limiter  *ratelimit.Limiter
	writer   *response.Writer
	policies map[string]ratelimit.Policy
}

// NewRateLimitMiddleware applies the fixed-window policies per endpoint
// class. Every response carries the standard limit headers; a throttled
// request gets 429 with Retry-After.
func NewRateLimitMiddleware(
	logger *logrus.Logger,
	limiter *ratelimit.Limiter,
	writer *response.Writer,
	policies map[string]ratelimit.Policy,
) Middleware {
	return &rateLimitMiddleware{
		logger:   logger,
		limiter:  limiter,
		writer:   writer,
		policies: policies,
	}
}

func (m *rateLimitMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		policy := m.policyFor(c.Path())

		identity, ok := c.Locals(common.ClientIdentityKey).(string)
		if !ok || identity == "" {
			identity = ClientIdentity(c)
		}

		res := m.limiter.Check(c.Context(), identity, policy)

		c.Set(common.RateLimitLimitHeader, strconv.Itoa(res.Limit))
		c.Set(common.RateLimitRemainingHeader, strconv.Itoa(res.Remaining))
		c.Set(common.RateLimitResetHeader, strconv.FormatInt(res.ResetAt.Unix(), 10))

		if !res.Allowed {
			retryAfter := int(res.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set(common.RetryAfterHeader, strconv.Itoa(retryAfter))
			prometheus.RateLimitRejections.WithLabelValues(policy.Name).Inc()
			m.logger.WithFields(logrus.Fields{
				"identity": identity,
				"policy":   policy.Name,
				"path":     c.Path(),
			}).Warn("request rate limited")
			return m.writer.DetailedError(c, response.CodeRateLimited,
				fmt.Sprintf("rate limit exceeded for %s requests", policy.Name),
				fiber.Map{"retry_after_seconds": retryAfter},
			)
		}

		return c.Next()
	}
}

// policyFor picks the policy by path class: auth endpoints are the most
// restricted, search has a tight short window, everything else gets the
// general API policy.
func (m *rateLimitMiddleware) policyFor(path string) ratelimit.Policy {
	switch {
	case strings.HasPrefix(path, "/api/v1/auth"), strings.HasPrefix(path, "/api/v2/auth"), strings.HasPrefix(path, "/api/auth"):
		return m.policies["auth"]
	case strings.Contains(path, "/search"):
		return m.policies["search"]
	default:
		return m.policies["api"]
	}
}

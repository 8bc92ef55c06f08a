package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/common"
	"github.com/harvesthub/harvesthub/pkg/infra/fingerprint"
)

type fingerprintMiddleware struct {
	logger *logrus.Logger
}

// NewFingerprintMiddleware derives the client identity used by the rate
// limiter and security logs: first hop of X-Forwarded-For when behind a
// proxy, else the connection address, plus a coarse user-agent class.
func NewFingerprintMiddleware(logger *logrus.Logger) Middleware {
	return &fingerprintMiddleware{logger: logger}
}

func (m *fingerprintMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := ClientIdentity(c)
		fp := fingerprint.New(identity, c.Get(fiber.HeaderUserAgent))

		c.Locals(common.ClientIdentityKey, identity)
		c.Locals(common.FingerprintIdContextKey, fp.ID())
		c.Locals(common.TraceIdKey, uuid.New().String())

		return c.Next()
	}
}

// ClientIdentity resolves the caller's network identity. The first entry in
// a forwarded-for chain is the originating client; everything after it is
// proxies.
func ClientIdentity(c *fiber.Ctx) string {
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}
	return c.IP()
}

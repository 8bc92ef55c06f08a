package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/common"
	"github.com/harvesthub/harvesthub/pkg/csrf"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/infra/prometheus"
)

// Paths that legitimately run without a CSRF token: login/signup (no
// session exists yet to bind the token to), the token issuance endpoint
// itself, and operational surfaces.
var csrfExemptPrefixes = []string{
	"/api/v1/auth",
	"/api/v2/auth",
	"/api/v1/csrf-token",
	"/api/v2/csrf-token",
	"/health",
	"/metrics",
}

type csrfMiddleware struct {
	logger *logrus.Logger
	writer *response.Writer
	guard  *csrf.Guard
}

func NewCsrfMiddleware(logger *logrus.Logger, writer *response.Writer, guard *csrf.Guard) Middleware {
	return &csrfMiddleware{
		logger: logger,
		writer: writer,
		guard:  guard,
	}
}

func (m *csrfMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !isMutating(c.Method()) || isCsrfExempt(c.Path()) {
			return c.Next()
		}

		token := c.Get(common.CsrfTokenHeader)
		identity := SessionIdentity(c)

		if err := m.guard.Verify(token, identity); err != nil {
			reason := "invalid"
			code := response.CodeCsrfInvalid
			if errors.Is(err, csrf.ErrTokenMissing) {
				reason = "missing"
				code = response.CodeCsrfMissing
			}

			prometheus.CsrfRejections.WithLabelValues(reason).Inc()
			m.logger.WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
				"ip":     c.IP(),
				"reason": reason,
			}).Warn("csrf validation rejected request")

			return m.writer.Error(c, code, "csrf token "+reason)
		}

		return c.Next()
	}
}

func isMutating(method string) bool {
	switch method {
	case fiber.MethodPost, fiber.MethodPut, fiber.MethodPatch, fiber.MethodDelete:
		return true
	}
	return false
}

func isCsrfExempt(path string) bool {
	for _, prefix := range csrfExemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/common"
	"github.com/harvesthub/harvesthub/pkg/infra/prometheus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		c.Locals(common.LatencyContextKey, start)

		err := c.Next()

		elapsed := time.Since(start)
		// route pattern, not the raw path, to keep label cardinality bounded
		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())

		prometheus.RequestTotal.WithLabelValues(c.Method(), path, status).Inc()
		prometheus.RequestLatency.WithLabelValues(c.Method(), path).
			Observe(float64(elapsed.Microseconds()) / 1000.0)

		return err
	}
}

package middleware_test

import (
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvesthub/harvesthub/pkg/cache"
	"github.com/harvesthub/harvesthub/pkg/common"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	infracache "github.com/harvesthub/harvesthub/pkg/infra/cache"
	"github.com/harvesthub/harvesthub/pkg/middleware"
	"github.com/harvesthub/harvesthub/pkg/ratelimit"
)

func newRateLimitApp(t *testing.T, policies map[string]ratelimit.Policy) *fiber.App {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	writer := response.NewWriter(logger, false)

	rdb, _ := redismock.NewClientMock()
	tiered := cache.NewTieredCache(logger, infracache.NewTTLMap(time.Minute), infracache.NewClientFromRedis(rdb, logger))
	limiter := ratelimit.NewLimiter(logger, tiered)

	app := fiber.New()
	app.Use(middleware.NewRateLimitMiddleware(logger, limiter, writer, policies).Middleware())
	handler := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Post("/api/v2/auth/login", handler)
	app.Get("/api/v2/products", handler)
	app.Get("/api/v2/products/search", handler)
	return app
}

func testPolicies() map[string]ratelimit.Policy {
	return map[string]ratelimit.Policy{
		"auth":   {Name: "auth", Limit: 5, Window: 15 * time.Minute},
		"api":    {Name: "api", Limit: 100, Window: time.Minute},
		"search": {Name: "search", Limit: 30, Window: 10 * time.Second},
	}
}

func TestRateLimit_HeadersOnEveryResponse(t *testing.T) {
	app := newRateLimitApp(t, testPolicies())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v2/products", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "100", resp.Header.Get(common.RateLimitLimitHeader))
	assert.Equal(t, "99", resp.Header.Get(common.RateLimitRemainingHeader))
	assert.NotEmpty(t, resp.Header.Get(common.RateLimitResetHeader))
}

func TestRateLimit_AuthPolicyRejectsSixthAttempt(t *testing.T) {
	app := newRateLimitApp(t, testPolicies())

	for i := 1; i <= 5; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v2/auth/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, "attempt %d should pass", i)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v2/auth/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get(common.RateLimitRemainingHeader))

	retryAfter, err := strconv.Atoi(resp.Header.Get(common.RetryAfterHeader))
	require.NoError(t, err)
	assert.Greater(t, retryAfter, 0)
	assert.LessOrEqual(t, retryAfter, int((15 * time.Minute).Seconds()))

	body := decodeErrorBody(t, resp.Body)
	assert.Equal(t, response.CodeRateLimited, body.Error.Code)
}

func TestRateLimit_PoliciesAreIndependent(t *testing.T) {
	policies := testPolicies()
	policies["auth"] = ratelimit.Policy{Name: "auth", Limit: 1, Window: 15 * time.Minute}
	app := newRateLimitApp(t, policies)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v2/auth/login", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(fiber.MethodPost, "/api/v2/auth/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	// Exhausting auth must leave the general API counter untouched.
	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v2/products", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimit_SearchPathsUseSearchPolicy(t *testing.T) {
	app := newRateLimitApp(t, testPolicies())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v2/products/search", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "30", resp.Header.Get(common.RateLimitLimitHeader))
}

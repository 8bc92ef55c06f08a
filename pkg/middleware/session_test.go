package middleware_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harvesthub/harvesthub/pkg/common"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/middleware"
	"github.com/harvesthub/harvesthub/pkg/models"
)

const sessionTestSecret = "test-session-secret"

func signSessionToken(t *testing.T, subject, role string, expiry time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, middleware.SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	})
	signed, err := token.SignedString([]byte(sessionTestSecret))
	require.NoError(t, err)
	return signed
}

func newSessionApp(t *testing.T) *fiber.App {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	writer := response.NewWriter(logger, false)

	app := fiber.New()
	app.Use(middleware.NewSessionMiddleware(logger, writer, sessionTestSecret).Middleware())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		userID, _ := c.Locals(common.UserIDContextKey).(string)
		return c.JSON(fiber.Map{
			"user_id": userID,
			"role":    string(middleware.RoleFromContext(c)),
		})
	})
	return app
}

func TestSession_AnonymousRequestPasses(t *testing.T) {
	app := newSessionApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSession_BearerTokenPopulatesIdentity(t *testing.T) {
	app := newSessionApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signSessionToken(t, "user-42", string(models.RoleCustomer), time.Now().Add(time.Hour)))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "user-42", body.UserID)
	assert.Equal(t, string(models.RoleCustomer), body.Role)
}

func TestSession_ExpiredTokenRejected(t *testing.T) {
	app := newSessionApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+signSessionToken(t, "user-42", string(models.RoleCustomer), time.Now().Add(-time.Hour)))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body := decodeErrorBody(t, resp.Body)
	assert.Equal(t, response.CodeUnauthorized, body.Error.Code)
}

func TestSession_TamperedTokenRejected(t *testing.T) {
	app := newSessionApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not.a.token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

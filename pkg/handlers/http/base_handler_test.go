package http

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/harvesthub/harvesthub/pkg/common"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

func newTestBase() *BaseHandler {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	return NewBaseHandler(logger, response.NewWriter(logger, false))
}

// sessionAs simulates the session middleware for a signed-in user.
func sessionAs(userID uuid.UUID, role models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(common.UserIDContextKey, userID.String())
		c.Locals(common.UserRoleContextKey, role)
		return c.Next()
	}
}

func decodeSuccess(t *testing.T, body io.Reader) response.SuccessBody {
	t.Helper()
	var parsed response.SuccessBody
	require.NoError(t, json.NewDecoder(body).Decode(&parsed))
	return parsed
}

func decodeError(t *testing.T, body io.Reader) response.ErrorBody {
	t.Helper()
	var parsed response.ErrorBody
	require.NoError(t, json.NewDecoder(body).Decode(&parsed))
	return parsed
}

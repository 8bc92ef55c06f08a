package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/common"
	"github.com/harvesthub/harvesthub/pkg/domain"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

const ErrInvalidJsonPayload = "invalid JSON payload"

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// v1 listing shapes are frozen; clients have until the sunset date to move
// to the enveloped v2 responses.
var (
	legacyListDeprecatedSince = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	legacyListSunset          = time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)
)

// BaseHandler carries the pieces every endpoint needs: the logger and the
// envelope writer, plus session and pagination helpers.
type BaseHandler struct {
	logger *logrus.Logger
	writer *response.Writer
}

func NewBaseHandler(logger *logrus.Logger, writer *response.Writer) *BaseHandler {
	return &BaseHandler{logger: logger, writer: writer}
}

// SessionUserID returns the authenticated user's id, or an error response
// already written for anonymous requests.
func (h *BaseHandler) SessionUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	raw, ok := c.Locals(common.UserIDContextKey).(string)
	if !ok || raw == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.logger.WithField("user_id", raw).Warn("session carries malformed user id")
		return uuid.Nil, false
	}
	return id, true
}

func (h *BaseHandler) SessionRole(c *fiber.Ctx) models.Role {
	if role, ok := c.Locals(common.UserRoleContextKey).(models.Role); ok {
		return role
	}
	return ""
}

// RequireUser writes 401 and returns false when the request is anonymous.
func (h *BaseHandler) RequireUser(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := h.SessionUserID(c)
	if !ok {
		_ = h.writer.Error(c, response.CodeUnauthorized, "authentication required")
	}
	return id, ok
}

// RequireRole writes 403 and returns false when the session role does not
// match. Admin passes every role gate.
func (h *BaseHandler) RequireRole(c *fiber.Ctx, role models.Role) bool {
	current := h.SessionRole(c)
	if current == role || current == models.RoleAdmin {
		return true
	}
	_ = h.writer.Error(c, response.CodeForbidden, "insufficient permissions")
	return false
}

// ParseID parses a uuid path parameter, writing 400 on garbage.
func (h *BaseHandler) ParseID(c *fiber.Ctx, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		_ = h.writer.FieldError(c, response.CodeValidation, "invalid identifier", param)
		return uuid.Nil, false
	}
	return id, true
}

// Pagination reads limit/offset query params with sane bounds.
func (h *BaseHandler) Pagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPageLimit)
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// WriteDomainError maps repository/domain errors onto the envelope.
func (h *BaseHandler) WriteDomainError(c *fiber.Ctx, err error) error {
	switch {
	case domain.IsNotFoundError(err):
		return h.writer.Error(c, response.CodeNotFound, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		return h.writer.FieldError(c, response.CodeConflict, err.Error(), "email")
	case errors.Is(err, domain.ErrInsufficientStock):
		return h.writer.Error(c, response.CodeConflict, err.Error())
	case errors.Is(err, domain.ErrOrderNotCancellable):
		return h.writer.Error(c, response.CodeConflict, err.Error())
	default:
		if ve, ok := domain.AsValidationError(err); ok {
			return h.writer.FieldError(c, response.CodeValidation, ve.Message, ve.Field)
		}
		return h.writer.Error(c, response.CodeDatabase, err.Error())
	}
}

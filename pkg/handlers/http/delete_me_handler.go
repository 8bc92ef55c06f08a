package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/domain/user"
)

type deleteMeHandler struct {
	*BaseHandler
	users user.Repository
}

// NewDeleteMeHandler soft-deletes the session user's account. The row is
// recoverable until purge retention passes.
func NewDeleteMeHandler(base *BaseHandler, users user.Repository) Handler {
	return &deleteMeHandler{BaseHandler: base, users: users}
}

func (h *deleteMeHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}

	if err := h.users.Delete(c.Context(), userID); err != nil {
		return h.WriteDomainError(c, err)
	}

	h.logger.WithFields(logrus.Fields{
		"user_id": userID,
		"ip":      c.IP(),
	}).Info("user account moved to trash")
	return h.writer.OKMessage(c, fiber.Map{"id": userID}, "account deleted")
}

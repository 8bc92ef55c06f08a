package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/domain/user"
)

type getMeHandler struct {
	*BaseHandler
	users user.Repository
}

func NewGetMeHandler(base *BaseHandler, users user.Repository) Handler {
	return &getMeHandler{BaseHandler: base, users: users}
}

func (h *getMeHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}

	entity, err := h.users.GetByID(c.Context(), userID)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	return h.writer.OK(c, entity)
}

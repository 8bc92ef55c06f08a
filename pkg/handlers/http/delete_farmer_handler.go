package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/domain/farmer"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type deleteFarmerHandler struct {
	*BaseHandler
	farmers farmer.Repository
}

func NewDeleteFarmerHandler(base *BaseHandler, farmers farmer.Repository) Handler {
	return &deleteFarmerHandler{BaseHandler: base, farmers: farmers}
}

func (h *deleteFarmerHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}
	id, ok := h.ParseID(c, "farmer_id")
	if !ok {
		return nil
	}

	entity, err := h.farmers.GetByID(c.Context(), id)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	if entity.UserID != userID && h.SessionRole(c) != models.RoleAdmin {
		return h.writer.Error(c, response.CodeForbidden, "cannot delete another user's farm profile")
	}

	if err := h.farmers.Delete(c.Context(), id); err != nil {
		return h.WriteDomainError(c, err)
	}

	h.logger.WithFields(logrus.Fields{
		"farmer_id": id,
		"user_id":   userID,
	}).Info("farmer profile moved to trash")
	return h.writer.OKMessage(c, fiber.Map{"id": id}, "farmer profile deleted")
}

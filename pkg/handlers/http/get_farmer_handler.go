package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/domain/farmer"
)

type getFarmerHandler struct {
	*BaseHandler
	farmers farmer.Repository
}

func NewGetFarmerHandler(base *BaseHandler, farmers farmer.Repository) Handler {
	return &getFarmerHandler{BaseHandler: base, farmers: farmers}
}

func (h *getFarmerHandler) Handle(c *fiber.Ctx) error {
	id, ok := h.ParseID(c, "farmer_id")
	if !ok {
		return nil
	}

	entity, err := h.farmers.GetByID(c.Context(), id)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	return h.writer.OK(c, entity)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/domain/farmer"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type listFarmersHandler struct {
	*BaseHandler
	farmers farmer.Repository
}

func NewListFarmersHandler(base *BaseHandler, farmers farmer.Repository) Handler {
	return &listFarmersHandler{BaseHandler: base, farmers: farmers}
}

func (h *listFarmersHandler) Handle(c *fiber.Ctx) error {
	limit, offset := h.Pagination(c)

	items, err := h.farmers.List(c.Context(), c.Query("region"), limit, offset)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	if items == nil {
		items = []models.Farmer{}
	}
	return h.writer.OKWithMeta(c, items, fiber.Map{
		"limit":  limit,
		"offset": offset,
	})
}

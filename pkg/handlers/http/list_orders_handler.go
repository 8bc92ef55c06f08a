package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/domain/order"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type listOrdersHandler struct {
	*BaseHandler
	orders order.Repository
}

func NewListOrdersHandler(base *BaseHandler, orders order.Repository) Handler {
	return &listOrdersHandler{BaseHandler: base, orders: orders}
}

func (h *listOrdersHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}
	limit, offset := h.Pagination(c)

	items, err := h.orders.ListByUser(c.Context(), userID, limit, offset)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	if items == nil {
		items = []models.Order{}
	}

	spent, err := h.orders.TotalSpent(c.Context(), userID)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	return h.writer.OKWithMeta(c, items, fiber.Map{
		"limit":             limit,
		"offset":            offset,
		"total_spent_cents": spent,
	})
}

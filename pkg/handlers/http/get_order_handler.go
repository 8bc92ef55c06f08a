package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/domain/order"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type getOrderHandler struct {
	*BaseHandler
	orders order.Repository
}

func NewGetOrderHandler(base *BaseHandler, orders order.Repository) Handler {
	return &getOrderHandler{BaseHandler: base, orders: orders}
}

func (h *getOrderHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}
	id, ok := h.ParseID(c, "order_id")
	if !ok {
		return nil
	}

	entity, err := h.orders.GetByID(c.Context(), id)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	if entity.UserID != userID && h.SessionRole(c) != models.RoleAdmin {
		return h.writer.Error(c, response.CodeForbidden, "order belongs to another user")
	}
	return h.writer.OK(c, entity)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/domain"
	"github.com/harvesthub/harvesthub/pkg/domain/order"
	"github.com/harvesthub/harvesthub/pkg/domain/product"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type cancelOrderHandler struct {
	*BaseHandler
	orders   order.Repository
	products product.Repository
}

// NewCancelOrderHandler cancels an order that hasn't shipped yet and
// returns its line items to stock.
func NewCancelOrderHandler(
	base *BaseHandler,
	orders order.Repository,
	products product.Repository,
) Handler {
	return &cancelOrderHandler{
		BaseHandler: base,
		orders:      orders,
		products:    products,
	}
}

func (h *cancelOrderHandler) Handle(c *fiber.Ctx) error {
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
	if entity.Status != models.OrderPending && entity.Status != models.OrderPaid {
		return h.WriteDomainError(c, domain.ErrOrderNotCancellable)
	}

	if err := h.orders.UpdateStatus(c.Context(), id, models.OrderCancelled); err != nil {
		return h.WriteDomainError(c, err)
	}

	for _, item := range entity.Items {
		current, err := h.products.GetByID(c.Context(), item.ProductID)
		if err != nil {
			continue
		}
		if err := h.products.Update(c.Context(), item.ProductID, map[string]any{
			"stock": current.Stock + item.Quantity,
		}); err != nil {
			h.logger.WithError(err).WithFields(logrus.Fields{
				"order_id":   id,
				"product_id": item.ProductID,
			}).Error("failed to restock after cancellation")
		}
	}

	h.logger.WithFields(logrus.Fields{
		"order_id": id,
		"user_id":  userID,
	}).Info("order cancelled")

	entity.Status = models.OrderCancelled
	return h.writer.OKMessage(c, entity, "order cancelled")
}

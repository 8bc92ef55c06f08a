package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/domain"
	"github.com/harvesthub/harvesthub/pkg/domain/order"
	"github.com/harvesthub/harvesthub/pkg/domain/product"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type OrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

type createOrderHandler struct {
	*BaseHandler
	orders   order.Repository
	products product.Repository
}

// NewCreateOrderHandler places an order: prices are snapshotted from the
// catalog at order time and stock is decremented per line item.
func NewCreateOrderHandler(
	base *BaseHandler,
	orders order.Repository,
	products product.Repository,
) Handler {
	return &createOrderHandler{
		BaseHandler: base,
		orders:      orders,
		products:    products,
	}
}

func (h *createOrderHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}

	var req OrderRequest
	if err := c.BodyParser(&req); err != nil {
		return h.writer.Error(c, response.CodeValidation, ErrInvalidJsonPayload)
	}
	if len(req.Items) == 0 {
		return h.writer.FieldError(c, response.CodeValidation, "order needs at least one item", "items")
	}

	var total int64
	items := make([]models.OrderItem, 0, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity < 1 {
			return h.writer.FieldError(c, response.CodeValidation,
				fmt.Sprintf("items[%d]: quantity must be at least 1", i), "items")
		}
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return h.writer.FieldError(c, response.CodeValidation,
				fmt.Sprintf("items[%d]: invalid product id", i), "items")
		}

		entity, err := h.products.GetByID(c.Context(), productID)
		if err != nil {
			return h.WriteDomainError(c, err)
		}
		if entity.Stock < item.Quantity {
			return h.writer.DetailedError(c, response.CodeConflict,
				domain.ErrInsufficientStock.Error(),
				fiber.Map{"product_id": productID, "available": entity.Stock, "requested": item.Quantity},
			)
		}

		total += entity.PriceCents * int64(item.Quantity)
		items = append(items, models.OrderItem{
			ProductID:      productID,
			Quantity:       item.Quantity,
			UnitPriceCents: entity.PriceCents,
		})
	}

	entity := models.Order{
		ID:         uuid.New(),
		UserID:     userID,
		Status:     models.OrderPending,
		TotalCents: total,
		Items:      items,
	}
	if err := h.orders.Create(c.Context(), &entity); err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("failed to create order")
		return h.WriteDomainError(c, err)
	}

	for _, item := range entity.Items {
		current, err := h.products.GetByID(c.Context(), item.ProductID)
		if err != nil {
			continue
		}
		if err := h.products.Update(c.Context(), item.ProductID, map[string]any{
			"stock": current.Stock - item.Quantity,
		}); err != nil {
			h.logger.WithError(err).WithFields(logrus.Fields{
				"order_id":   entity.ID,
				"product_id": item.ProductID,
			}).Error("failed to decrement stock after order creation")
		}
	}

	return h.writer.Created(c, entity)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/domain/farmer"
	"github.com/harvesthub/harvesthub/pkg/domain/product"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type listTrashedProductsHandler struct {
	*BaseHandler
	products product.Repository
	farmers  farmer.Repository
}

// NewListTrashedProductsHandler shows a farmer their own soft-deleted
// products, the candidates for restore.
func NewListTrashedProductsHandler(
	base *BaseHandler,
	products product.Repository,
	farmers farmer.Repository,
) Handler {
	return &listTrashedProductsHandler{
		BaseHandler: base,
		products:    products,
		farmers:     farmers,
	}
}

func (h *listTrashedProductsHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}
	if !h.RequireRole(c, models.RoleFarmer) {
		return nil
	}

	farm, err := h.farmers.GetByUserID(c.Context(), userID)
	if err != nil {
		return h.WriteDomainError(c, err)
	}

	items, err := h.products.ListTrashed(c.Context(), farm.ID)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	if items == nil {
		items = []models.Product{}
	}
	return h.writer.OK(c, items)
}

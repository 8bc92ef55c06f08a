package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/domain/farmer"
	"github.com/harvesthub/harvesthub/pkg/domain/product"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type restoreProductHandler struct {
	*BaseHandler
	products product.Repository
	farmers  farmer.Repository
}

func NewRestoreProductHandler(
	base *BaseHandler,
	products product.Repository,
	farmers farmer.Repository,
) Handler {
	return &restoreProductHandler{
		BaseHandler: base,
		products:    products,
		farmers:     farmers,
	}
}

func (h *restoreProductHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}
	if !h.RequireRole(c, models.RoleFarmer) {
		return nil
	}
	id, ok := h.ParseID(c, "product_id")
	if !ok {
		return nil
	}

	if h.SessionRole(c) != models.RoleAdmin {
		trashed, err := h.products.GetTrashed(c.Context(), id)
		if err != nil {
			return h.WriteDomainError(c, err)
		}
		farm, err := h.farmers.GetByUserID(c.Context(), userID)
		if err != nil {
			return h.WriteDomainError(c, err)
		}
		if trashed.FarmerID != farm.ID {
			return h.writer.Error(c, response.CodeForbidden, "product belongs to another farm")
		}
	}

	if err := h.products.Restore(c.Context(), id); err != nil {
		return h.WriteDomainError(c, err)
	}

	entity, err := h.products.GetByID(c.Context(), id)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	return h.writer.OKMessage(c, entity, "product restored")
}

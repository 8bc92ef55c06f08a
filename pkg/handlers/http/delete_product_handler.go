package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/domain/farmer"
	"github.com/harvesthub/harvesthub/pkg/domain/product"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type deleteProductHandler struct {
	*BaseHandler
	products product.Repository
	farmers  farmer.Repository
}

// NewDeleteProductHandler retires a product from the catalog. The row is
// kept and recoverable via restore until the purge retention passes.
func NewDeleteProductHandler(
	base *BaseHandler,
	products product.Repository,
	farmers farmer.Repository,
) Handler {
	return &deleteProductHandler{
		BaseHandler: base,
		products:    products,
		farmers:     farmers,
	}
}

func (h *deleteProductHandler) Handle(c *fiber.Ctx) error {
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
		entity, err := h.products.GetByID(c.Context(), id)
		if err != nil {
			return h.WriteDomainError(c, err)
		}
		farm, err := h.farmers.GetByUserID(c.Context(), userID)
		if err != nil {
			return h.WriteDomainError(c, err)
		}
		if entity.FarmerID != farm.ID {
			return h.writer.Error(c, response.CodeForbidden, "product belongs to another farm")
		}
	}

	if err := h.products.Delete(c.Context(), id); err != nil {
		return h.WriteDomainError(c, err)
	}

	h.logger.WithFields(logrus.Fields{
		"product_id": id,
		"user_id":    userID,
	}).Info("product moved to trash")
	return h.writer.OKMessage(c, fiber.Map{"id": id}, "product deleted")
}

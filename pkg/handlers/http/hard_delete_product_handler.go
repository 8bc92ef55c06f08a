package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/domain/product"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type hardDeleteProductHandler struct {
	*BaseHandler
	products product.Repository
}

// NewHardDeleteProductHandler permanently removes a product row. Admin
// only; there is no recovery after this.
func NewHardDeleteProductHandler(base *BaseHandler, products product.Repository) Handler {
	return &hardDeleteProductHandler{BaseHandler: base, products: products}
}

func (h *hardDeleteProductHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}
	if !h.RequireRole(c, models.RoleAdmin) {
		return nil
	}
	id, ok := h.ParseID(c, "product_id")
	if !ok {
		return nil
	}

	if err := h.products.HardDelete(c.Context(), id, userID.String()); err != nil {
		return h.WriteDomainError(c, err)
	}

	h.logger.WithFields(logrus.Fields{
		"product_id": id,
		"actor":      userID,
	}).Warn("product permanently deleted")
	return h.writer.OKMessage(c, fiber.Map{"id": id}, "product permanently deleted")
}

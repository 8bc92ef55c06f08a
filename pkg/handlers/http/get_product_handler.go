package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/domain/product"
)

type getProductHandler struct {
	*BaseHandler
	products product.Repository
}

func NewGetProductHandler(base *BaseHandler, products product.Repository) Handler {
	return &getProductHandler{BaseHandler: base, products: products}
}

func (h *getProductHandler) Handle(c *fiber.Ctx) error {
	id, ok := h.ParseID(c, "product_id")
	if !ok {
		return nil
	}

	entity, err := h.products.GetByID(c.Context(), id)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	return h.writer.OK(c, entity)
}

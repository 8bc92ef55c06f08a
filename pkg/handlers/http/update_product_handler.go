package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/harvesthub/harvesthub/pkg/domain/farmer"
	"github.com/harvesthub/harvesthub/pkg/domain/product"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type updateProductHandler struct {
	*BaseHandler
	products product.Repository
	farmers  farmer.Repository
}

func NewUpdateProductHandler(
	base *BaseHandler,
	products product.Repository,
	farmers farmer.Repository,
) Handler {
	return &updateProductHandler{
		BaseHandler: base,
		products:    products,
		farmers:     farmers,
	}
}

func (h *updateProductHandler) Handle(c *fiber.Ctx) error {
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

	var req struct {
		Name       *string `json:"name"`
		Category   *string `json:"category"`
		PriceCents *int64  `json:"price_cents"`
		Unit       *string `json:"unit"`
		Stock      *int    `json:"stock"`
		Organic    *bool   `json:"organic"`
	}
	if err := c.BodyParser(&req); err != nil {
		return h.writer.Error(c, response.CodeValidation, ErrInvalidJsonPayload)
	}

	changes := map[string]any{}
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Category != nil {
		changes["category"] = *req.Category
	}
	if req.PriceCents != nil {
		if *req.PriceCents <= 0 {
			return h.writer.FieldError(c, response.CodeValidation, "price must be positive", "price_cents")
		}
		changes["price_cents"] = *req.PriceCents
	}
	if req.Unit != nil {
		changes["unit"] = *req.Unit
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return h.writer.FieldError(c, response.CodeValidation, "stock cannot be negative", "stock")
		}
		changes["stock"] = *req.Stock
	}
	if req.Organic != nil {
		changes["organic"] = *req.Organic
	}
	if len(changes) == 0 {
		return h.writer.Error(c, response.CodeValidation, "no updatable fields in payload")
	}

	if ok, err := h.ownsProduct(c, userID, id); err != nil {
		return h.WriteDomainError(c, err)
	} else if !ok {
		return h.writer.Error(c, response.CodeForbidden, "product belongs to another farm")
	}

	if err := h.products.Update(c.Context(), id, changes); err != nil {
		return h.WriteDomainError(c, err)
	}

	entity, err := h.products.GetByID(c.Context(), id)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	return h.writer.OK(c, entity)
}

func (h *updateProductHandler) ownsProduct(c *fiber.Ctx, userID, productID uuid.UUID) (bool, error) {
	if h.SessionRole(c) == models.RoleAdmin {
		return true, nil
	}
	entity, err := h.products.GetByID(c.Context(), productID)
	if err != nil {
		return false, err
	}
	farm, err := h.farmers.GetByUserID(c.Context(), userID)
	if err != nil {
		return false, err
	}
	return entity.FarmerID == farm.ID, nil
}

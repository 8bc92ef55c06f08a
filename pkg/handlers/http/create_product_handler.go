package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/domain/farmer"
	"github.com/harvesthub/harvesthub/pkg/domain/product"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type ProductRequest struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
	Unit       string `json:"unit"`
	Stock      int    `json:"stock"`
	Organic    bool   `json:"organic"`
}

type createProductHandler struct {
	*BaseHandler
	products product.Repository
	farmers  farmer.Repository
}

func NewCreateProductHandler(
	base *BaseHandler,
	products product.Repository,
	farmers farmer.Repository,
) Handler {
	return &createProductHandler{
		BaseHandler: base,
		products:    products,
		farmers:     farmers,
	}
}

func (h *createProductHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}
	if !h.RequireRole(c, models.RoleFarmer) {
		return nil
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return h.writer.Error(c, response.CodeValidation, ErrInvalidJsonPayload)
	}
	if req.Name == "" {
		return h.writer.FieldError(c, response.CodeValidation, "name is required", "name")
	}
	if req.PriceCents <= 0 {
		return h.writer.FieldError(c, response.CodeValidation, "price must be positive", "price_cents")
	}
	if req.Stock < 0 {
		return h.writer.FieldError(c, response.CodeValidation, "stock cannot be negative", "stock")
	}

	farm, err := h.farmers.GetByUserID(c.Context(), userID)
	if err != nil {
		return h.WriteDomainError(c, err)
	}

	entity := models.Product{
		ID:         uuid.New(),
		FarmerID:   farm.ID,
		Name:       req.Name,
		Category:   req.Category,
		PriceCents: req.PriceCents,
		Unit:       req.Unit,
		Stock:      req.Stock,
		Organic:    req.Organic,
	}
	if err := h.products.Create(c.Context(), &entity); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"farmer_id": farm.ID,
			"name":      req.Name,
		}).Error("failed to create product")
		return h.WriteDomainError(c, err)
	}

	return h.writer.Created(c, entity)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/harvesthub/harvesthub/pkg/apiversion"
	"github.com/harvesthub/harvesthub/pkg/domain/product"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type listProductsHandler struct {
	*BaseHandler
	products product.Repository
	router   *apiversion.Router
}

// NewListProductsHandler serves the catalog listing in both API versions.
// v1 keeps the legacy flat array shape and carries deprecation metadata;
// v2 wraps results with pagination meta.
func NewListProductsHandler(
	base *BaseHandler,
	products product.Repository,
	router *apiversion.Router,
) Handler {
	return &listProductsHandler{
		BaseHandler: base,
		products:    products,
		router:      router,
	}
}

func (h *listProductsHandler) Handle(c *fiber.Ctx) error {
	return h.router.Dispatch(map[apiversion.Version]fiber.Handler{
		apiversion.V1: apiversion.Deprecate(apiversion.V1, apiversion.Deprecation{
			Since:         legacyListDeprecatedSince,
			Sunset:        legacyListSunset,
			MigrationNote: "use v2: results move under data with pagination meta",
		}, h.handleV1),
		apiversion.V2: h.handleV2,
	})(c)
}

func (h *listProductsHandler) filter(c *fiber.Ctx) (product.ListFilter, error) {
	filter := product.ListFilter{Category: c.Query("category")}
	filter.Limit, filter.Offset = h.Pagination(c)

	if raw := c.Query("farmer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.FarmerID = id
	}
	if raw := c.Query("organic"); raw != "" {
		organic := raw == "true" || raw == "1"
		filter.Organic = &organic
	}
	return filter, nil
}

// handleV1 returns the bare array the original clients were built against.
func (h *listProductsHandler) handleV1(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return h.writer.FieldError(c, response.CodeValidation, "invalid identifier", "farmer_id")
	}

	items, err := h.products.List(c.Context(), filter)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	if items == nil {
		items = []models.Product{}
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

func (h *listProductsHandler) handleV2(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return h.writer.FieldError(c, response.CodeValidation, "invalid identifier", "farmer_id")
	}

	items, err := h.products.List(c.Context(), filter)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	total, err := h.products.Count(c.Context(), filter)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	if items == nil {
		items = []models.Product{}
	}
	return h.writer.OKWithMeta(c, items, fiber.Map{
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/domain/farmer"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type updateFarmerHandler struct {
	*BaseHandler
	farmers farmer.Repository
}

func NewUpdateFarmerHandler(base *BaseHandler, farmers farmer.Repository) Handler {
	return &updateFarmerHandler{BaseHandler: base, farmers: farmers}
}

func (h *updateFarmerHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}
	id, ok := h.ParseID(c, "farmer_id")
	if !ok {
		return nil
	}

	entity, err := h.farmers.GetByID(c.Context(), id)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	if entity.UserID != userID && h.SessionRole(c) != models.RoleAdmin {
		return h.writer.Error(c, response.CodeForbidden, "cannot modify another user's farm profile")
	}

	var req struct {
		FarmName  *string `json:"farm_name"`
		Region    *string `json:"region"`
		Bio       *string `json:"bio"`
		Certified *bool   `json:"certified"`
	}
	if err := c.BodyParser(&req); err != nil {
		return h.writer.Error(c, response.CodeValidation, ErrInvalidJsonPayload)
	}

	changes := map[string]any{}
	if req.FarmName != nil {
		if *req.FarmName == "" {
			return h.writer.FieldError(c, response.CodeValidation, "farm name cannot be empty", "farm_name")
		}
		changes["farm_name"] = *req.FarmName
	}
	if req.Region != nil {
		changes["region"] = *req.Region
	}
	if req.Bio != nil {
		changes["bio"] = *req.Bio
	}
	if req.Certified != nil {
		// Certification is vetted out of band; only admins flip it.
		if h.SessionRole(c) != models.RoleAdmin {
			return h.writer.FieldError(c, response.CodeForbidden, "certification status is admin-managed", "certified")
		}
		changes["certified"] = *req.Certified
	}
	if len(changes) == 0 {
		return h.writer.Error(c, response.CodeValidation, "no updatable fields in payload")
	}

	if err := h.farmers.Update(c.Context(), id, changes); err != nil {
		return h.WriteDomainError(c, err)
	}

	updated, err := h.farmers.GetByID(c.Context(), id)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	return h.writer.OK(c, updated)
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/harvesthub/harvesthub/pkg/domain"
	"github.com/harvesthub/harvesthub/pkg/domain/farmer"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type FarmerRequest struct {
	FarmName  string `json:"farm_name"`
	Region    string `json:"region"`
	Bio       string `json:"bio"`
	Certified bool   `json:"certified"`
}

type createFarmerHandler struct {
	*BaseHandler
	farmers farmer.Repository
}

// NewCreateFarmerHandler registers the session user's farm profile. One
// profile per user.
func NewCreateFarmerHandler(base *BaseHandler, farmers farmer.Repository) Handler {
	return &createFarmerHandler{BaseHandler: base, farmers: farmers}
}

func (h *createFarmerHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}

	var req FarmerRequest
	if err := c.BodyParser(&req); err != nil {
		return h.writer.Error(c, response.CodeValidation, ErrInvalidJsonPayload)
	}
	if req.FarmName == "" {
		return h.writer.FieldError(c, response.CodeValidation, "farm name is required", "farm_name")
	}

	if existing, err := h.farmers.GetByUserID(c.Context(), userID); err == nil && existing != nil {
		return h.writer.Error(c, response.CodeConflict, "farm profile already exists for this user")
	} else if err != nil && !domain.IsNotFoundError(err) {
		return h.WriteDomainError(c, err)
	}

	entity := models.Farmer{
		ID:        uuid.New(),
		UserID:    userID,
		FarmName:  req.FarmName,
		Region:    req.Region,
		Bio:       req.Bio,
		Certified: req.Certified,
	}
	if err := h.farmers.Create(c.Context(), &entity); err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("failed to create farmer profile")
		return h.WriteDomainError(c, err)
	}

	return h.writer.Created(c, entity)
}

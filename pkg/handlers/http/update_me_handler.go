package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/domain"
	"github.com/harvesthub/harvesthub/pkg/domain/user"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
)

type updateMeHandler struct {
	*BaseHandler
	users user.Repository
}

func NewUpdateMeHandler(base *BaseHandler, users user.Repository) Handler {
	return &updateMeHandler{BaseHandler: base, users: users}
}

func (h *updateMeHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}

	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return h.writer.Error(c, response.CodeValidation, ErrInvalidJsonPayload)
	}

	changes := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return h.writer.FieldError(c, response.CodeValidation, "name cannot be empty", "name")
		}
		changes["name"] = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !strings.Contains(email, "@") {
			return h.writer.FieldError(c, response.CodeValidation, "invalid email address", "email")
		}
		if existing, err := h.users.GetByEmail(c.Context(), email); err == nil && existing.ID != userID {
			return h.WriteDomainError(c, domain.ErrEmailTaken)
		}
		changes["email"] = email
	}
	if len(changes) == 0 {
		return h.writer.Error(c, response.CodeValidation, "no updatable fields in payload")
	}

	if err := h.users.Update(c.Context(), userID, changes); err != nil {
		return h.WriteDomainError(c, err)
	}

	entity, err := h.users.GetByID(c.Context(), userID)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	return h.writer.OK(c, entity)
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/harvesthub/harvesthub/pkg/domain/farmer"
	"github.com/harvesthub/harvesthub/pkg/domain/subscription"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type SubscriptionRequest struct {
	FarmerID string `json:"farmer_id"`
	Cadence  string `json:"cadence"`
}

type createSubscriptionHandler struct {
	*BaseHandler
	subscriptions subscription.Repository
	farmers       farmer.Repository
}

// NewCreateSubscriptionHandler starts a recurring box subscription with a
// farm. First delivery is scheduled one cadence interval out.
func NewCreateSubscriptionHandler(
	base *BaseHandler,
	subscriptions subscription.Repository,
	farmers farmer.Repository,
) Handler {
	return &createSubscriptionHandler{
		BaseHandler:   base,
		subscriptions: subscriptions,
		farmers:       farmers,
	}
}

func cadenceInterval(c models.Cadence) (time.Duration, bool) {
	switch c {
	case models.CadenceWeekly:
		return 7 * 24 * time.Hour, true
	case models.CadenceBiweekly:
		return 14 * 24 * time.Hour, true
	case models.CadenceMonthly:
		return 30 * 24 * time.Hour, true
	}
	return 0, false
}

func (h *createSubscriptionHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}

	var req SubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return h.writer.Error(c, response.CodeValidation, ErrInvalidJsonPayload)
	}

	farmerID, err := uuid.Parse(req.FarmerID)
	if err != nil {
		return h.writer.FieldError(c, response.CodeValidation, "invalid farmer id", "farmer_id")
	}
	cadence := models.Cadence(req.Cadence)
	interval, valid := cadenceInterval(cadence)
	if !valid {
		return h.writer.FieldError(c, response.CodeValidation,
			"cadence must be weekly, biweekly or monthly", "cadence")
	}

	if _, err := h.farmers.GetByID(c.Context(), farmerID); err != nil {
		return h.WriteDomainError(c, err)
	}

	entity := models.Subscription{
		ID:             uuid.New(),
		UserID:         userID,
		FarmerID:       farmerID,
		Cadence:        cadence,
		Status:         models.SubscriptionActive,
		NextDeliveryAt: time.Now().Add(interval),
	}
	if err := h.subscriptions.Create(c.Context(), &entity); err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("failed to create subscription")
		return h.WriteDomainError(c, err)
	}

	return h.writer.Created(c, entity)
}

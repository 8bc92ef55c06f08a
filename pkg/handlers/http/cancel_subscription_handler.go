package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/domain/subscription"
	"github.com/harvesthub/harvesthub/pkg/handlers/http/response"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type cancelSubscriptionHandler struct {
	*BaseHandler
	subscriptions subscription.Repository
}

func NewCancelSubscriptionHandler(base *BaseHandler, subscriptions subscription.Repository) Handler {
	return &cancelSubscriptionHandler{BaseHandler: base, subscriptions: subscriptions}
}

func (h *cancelSubscriptionHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}
	id, ok := h.ParseID(c, "subscription_id")
	if !ok {
		return nil
	}

	entity, err := h.subscriptions.GetByID(c.Context(), id)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	if entity.UserID != userID && h.SessionRole(c) != models.RoleAdmin {
		return h.writer.Error(c, response.CodeForbidden, "subscription belongs to another user")
	}
	if entity.Status == models.SubscriptionCancelled {
		return h.writer.Error(c, response.CodeConflict, "subscription is already cancelled")
	}

	if err := h.subscriptions.UpdateStatus(c.Context(), id, models.SubscriptionCancelled); err != nil {
		return h.WriteDomainError(c, err)
	}

	h.logger.WithFields(logrus.Fields{
		"subscription_id": id,
		"user_id":         userID,
	}).Info("subscription cancelled")

	entity.Status = models.SubscriptionCancelled
	return h.writer.OKMessage(c, entity, "subscription cancelled")
}

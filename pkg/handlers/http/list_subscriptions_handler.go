package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/domain/subscription"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type listSubscriptionsHandler struct {
	*BaseHandler
	subscriptions subscription.Repository
}

func NewListSubscriptionsHandler(base *BaseHandler, subscriptions subscription.Repository) Handler {
	return &listSubscriptionsHandler{BaseHandler: base, subscriptions: subscriptions}
}

func (h *listSubscriptionsHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}

	items, err := h.subscriptions.ListByUser(c.Context(), userID)
	if err != nil {
		return h.WriteDomainError(c, err)
	}
	if items == nil {
		items = []models.Subscription{}
	}
	return h.writer.OK(c, items)
}

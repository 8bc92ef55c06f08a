package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/harvesthub/harvesthub/pkg/infra/database/softdelete"
	"github.com/harvesthub/harvesthub/pkg/models"
)

type purgeTrashHandler struct {
	*BaseHandler
	store     *softdelete.Store
	retention time.Duration
}

// NewPurgeTrashHandler permanently removes soft-deleted rows older than
// the retention window across every entity. Admin only; also available as
// the purge command for cron.
func NewPurgeTrashHandler(base *BaseHandler, store *softdelete.Store, retention time.Duration) Handler {
	return &purgeTrashHandler{
		BaseHandler: base,
		store:       store,
		retention:   retention,
	}
}

func (h *purgeTrashHandler) Handle(c *fiber.Ctx) error {
	userID, ok := h.RequireUser(c)
	if !ok {
		return nil
	}
	if !h.RequireRole(c, models.RoleAdmin) {
		return nil
	}

	purged := fiber.Map{}
	var total int64
	for _, entity := range softdelete.All() {
		n, err := h.store.Purge(c.Context(), entity, h.retention)
		if err != nil {
			h.logger.WithError(err).WithField("entity", entity.String()).Error("purge failed")
			return h.WriteDomainError(c, err)
		}
		purged[entity.String()] = n
		total += n
	}

	h.logger.WithFields(logrus.Fields{
		"actor":          userID,
		"retention_days": int(h.retention.Hours() / 24),
		"rows":           total,
	}).Warn("trash purged")

	return h.writer.OKMessage(c, fiber.Map{
		"purged": purged,
		"total":  total,
	}, "trash purged")
}

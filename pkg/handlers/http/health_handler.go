package http

import (
	"context"
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/harvesthub/harvesthub/pkg/cache"
	"github.com/harvesthub/harvesthub/pkg/infra/database"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

type healthHandler struct {
	*BaseHandler
	db        *database.DB
	cache     *cache.TieredCache
	startedAt time.Time
}

// NewHealthHandler reports service health. Cache trouble only degrades the
// service (the tiered cache absorbs it); a dead database is unhealthy and
// turns the response into a 503.
func NewHealthHandler(base *BaseHandler, db *database.DB, c *cache.TieredCache) Handler {
	return &healthHandler{
		BaseHandler: base,
		db:          db,
		cache:       c,
		startedAt:   time.Now(),
	}
}

func (h *healthHandler) Handle(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	checks := fiber.Map{}
	status := statusHealthy

	dbCheck := fiber.Map{"status": statusHealthy}
	if err := h.db.Ping(ctx); err != nil {
		dbCheck["status"] = statusUnhealthy
		dbCheck["error"] = err.Error()
		status = statusUnhealthy
	}
	checks["database"] = dbCheck

	cacheHealth := h.cache.Health(ctx)
	cacheCheck := fiber.Map{
		"status":     statusHealthy,
		"state":      cacheHealth.State,
		"latency_ms": cacheHealth.LatencyMs,
	}
	if !cacheHealth.Healthy {
		cacheCheck["status"] = statusDegraded
		cacheCheck["error"] = cacheHealth.Error
		if status == statusHealthy {
			status = statusDegraded
		}
	}
	checks["cache"] = cacheCheck

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	checks["memory"] = fiber.Map{
		"alloc_mb":   mem.Alloc / 1024 / 1024,
		"sys_mb":     mem.Sys / 1024 / 1024,
		"goroutines": runtime.NumGoroutine(),
	}
	checks["uptime"] = fiber.Map{
		"seconds": int64(time.Since(h.startedAt).Seconds()),
	}

	body := fiber.Map{"status": status, "checks": checks}
	if status == statusUnhealthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(body)
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

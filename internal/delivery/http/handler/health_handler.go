package handler

import (
	"context"
	"time"

	"jobpilot/internal/database"
	"jobpilot/internal/infrastructure/cache"
	"jobpilot/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	redis *cache.Redis
}

func NewHealthHandler(db database.DB, redis *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports component status. Redis being down is not a failure: the
// service keeps answering from the in-process cache.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "up"
	if h.db == nil {
		dbStatus = "down"
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "down"
	}

	redisStatus := "up"
	if !h.redis.Available() {
		redisStatus = "down"
	}

	body := fiber.Map{
		"status":   "ok",
		"database": dbStatus,
		"redis":    redisStatus,
	}

	status := fiber.StatusOK
	if dbStatus == "down" {
		body["status"] = "degraded"
		status = fiber.StatusServiceUnavailable
	}

	return response.Success(c, status, response.MessageOK, body)
}

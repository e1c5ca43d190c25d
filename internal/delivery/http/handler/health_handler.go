package handler

import (
	"context"
	"time"

	"job-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger reports whether an optional dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	cache Pinger
	start time.Time
}

func NewHealthHandler(cache Pinger) *HealthHandler {
	return &HealthHandler{cache: cache, start: time.Now()}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Handle)
}

// Handle always answers 200; the cache is optional so its state is only
// reported.
func (h *HealthHandler) Handle(c fiber.Ctx) error {
	cacheState := "disabled"
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Context(), time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			cacheState = "unavailable"
		} else {
			cacheState = "ok"
		}
	}

	data := map[string]any{
		"status": "ok",
		"cache":  cacheState,
		"uptime": time.Since(h.start).Round(time.Second).String(),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, data)
}

package handler

import (
	"job-board/internal/metrics"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

func RegisterMetrics(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
}

package routes

import (
	"job-board/internal/delivery/http/handler"
	v1 "job-board/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
	ws     fiber.Handler
}

func NewRegistry(health *handler.HealthHandler, handlers v1.Handlers, ws fiber.Handler) *Registry {
	return &Registry{health: health, v1: handlers, ws: ws}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
	handler.RegisterMetrics(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1)
	if r.ws != nil {
		app.Get("/ws/jobs", r.ws)
	}
}

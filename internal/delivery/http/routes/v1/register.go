package v1

import (
	"job-board/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth          *handler.AuthHandler
	Jobs          *handler.JobsHandler
	Applications  *handler.ApplicationsHandler
	Users         *handler.UserHandler
	Notifications *handler.NotificationsHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	jobs := r.Group("/jobs")
	users := r.Group("/users")

	if h.Applications != nil {
		h.Applications.RegisterRoutes(jobs, users, r.Group("/applications"))
	}
	if h.Jobs != nil {
		h.Jobs.RegisterRoutes(jobs, r.Group("/companies"))
	}
	if h.Users != nil {
		h.Users.RegisterRoutes(users)
	}
	if h.Notifications != nil {
		h.Notifications.RegisterRoutes(r.Group("/notifications"))
	}
}

package app

import (
	"fmt"
	"strings"

	"job-board/internal/config"
	"job-board/internal/delivery/http/handler"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/delivery/http/routes"
	v1 "job-board/internal/delivery/http/routes/v1"
	"job-board/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

const maxUploadBytes = 10 * 1024 * 1024

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: maxUploadBytes,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := NewLogger(cfg)

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *logrus.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	auth := middleware.NewAuthMiddleware(c.Tokens).Middleware()

	health := handler.NewHealthHandler(nil)
	if c.Cache != nil {
		health = handler.NewHealthHandler(c.Cache)
	}

	handlers := v1.Handlers{
		Auth:          handler.NewAuthHandler(c.Auth, c.Limiter.Middleware()),
		Jobs:          handler.NewJobsHandler(c.JobService, auth),
		Applications:  handler.NewApplicationsHandler(c.AppService, auth),
		Users:         handler.NewUserHandler(c.UserService, auth),
		Notifications: handler.NewNotificationsHandler(c.Inbox, auth),
	}

	wsHandler := ws.NewHandler(c.Hub, c.Logger)
	routes.NewRegistry(health, handlers, wsHandler.HandleJobsWS).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}

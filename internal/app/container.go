package app

import (
	"context"
	"fmt"
	"time"

	"job-board/internal/config"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/infrastructure/cache"
	"job-board/internal/infrastructure/persistence/memory"
	"job-board/internal/infrastructure/storage"
	"job-board/internal/notification"
	"job-board/internal/pkg/jwt"
	"job-board/internal/search"
	"job-board/internal/seeder"
	"job-board/internal/usecase"
	appuc "job-board/internal/usecase/application"
	ucauth "job-board/internal/usecase/auth"
	jobuc "job-board/internal/usecase/job"
	useruc "job-board/internal/usecase/user"
	"job-board/internal/ws"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Container owns every long-lived dependency of the server.
type Container struct {
	Config config.Config
	Logger *logrus.Logger

	// InstanceID scopes the process' keys in shared Redis.
	InstanceID string

	Cache   *cache.Redis
	Users   *memory.UserRepository
	Jobs    *memory.JobRepository
	Apps    *memory.ApplicationRepository
	Resumes *storage.ResumeStore

	Tokens        *jwt.HMACService
	Gate          *ucauth.Gate
	Accounts      *ucauth.Service
	Auth          *usecase.Auth
	JobService    *jobuc.Service
	AppService    *appuc.Service
	UserService   *useruc.Service
	Notifications *notification.Service
	Inbox         *notification.Inbox
	Hub           *ws.Hub
	Limiter       *middleware.RateLimiter

	cancel context.CancelFunc
}

func NewContainer(cfg config.Config, logger *logrus.Logger) (*Container, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	strategy, err := search.New(cfg.Search.Strategy)
	if err != nil {
		return nil, fmt.Errorf("search strategy: %w", err)
	}

	c := &Container{
		Config:        cfg,
		Logger:        logger,
		InstanceID:    uuid.NewString(),
		Users:         memory.NewUserRepository(),
		Jobs:          memory.NewJobRepository(),
		Apps:          memory.NewApplicationRepository(),
		Resumes:       storage.NewResumeStore(cfg.Storage.ResumeDir),
		Notifications: notification.NewService(),
		Inbox:         notification.NewInbox(0),
		Hub:           ws.NewHub(logger),
		Limiter:       middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, logger),
	}

	var counter ucauth.AttemptCounter = ucauth.NewMemoryCounter()
	var searchCache jobuc.SearchCache
	if cfg.Redis.Enabled {
		c.Cache = cache.NewRedis(cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			TTL:      cfg.Redis.TTL,
		}, logger)
		if c.Cache.Available() {
			counter = cache.NewAttemptCounter(c.Cache, cache.AttemptKey(c.InstanceID), 0)
			searchCache = c.Cache
		}
	}

	c.Tokens = jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.RefreshSecret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshExpiresIn)
	c.Gate = ucauth.NewGate(ucauth.NewStoreVerifier(c.Users, cfg.Auth.BcryptCost), counter, cfg.Auth.MaxAttempts, logger)
	c.Accounts = ucauth.NewService(c.Users, c.Gate, cfg.Auth.BcryptCost)
	c.Auth = usecase.NewAuthUsecase(c.Accounts, c.Users, c.Tokens)

	c.Notifications.Subscribe(c.Inbox)
	c.Notifications.Subscribe(c.Hub)

	c.JobService = jobuc.NewService(c.Jobs, c.Users, jobuc.Options{
		Strategy: strategy,
		Cache:    searchCache,
		CacheTTL: cfg.Redis.TTL,
		Notifier: c.Notifications,
		Logger:   logger,

		CacheNamespace: c.InstanceID,
	})
	c.AppService = appuc.NewService(c.Apps, c.Jobs, c.Users, c.Resumes, logger)
	c.UserService = useruc.NewService(c.Users, c.Jobs)

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	go c.Hub.Run(ctx)
	go c.runLimiterCleanup(ctx, time.Minute)

	if cfg.App.SeedDemo {
		target := seeder.Target{Auth: c.Accounts, Jobs: c.JobService, Apps: c.Apps}
		if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, target); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
		logger.Info("[App] demo data seeded")
	}

	logger.WithFields(logrus.Fields{
		"instance":     c.InstanceID,
		"search":       search.Name(strategy),
		"max_attempts": c.Gate.MaxAttempts(),
		"resume_dir":   c.Resumes.Dir(),
		"redis":        c.Cache.Available(),
	}).Info("[App] container ready")

	return c, nil
}

func (c *Container) runLimiterCleanup(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			c.Limiter.Cleanup()
		}
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.cancel != nil {
		c.cancel()
	}
	return c.Cache.Close()
}

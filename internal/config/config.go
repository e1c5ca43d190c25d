package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	JWT       JWTConfig
	Auth      AuthConfig
	Storage   StorageConfig
	Search    SearchConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	LogLevel    string
	SeedDemo    bool
}

type JWTConfig struct {
	Secret           string
	ExpiresIn        time.Duration
	RefreshSecret    string
	RefreshExpiresIn time.Duration
}

type AuthConfig struct {
	MaxAttempts int
	BcryptCost  int
}

type StorageConfig struct {
	ResumeDir string
}

type SearchConfig struct {
	Strategy string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func Load() (Config, error) {
	cfg := Config{}

	var missing, invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optFloat := func(key string, def float64) float64 {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	// Durations accept Go syntax ("15m") or a bare number of seconds.
	optDuration := func(key string, def time.Duration) time.Duration {
		raw := opt(key, "")
		if raw == "" {
			return def
		}
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		LogLevel:    opt("LOG_LEVEL", "info"),
		SeedDemo:    optBool("SEED_DEMO", false),
	}

	secret := opt("JWT_SECRET", "")
	if secret == "" && strings.EqualFold(cfg.App.Environment, "production") {
		missing = append(missing, "JWT_SECRET")
	}
	if secret == "" {
		secret = "dev-access-secret"
	}
	cfg.JWT = JWTConfig{
		Secret:           secret,
		ExpiresIn:        optDuration("JWT_EXPIRES_IN", 15*time.Minute),
		RefreshSecret:    opt("JWT_REFRESH_SECRET", secret+"-refresh"),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Auth = AuthConfig{
		MaxAttempts: optInt("AUTH_MAX_ATTEMPTS", 3),
		BcryptCost:  optInt("BCRYPT_COST", 0),
	}

	cfg.Storage = StorageConfig{
		ResumeDir: opt("RESUME_DIR", "resumes"),
	}

	cfg.Search = SearchConfig{
		Strategy: opt("SEARCH_STRATEGY", "keyword"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  optBool("REDIS_ENABLED", true),
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
		TTL:      optDuration("REDIS_TTL", 600*time.Second),
	}

	cfg.RateLimit = RateLimitConfig{
		RPS:   optFloat("RATE_LIMIT_RPS", 5),
		Burst: optInt("RATE_LIMIT_BURST", 10),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

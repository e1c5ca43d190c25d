package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"job-board/internal/pkg/jwt"
	"job-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, body io.Reader) envelope {
	t.Helper()
	var e envelope
	if err := json.NewDecoder(body).Decode(&e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return e
}

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(NewErrorMiddleware(quietLogger()).Middleware())
	return app
}

func TestErrorMiddleware_MapsAppError(t *testing.T) {
	app := newApp()
	app.Get("/locked", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusLocked, "Too many failed login attempts", nil, errors.New("x"))
	})
	app.Get("/boom", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password is hunter2", nil, nil)
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("oops")
	})

	cases := []struct {
		path   string
		status int
		msg    string
	}{
		{"/locked", fiber.StatusLocked, "Too many failed login attempts"},
		{"/boom", fiber.StatusInternalServerError, "internal server error"},
		{"/panic", fiber.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		if err != nil {
			t.Fatalf("%s: %v", tc.path, err)
		}
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.status, resp.StatusCode)
		}
		if e := decode(t, resp.Body); e.Message != tc.msg || e.Status != tc.status {
			t.Fatalf("%s: unexpected envelope %+v", tc.path, e)
		}
	}
}

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewHMACService("a", "r", time.Minute, time.Hour)
	app := newApp()
	auth := NewAuthMiddleware(tokens)
	app.Get("/me", auth.Middleware(), func(c fiber.Ctx) error {
		u, _ := Username(c)
		return c.SendString(u)
	})
	app.Get("/company", auth.Middleware(), RequireRole("COMPANY"), func(c fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	access, _ := tokens.GenerateAccessToken("ann", "APPLICANT")
	refresh, _ := tokens.GenerateRefreshToken("ann")

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, _ := app.Test(req)
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK || string(body) != "ann" {
		t.Fatalf("unexpected response %d %s", resp.StatusCode, body)
	}

	for _, header := range []string{"", "Bearer ", "Basic abc", "Bearer " + refresh} {
		req := httptest.NewRequest("GET", "/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, _ := app.Test(req)
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, resp.StatusCode)
		}
	}

	req = httptest.NewRequest("GET", "/company", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, _ = app.Test(req)
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403 for wrong role, got %d", resp.StatusCode)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2, quietLogger())
	base := time.Now()
	rl.now = func() time.Time { return base }

	app := newApp()
	app.Post("/login", rl.Middleware(), func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		codes = append(codes, resp.StatusCode)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != fiber.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}

	rl.now = func() time.Time { return base.Add(time.Hour) }
	rl.Cleanup()
	if len(rl.limiters) != 0 {
		t.Fatalf("idle limiters should be dropped")
	}
}

func TestAccessLog_SetsRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(quietLogger()).Middleware())
	app.Get("/ping", func(c fiber.Ctx) error { return c.SendString("pong") })

	resp, _ := app.Test(httptest.NewRequest("GET", "/ping", nil))
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected a generated request id")
	}

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("X-Request-ID", "abc")
	resp, _ = app.Test(req)
	if resp.Header.Get("X-Request-ID") != "abc" {
		t.Fatalf("expected the caller's request id to be echoed")
	}
}

func TestAccessLog_RequestIDInEnvelope(t *testing.T) {
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(quietLogger()).Middleware())
	app.Get("/ping", func(c fiber.Ctx) error {
		return response.Success(c, fiber.StatusOK, "", nil)
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(response.HeaderRequestID, "rid-42")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	defer resp.Body.Close()

	var body response.SemanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.RequestID != "rid-42" || body.Message != response.MessageOK {
		t.Fatalf("unexpected envelope %+v", body)
	}
}

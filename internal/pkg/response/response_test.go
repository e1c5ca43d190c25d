package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestWrite_DefaultsAndRequestID(t *testing.T) {
	app := fiber.New()
	app.Get("/locked", func(c fiber.Ctx) error {
		return Error(c, fiber.StatusLocked, "", nil)
	})
	app.Get("/bogus", func(c fiber.Ctx) error {
		c.Set(HeaderRequestID, "rid-1")
		return Success(c, 42, "", nil)
	})

	cases := []struct {
		path       string
		wantStatus int
		wantMsg    string
		wantRID    string
	}{
		{"/locked", fiber.StatusLocked, MessageLocked, ""},
		{"/bogus", fiber.StatusInternalServerError, MessageInternalServerError, "rid-1"},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		if err != nil {
			t.Fatalf("%s: %v", tc.path, err)
		}
		var body SemanticResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode: %v", tc.path, err)
		}
		_ = resp.Body.Close()

		if resp.StatusCode != tc.wantStatus || body.Status != tc.wantStatus {
			t.Fatalf("%s: expected status %d, got %d/%d", tc.path, tc.wantStatus, resp.StatusCode, body.Status)
		}
		if body.Message != tc.wantMsg || body.RequestID != tc.wantRID {
			t.Fatalf("%s: unexpected envelope %+v", tc.path, body)
		}
	}
}

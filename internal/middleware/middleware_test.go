package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
	"github.com/google/go-cmp/cmp"
)

func echoPlayer(c *fiber.Ctx) error {
	return c.SendString(c.Locals("playerID").(string))
}

func TestEnsurePlayerID(t *testing.T) {
	app := fiber.New()
	app.Get("/who", EnsurePlayerID(), echoPlayer)

	tests := []struct {
		name     string
		target   string
		header   string
		wantCode int
		wantBody string
	}{
		{"header", "/who", "alice", fiber.StatusOK, "alice"},
		{"query", "/who?playerId=bob", "", fiber.StatusOK, "bob"},
		{"header wins over query", "/who?playerId=bob", "alice", fiber.StatusOK, "alice"},
		{"blank header falls back to query", "/who?playerId=bob", "  ", fiber.StatusOK, "bob"},
		{"missing", "/who", "", fiber.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(PlayerIDHeader, tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantCode {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantCode)
			}
			body, _ := io.ReadAll(resp.Body)
			if tt.wantBody != "" && string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}

func TestEnsurePlayerIDOutlivesRequest(t *testing.T) {
	var seen []string
	app := fiber.New()
	app.Get("/who", EnsurePlayerID(), func(c *fiber.Ctx) error {
		seen = append(seen, c.Locals("playerID").(string))
		return c.SendStatus(fiber.StatusOK)
	})

	ids := []string{"bob", "zzzzzzzz", "carol"}
	for _, id := range ids {
		req := httptest.NewRequest(http.MethodGet, "/who?playerId="+id, nil)
		req.Header.Set(PlayerIDHeader, id)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}
	if diff := cmp.Diff(ids, seen); diff != "" {
		t.Errorf("stored ids changed after later requests (-want +got):\n%s", diff)
	}
}

func TestWebSocketUpgradeRejectsPlainRequests(t *testing.T) {
	app := fiber.New()
	app.Get("/ws/game/:gameId", EnsurePlayerID(), WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ws/game/g1?playerId=alice", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != fiber.StatusUpgradeRequired {
		t.Errorf("status = %d, want 426", resp.StatusCode)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	app := fiber.New()
	app.Use(RequestLogger(logger))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })

	for _, target := range []string{"/ok", "/missing"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	out := buf.String()
	for _, want := range []string{"path=/ok", "status=200", "path=/missing", "status=404", "WARN"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

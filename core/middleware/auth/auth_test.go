package auth_test

import (
	"net/http/httptest"
	"testing"

	"media-sync/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(cfg auth.Config) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(cfg))
	app.Get("/api/health", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/api/sync/map", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestAuth(t *testing.T) {
	app := newApp(auth.Config{ApiKey: "secret", Public: []string{"/api/health"}})

	tests := []struct {
		name   string
		path   string
		header map[string]string
		want   int
	}{
		{"MissingKey", "/api/sync/map", nil, fiber.StatusUnauthorized},
		{"WrongKey", "/api/sync/map", map[string]string{auth.HeaderName: "nope"}, fiber.StatusUnauthorized},
		{"HeaderKey", "/api/sync/map", map[string]string{auth.HeaderName: "secret"}, fiber.StatusOK},
		{"BearerKey", "/api/sync/map", map[string]string{"Authorization": "Bearer secret"}, fiber.StatusOK},
		{"PublicPath", "/api/health", nil, fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuth_DisabledWithoutKey(t *testing.T) {
	resp, err := newApp(auth.Config{}).Test(httptest.NewRequest("GET", "/api/sync/map", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

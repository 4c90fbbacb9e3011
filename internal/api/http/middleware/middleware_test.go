package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/angket_backend/config"
	"github.com/Alijeyrad/angket_backend/pkg/reqctx"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c fiber.Ctx) error {
		local, _ := RequestIDFromFiber(c)
		return c.SendString(local + "|" + reqctx.RequestIDFromContext(c.Context()))
	})

	t.Run("generated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		rid := resp.Header.Get(HeaderRequestID)
		assert.Len(t, rid, 36)
	})

	t.Run("preserved", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "abc-123", resp.Header.Get(HeaderRequestID))

		body := make([]byte, 64)
		n, _ := resp.Body.Read(body)
		assert.Equal(t, "abc-123|abc-123", string(body[:n]))
	})
}

func TestLimiterInMemory(t *testing.T) {
	app := fiber.New()
	app.Use(NewLimiter(config.RateLimitConfig{Max: 2, ExpirationSeconds: 60}, nil))
	app.Get("/", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	var last int
	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
		require.NoError(t, err)
		last = resp.StatusCode
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

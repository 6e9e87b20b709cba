package http_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestDeadline_ContextoConPlazo(t *testing.T) {
	app, _ := buildTestApp(t)
	app.Get("/plazo", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		deadline, ok := ctx.Deadline()
		if !ok || ctx.Done() == nil {
			return c.SendString("sin plazo")
		}
		return c.SendString(fmt.Sprintf("%.0f", time.Until(deadline).Seconds()))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/plazo", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	assert.NotEqual(t, "sin plazo", body)
	assert.Contains(t, []string{"4", "5"}, body)
}

func TestRequestDeadline_VencidoResponde504(t *testing.T) {
	app, _ := buildTestApp(t)
	app.Get("/api/lento", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), time.Millisecond)
		defer cancel()
		<-ctx.Done()
		return fmt.Errorf("cargar vista: %w", ctx.Err())
	})

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/lento", "", ""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusGatewayTimeout, resp.StatusCode)
	assert.Equal(t, "TIMEOUT", errorBody(t, resp).Code)
}

package basehdl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/nadiag01/apre/internal/common"
	"github.com/nadiag01/apre/internal/global"
	"github.com/nadiag01/apre/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	_ = logger.Init(&logger.LogConfig{Level: "info", Format: "text", Output: "none"})
	code := m.Run()
	logger.Close()
	os.Exit(code)
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

func TestSafeHandlerWrapper(t *testing.T) {
	app := fiber.New()
	app.Get("/panic", func(c fiber.Ctx) error {
		return SafeHandlerWrapper(c, func() error { panic("boom") })
	})
	app.Get("/err", func(c fiber.Ctx) error {
		return SafeHandlerWrapper(c, func() error { return common.ErrNotFound })
	})

	status, body := do(t, app, fiber.MethodGet, "/panic", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, common.ErrCodeInternalServer.Code, body["code"])

	status, body = do(t, app, fiber.MethodGet, "/err", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "error", body["status"])
}

type createInput struct {
	Name string `json:"name" validate:"required,no_xss"`
}

func TestParseBody(t *testing.T) {
	v := global.NewValidator()
	app := fiber.New()
	app.Post("/items", func(c fiber.Ctx) error {
		return SafeHandlerWrapper(c, func() error {
			in, err := ParseBody[createInput](c, v)
			return HandleResponse(c, fiber.StatusCreated, in, err)
		})
	})

	status, body := do(t, app, fiber.MethodPost, "/items", `{"name":"widget"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, map[string]any{"name": "widget"}, body["data"])

	status, body = do(t, app, fiber.MethodPost, "/items", `{"name":"<script>x</script>"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, map[string]any{"Name": "no_xss"}, body["details"])

	status, _ = do(t, app, fiber.MethodPost, "/items", `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandleHealth(t *testing.T) {
	app := fiber.New()
	app.Get("/ok", NewSystemHandler(func(context.Context) error { return nil }).HandleHealth)
	app.Get("/down", NewSystemHandler(func(context.Context) error { return errors.New("no primary") }).HandleHealth)

	status, body := do(t, app, fiber.MethodGet, "/ok", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "healthy", body["data"].(map[string]any)["status"])

	status, body = do(t, app, fiber.MethodGet, "/down", "")
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", body["data"].(map[string]any)["status"])
}

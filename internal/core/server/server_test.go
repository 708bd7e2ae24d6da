package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"paypal-checkout/internal/core/config"
	"paypal-checkout/internal/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew verifies that New creates a Server with the correct configuration.
func TestNew(t *testing.T) {
	cfg := &config.AppConfig{
		ServerPort: 10000,
	}

	require.NoError(t, logger.Init("development", "debug"))
	srv := New(cfg)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.App)
	assert.Equal(t, cfg, srv.cfg)
}

// TestNew_RequestID verifies that every response carries the ray ID header.
func TestNew_RequestID(t *testing.T) {
	srv := New(&config.AppConfig{})
	srv.App.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("requestid").(string))
	})

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)

	rayID := resp.Header.Get("X-Ray-ID")
	assert.NotEmpty(t, rayID)

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, rayID, string(body))
}

// TestNew_Metrics verifies the metrics endpoint is mounted.
func TestNew_Metrics(t *testing.T) {
	srv := New(&config.AppConfig{})

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestServeStatic verifies the checkout UI is served without shadowing API routes.
func TestServeStatic(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>checkout</h1>"), 0644))

	srv := New(&config.AppConfig{StaticDir: dir})
	srv.App.Get("/check-env", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	srv.ServeStatic()

	resp, err := srv.App.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "checkout")

	resp, err = srv.App.Test(httptest.NewRequest(http.MethodGet, "/check-env", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// TestServer_Run_Error verifies that Run returns an error when binding fails (e.g., privileged port).
func TestServer_Run_Error(t *testing.T) {
	cfg := &config.AppConfig{
		ServerPort: 1,
	}
	require.NoError(t, logger.Init("development", "error"))

	srv := New(cfg)

	errCh := make(chan error)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		assert.Error(t, err)
	case <-time.After(1 * time.Second):
		srv.Shutdown()
		t.Log("Server unexpectedly started or timed out on Error test")
	}
}

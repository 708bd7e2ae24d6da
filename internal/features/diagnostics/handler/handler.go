package handler

import (
	"net/http"

	"paypal-checkout/internal/core/config"
	"paypal-checkout/internal/features/diagnostics/domain"

	"github.com/gofiber/fiber/v2"
)

// DiagnosticsHandler reports on the process configuration.
type DiagnosticsHandler struct {
	cfg config.PayPalConfig
}

// NewDiagnosticsHandler creates a new DiagnosticsHandler.
func NewDiagnosticsHandler(cfg config.PayPalConfig) *DiagnosticsHandler {
	return &DiagnosticsHandler{cfg: cfg}
}

// CheckEnv handles GET /check-env.
// @Summary Check processor configuration
// @Description Reports whether each processor setting is configured. Values are never returned.
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} map[string]string
// @Router /check-env [get]
func (h *DiagnosticsHandler) CheckEnv(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(domain.NewEnvReport(h.cfg))
}

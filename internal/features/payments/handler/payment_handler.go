package handler

import (
	"bytes"
	"net/http"
	"strings"

	"paypal-checkout/internal/core/logger"
	"paypal-checkout/internal/features/payments/ports"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PaymentHandler exposes the checkout operations over HTTP.
type PaymentHandler struct {
	service ports.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service: service,
	}
}

// CreateOrderRequest is the body of POST /create-order.
type CreateOrderRequest struct {
	Amount string `json:"amount" example:"25.50"`
}

// AuthorizeOrderRequest is the body of POST /authorize-order.
type AuthorizeOrderRequest struct {
	OrderID string `json:"orderID" example:"5O190127TN364715T"`
}

// CaptureOrderRequest is the body of POST /capture-order.
type CaptureOrderRequest struct {
	AuthorizationID string `json:"authorizationID" example:"0VF52814937998046"`
}

// ErrorResponse is returned on every failure; it never carries processor detail.
type ErrorResponse struct {
	// Error is a generic description of the failed operation.
	Error string `json:"error"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id,omitempty"`
}

// CreateOrder handles POST /create-order.
// @Summary Create an order
// @Description Creates an AUTHORIZE intent order in USD. Amount defaults to 10.00.
// @Tags Payments
// @Accept json
// @Produce json
// @Param order body CreateOrderRequest false "Order amount"
// @Success 200 {object} map[string]interface{} "Processor order response"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /create-order [post]
func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := decodeBody(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
			RayID: rayID(c),
		})
	}

	resp, err := h.service.CreateOrder(c.Context(), req.Amount)
	if err != nil {
		return h.fail(c, "Failed to create order", err, zap.String("amount", req.Amount))
	}

	return relay(c, resp)
}

// AuthorizeOrder handles POST /authorize-order.
// @Summary Authorize an order
// @Description Authorizes a buyer-approved order and returns the authorization details.
// @Tags Payments
// @Accept json
// @Produce json
// @Param order body AuthorizeOrderRequest true "Order to authorize"
// @Success 200 {object} map[string]interface{} "Processor authorization response"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /authorize-order [post]
func (h *PaymentHandler) AuthorizeOrder(c *fiber.Ctx) error {
	var req AuthorizeOrderRequest
	if err := decodeBody(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
			RayID: rayID(c),
		})
	}

	resp, err := h.service.AuthorizeOrder(c.Context(), req.OrderID)
	if err != nil {
		return h.fail(c, "Failed to authorize order", err, zap.String("order_id", req.OrderID))
	}

	return relay(c, resp)
}

// CaptureOrder handles POST /capture-order.
// @Summary Capture an authorization
// @Description Captures the funds held by a previous authorization.
// @Tags Payments
// @Accept json
// @Produce json
// @Param capture body CaptureOrderRequest true "Authorization to capture"
// @Success 200 {object} map[string]interface{} "Processor capture response"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /capture-order [post]
func (h *PaymentHandler) CaptureOrder(c *fiber.Ctx) error {
	var req CaptureOrderRequest
	if err := decodeBody(c, &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
			RayID: rayID(c),
		})
	}

	resp, err := h.service.CaptureAuthorization(c.Context(), req.AuthorizationID)
	if err != nil {
		return h.fail(c, "Failed to capture order", err, zap.String("authorization_id", req.AuthorizationID))
	}

	return relay(c, resp)
}

// decodeBody parses a JSON body into out. An empty body leaves out untouched.
// A body without a Content-Type is decoded as JSON; other non-JSON types are ignored.
func decodeBody(c *fiber.Ctx, out interface{}) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil
	}

	ctype := strings.ToLower(c.Get(fiber.HeaderContentType))
	switch {
	case strings.HasPrefix(ctype, fiber.MIMEApplicationJSON):
		return c.BodyParser(out)
	case ctype == "":
		return json.Unmarshal(body, out)
	default:
		return nil
	}
}

// fail logs the cause and answers with a generic 500.
func (h *PaymentHandler) fail(c *fiber.Ctx, msg string, err error, fields ...zap.Field) error {
	ray := rayID(c)
	logger.Get().Error(msg, append(fields, zap.String("ray_id", ray), zap.Error(err))...)

	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Error: msg,
		RayID: ray,
	})
}

// relay writes the processor body unmodified.
func relay(c *fiber.Ctx, body []byte) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(http.StatusOK).Send(body)
}

func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "unknown"
}

// RegisterRoutes mounts the checkout endpoints on r.
func RegisterRoutes(r fiber.Router, h *PaymentHandler) {
	r.Post("/create-order", h.CreateOrder)
	r.Post("/authorize-order", h.AuthorizeOrder)
	r.Post("/capture-order", h.CaptureOrder)
}

package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"paypal-checkout/internal/features/payments/domain"

	"github.com/goccy/go-json"
)

// PayPalOrders implements ports.OrderGateway against the Orders v2 and Payments v2 APIs.
type PayPalOrders struct {
	api paypalAPI
}

// NewPayPalOrders creates a new instance of PayPalOrders.
func NewPayPalOrders(client *http.Client, baseURL string) *PayPalOrders {
	return &PayPalOrders{
		api: newPayPalAPI(client, baseURL),
	}
}

// CreateOrder posts the order to /v2/checkout/orders.
func (o *PayPalOrders) CreateOrder(ctx context.Context, accessToken string, order domain.OrderRequest) ([]byte, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order: %w", err)
	}

	return o.post(ctx, endpointCreateOrder, "/v2/checkout/orders", accessToken, bytes.NewReader(payload))
}

// AuthorizeOrder posts to /v2/checkout/orders/{orderID}/authorize.
func (o *PayPalOrders) AuthorizeOrder(ctx context.Context, accessToken, orderID string) ([]byte, error) {
	path := fmt.Sprintf("/v2/checkout/orders/%s/authorize", url.PathEscape(orderID))
	return o.post(ctx, endpointAuthorizeOrder, path, accessToken, nil)
}

// CaptureAuthorization posts to /v2/payments/authorizations/{authorizationID}/capture.
func (o *PayPalOrders) CaptureAuthorization(ctx context.Context, accessToken, authorizationID string) ([]byte, error) {
	path := fmt.Sprintf("/v2/payments/authorizations/%s/capture", url.PathEscape(authorizationID))
	return o.post(ctx, endpointCaptureAuthorization, path, accessToken, nil)
}

func (o *PayPalOrders) post(ctx context.Context, endpoint, path, accessToken string, body io.Reader) ([]byte, error) {
	req, err := o.api.newRequest(ctx, endpoint, path, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.api.send(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	return resp, nil
}

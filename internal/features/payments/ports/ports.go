package ports

import (
	"context"

	"paypal-checkout/internal/features/payments/domain"
)

// PaymentService is the primary port for the checkout operations.
// Every method returns the processor's raw JSON body.
type PaymentService interface {
	CreateOrder(ctx context.Context, amount string) ([]byte, error)
	AuthorizeOrder(ctx context.Context, orderID string) ([]byte, error)
	CaptureAuthorization(ctx context.Context, authorizationID string) ([]byte, error)
}

// CredentialProvider exchanges the configured client credentials for an access token.
// This is a Secondary Port (Driven Port).
type CredentialProvider interface {
	AccessToken(ctx context.Context) (*domain.AccessToken, error)
}

// TokenInvalidator is implemented by credential providers that keep tokens between operations.
// The service calls it when the processor rejects a token so the next operation fetches a new one.
type TokenInvalidator interface {
	Invalidate(ctx context.Context)
}

// OrderGateway issues the order lifecycle calls against the processor.
// This is a Secondary Port (Driven Port).
type OrderGateway interface {
	// CreateOrder creates an order and returns the processor response body.
	CreateOrder(ctx context.Context, accessToken string, order domain.OrderRequest) ([]byte, error)
	// AuthorizeOrder authorizes an approved order.
	AuthorizeOrder(ctx context.Context, accessToken, orderID string) ([]byte, error)
	// CaptureAuthorization captures a previously authorized hold.
	CaptureAuthorization(ctx context.Context, accessToken, authorizationID string) ([]byte, error)
}

package service

import (
	"context"
	"errors"
	"fmt"

	"paypal-checkout/internal/features/payments/domain"
	"paypal-checkout/internal/features/payments/ports"
)

// PaymentService orchestrates the create, authorize and capture calls.
// It keeps no state between calls; identifiers are trusted and sequencing is left to the processor.
type PaymentService struct {
	credentials ports.CredentialProvider
	gateway     ports.OrderGateway
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(credentials ports.CredentialProvider, gateway ports.OrderGateway) *PaymentService {
	return &PaymentService{
		credentials: credentials,
		gateway:     gateway,
	}
}

// CreateOrder creates an AUTHORIZE order for amount, or DefaultAmount when amount is empty.
func (s *PaymentService) CreateOrder(ctx context.Context, amount string) ([]byte, error) {
	return s.withToken(ctx, "create order", func(token string) ([]byte, error) {
		return s.gateway.CreateOrder(ctx, token, domain.NewOrderRequest(amount))
	})
}

// AuthorizeOrder authorizes a buyer-approved order.
func (s *PaymentService) AuthorizeOrder(ctx context.Context, orderID string) ([]byte, error) {
	return s.withToken(ctx, "authorize order", func(token string) ([]byte, error) {
		return s.gateway.AuthorizeOrder(ctx, token, orderID)
	})
}

// CaptureAuthorization captures the funds held by an authorization.
func (s *PaymentService) CaptureAuthorization(ctx context.Context, authorizationID string) ([]byte, error) {
	return s.withToken(ctx, "capture authorization", func(token string) ([]byte, error) {
		return s.gateway.CaptureAuthorization(ctx, token, authorizationID)
	})
}

// withToken acquires a token and runs call with it. A token the processor rejects is
// invalidated so the next operation starts over; the failed call is not retried.
func (s *PaymentService) withToken(ctx context.Context, op string, call func(token string) ([]byte, error)) ([]byte, error) {
	token, err := s.credentials.AccessToken(ctx)
	if err != nil {
		return nil, processorError(op, err)
	}

	resp, err := call(token.Value)
	if err != nil {
		if errors.Is(err, domain.ErrTokenRejected) {
			if inv, ok := s.credentials.(ports.TokenInvalidator); ok {
				inv.Invalidate(ctx)
			}
		}
		return nil, processorError(op, err)
	}
	return resp, nil
}

// processorError guarantees every failure leaving the service is an ErrProcessorCall.
func processorError(op string, err error) error {
	if errors.Is(err, domain.ErrProcessorCall) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrProcessorCall, err)
}

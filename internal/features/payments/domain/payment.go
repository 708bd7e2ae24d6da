package domain

import (
	"errors"
	"time"
)

const (
	// IntentAuthorize places a hold on funds that is captured in a later step.
	IntentAuthorize = "AUTHORIZE"
	// CurrencyUSD is the only currency orders are created in.
	CurrencyUSD = "USD"
	// DefaultAmount is used when the caller does not send an amount.
	DefaultAmount = "10.00"
)

// ErrProcessorCall is the single failure category: network error, non-2xx status or malformed body.
var ErrProcessorCall = errors.New("processor call failed")

// ErrTokenRejected marks a 401 from the processor. It always travels wrapped together with ErrProcessorCall.
var ErrTokenRejected = errors.New("access token rejected")

// AccessToken is a short-lived bearer credential.
type AccessToken struct {
	// Value is the opaque token presented as "Bearer <Value>".
	Value string
	// TokenType is normally "Bearer".
	TokenType string
	// ExpiresIn is the lifetime reported by the processor; zero when unknown.
	ExpiresIn time.Duration
}

// Money is a currency code plus a decimal amount string.
type Money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// PurchaseUnit is one purchasable item group within an order.
type PurchaseUnit struct {
	Amount Money `json:"amount"`
}

// OrderRequest is the order-creation body sent to the processor.
type OrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
}

// NewOrderRequest builds a single-unit USD authorize order, falling back to DefaultAmount.
func NewOrderRequest(amount string) OrderRequest {
	if amount == "" {
		amount = DefaultAmount
	}

	return OrderRequest{
		Intent: IntentAuthorize,
		PurchaseUnits: []PurchaseUnit{
			{Amount: Money{CurrencyCode: CurrencyUSD, Value: amount}},
		},
	}
}

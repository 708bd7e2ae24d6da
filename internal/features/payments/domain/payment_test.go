package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrderRequest(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{name: "DefaultAmount", amount: "", expected: "10.00"},
		{name: "GivenAmount", amount: "25.50", expected: "25.50"},
		{name: "UnvalidatedAmount", amount: "abc", expected: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := NewOrderRequest(tt.amount)

			assert.Equal(t, IntentAuthorize, order.Intent)
			require.Len(t, order.PurchaseUnits, 1)
			assert.Equal(t, CurrencyUSD, order.PurchaseUnits[0].Amount.CurrencyCode)
			assert.Equal(t, tt.expected, order.PurchaseUnits[0].Amount.Value)
		})
	}
}

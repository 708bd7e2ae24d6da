package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"paypal-checkout/internal/core/httpclient"
	"paypal-checkout/internal/core/proxy"
	"paypal-checkout/internal/features/payments/domain"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrders(baseURL string) *PayPalOrders {
	return NewPayPalOrders(httpclient.NewClient(2*time.Second, proxy.Settings{}), baseURL)
}

// TestPayPalOrders_CreateOrder verifies the order body and bearer credential.
func TestPayPalOrders_CreateOrder(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected string
	}{
		{name: "DefaultAmount", amount: "", expected: "10.00"},
		{name: "GivenAmount", amount: "25.50", expected: "25.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockResponse := `{"id":"5O190127TN364715T","status":"CREATED","links":[{"href":"https://www.sandbox.paypal.com/checkoutnow?token=5O190127TN364715T","rel":"approve","method":"GET"}]}`

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v2/checkout/orders", r.URL.Path)
				assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body domain.OrderRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "AUTHORIZE", body.Intent)
				if !assert.Len(t, body.PurchaseUnits, 1) {
					return
				}
				assert.Equal(t, "USD", body.PurchaseUnits[0].Amount.CurrencyCode)
				assert.Equal(t, tt.expected, body.PurchaseUnits[0].Amount.Value)

				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(mockResponse))
			}))
			defer server.Close()

			resp, err := newTestOrders(server.URL).CreateOrder(context.Background(), "tok-123", domain.NewOrderRequest(tt.amount))

			require.NoError(t, err)
			assert.JSONEq(t, mockResponse, string(resp))
		})
	}
}

// TestPayPalOrders_AuthorizeOrder verifies the authorize path is built from the order ID.
func TestPayPalOrders_AuthorizeOrder(t *testing.T) {
	mockResponse := `{"id":"ABC123","status":"COMPLETED","purchase_units":[{"payments":{"authorizations":[{"id":"XYZ789","status":"CREATED"}]}}]}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/checkout/orders/ABC123/authorize", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	resp, err := newTestOrders(server.URL).AuthorizeOrder(context.Background(), "tok-123", "ABC123")

	require.NoError(t, err)
	assert.Equal(t, mockResponse, string(resp))
}

// TestPayPalOrders_CaptureAuthorization verifies the capture path is built from the authorization ID.
func TestPayPalOrders_CaptureAuthorization(t *testing.T) {
	mockResponse := `{"id":"2GG279541U471931P","status":"COMPLETED"}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/payments/authorizations/XYZ789/capture", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(mockResponse))
	}))
	defer server.Close()

	resp, err := newTestOrders(server.URL).CaptureAuthorization(context.Background(), "tok-123", "XYZ789")

	require.NoError(t, err)
	assert.Equal(t, mockResponse, string(resp))
}

// TestPayPalOrders_PathEscaping verifies identifiers cannot alter the request path.
func TestPayPalOrders_PathEscaping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/checkout/orders/..%2Fpayments/authorize", r.URL.EscapedPath())
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := newTestOrders(server.URL).AuthorizeOrder(context.Background(), "tok", "../payments")
	require.NoError(t, err)
}

// TestPayPalOrders_Errors verifies rejected and malformed responses become ErrProcessorCall.
func TestPayPalOrders_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "Unprocessable", status: http.StatusUnprocessableEntity, body: `{"name":"UNPROCESSABLE_ENTITY","details":[{"issue":"ORDER_NOT_APPROVED"}]}`},
		{name: "ServerError", status: http.StatusInternalServerError, body: `{"name":"INTERNAL_SERVER_ERROR"}`},
		{name: "NotJSON", status: http.StatusOK, body: `not json`},
		{name: "EmptyBody", status: http.StatusCreated, body: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set(httpclient.DebugIDHeader, "f00ba4")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			resp, err := newTestOrders(server.URL).CaptureAuthorization(context.Background(), "tok", "XYZ789")

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, domain.ErrProcessorCall)
		})
	}
}

// TestPayPalOrders_RejectedToken verifies a 401 is reported as a rejected token.
func TestPayPalOrders_RejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_token","error_description":"Token signature verification failed"}`))
	}))
	defer server.Close()

	resp, err := newTestOrders(server.URL).AuthorizeOrder(context.Background(), "revoked", "ABC123")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrProcessorCall)
	assert.ErrorIs(t, err, domain.ErrTokenRejected)
}

// TestPayPalOrders_OtherRejectionsKeepToken verifies only 401 marks the token as rejected.
func TestPayPalOrders_OtherRejectionsKeepToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"name":"NOT_AUTHORIZED"}`))
	}))
	defer server.Close()

	_, err := newTestOrders(server.URL).CaptureAuthorization(context.Background(), "tok", "XYZ789")

	assert.ErrorIs(t, err, domain.ErrProcessorCall)
	assert.NotErrorIs(t, err, domain.ErrTokenRejected)
}

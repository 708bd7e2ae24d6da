package adapters

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"paypal-checkout/internal/core/config"
	"paypal-checkout/internal/features/payments/domain"

	"github.com/goccy/go-json"
)

// PayPalCredentials implements ports.CredentialProvider with the OAuth client-credentials grant.
type PayPalCredentials struct {
	api          paypalAPI
	clientID     string
	clientSecret string
}

// NewPayPalCredentials creates a credential provider for the configured client.
func NewPayPalCredentials(client *http.Client, cfg config.PayPalConfig) *PayPalCredentials {
	return &PayPalCredentials{
		api:          newPayPalAPI(client, cfg.APIBase),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccessToken fetches a new token. Nothing is cached here.
func (c *PayPalCredentials) AccessToken(ctx context.Context) (*domain.AccessToken, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := c.api.newRequest(ctx, endpointToken, "/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := c.api.send(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("%w: failed to decode token response: %w", domain.ErrProcessorCall, err)
	}

	if tr.AccessToken == "" {
		return nil, fmt.Errorf("%w: token response has no access_token", domain.ErrProcessorCall)
	}

	return &domain.AccessToken{
		Value:     tr.AccessToken,
		TokenType: tr.TokenType,
		ExpiresIn: time.Duration(tr.ExpiresIn) * time.Second,
	}, nil
}

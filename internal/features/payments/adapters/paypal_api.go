package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"paypal-checkout/internal/core/httpclient"
	"paypal-checkout/internal/core/logger"
	"paypal-checkout/internal/features/payments/domain"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Endpoint labels used for outbound logs and metrics.
const (
	endpointToken                = "oauth2_token"
	endpointCreateOrder          = "create_order"
	endpointAuthorizeOrder       = "authorize_order"
	endpointCaptureAuthorization = "capture_authorization"
)

const (
	maxResponseBytes = 1 << 20
	logBodyLimit     = 512
)

// paypalAPI holds what every processor call shares: the client and the base URL.
type paypalAPI struct {
	client  *http.Client
	baseURL string
}

func newPayPalAPI(client *http.Client, baseURL string) paypalAPI {
	return paypalAPI{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// newRequest builds a POST against path, labelled with endpoint.
func (a paypalAPI) newRequest(ctx context.Context, endpoint, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(httpclient.WithEndpoint(ctx, endpoint), http.MethodPost, a.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", domain.ErrProcessorCall, err)
	}
	return req, nil
}

// send executes req and returns the raw body when the processor answered 2xx with valid JSON.
func (a paypalAPI) send(req *http.Request) ([]byte, error) {
	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", domain.ErrProcessorCall, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", domain.ErrProcessorCall, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		logger.Named("paypal").Debug("Processor rejected request",
			zap.String("endpoint", httpclient.Endpoint(req.Context())),
			zap.Int("status_code", resp.StatusCode),
			zap.String("debug_id", resp.Header.Get(httpclient.DebugIDHeader)),
			zap.ByteString("body", truncate(body, logBodyLimit)),
		)
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%w: %w: processor returned status %d", domain.ErrProcessorCall, domain.ErrTokenRejected, resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: processor returned status %d", domain.ErrProcessorCall, resp.StatusCode)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: response is not valid JSON", domain.ErrProcessorCall)
	}

	return body, nil
}

func truncate(b []byte, limit int) []byte {
	if len(b) <= limit {
		return b
	}
	return b[:limit]
}

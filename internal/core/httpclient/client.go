package httpclient

import (
	"context"
	"net/http"
	"time"

	"paypal-checkout/internal/core/logger"
	"paypal-checkout/internal/core/metrics"
	"paypal-checkout/internal/core/proxy"

	"go.uber.org/zap"
)

// DebugIDHeader is the processor's correlation header, useful when raising support tickets.
const DebugIDHeader = "Paypal-Debug-Id"

type endpointKey struct{}

// WithEndpoint labels outbound requests made with ctx for logs and metrics.
func WithEndpoint(ctx context.Context, endpoint string) context.Context {
	return context.WithValue(ctx, endpointKey{}, endpoint)
}

// Endpoint returns the label set by WithEndpoint, or "other".
func Endpoint(ctx context.Context) string {
	if endpoint, ok := ctx.Value(endpointKey{}).(string); ok && endpoint != "" {
		return endpoint
	}
	return "other"
}

// LoggingRoundTripper logs and measures outbound requests.
// Headers are never logged since they carry credentials.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	endpoint := Endpoint(req.Context())
	log := logger.Named("httpclient")

	log.Debug("HTTP Request Started",
		zap.String("endpoint", endpoint),
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
	)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		metrics.ObserveProcessorCall(endpoint, metrics.OutcomeTransportError, duration)
		log.Error("HTTP Request Failed",
			zap.String("endpoint", endpoint),
			zap.String("method", req.Method),
			zap.String("url", req.URL.Redacted()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	outcome := metrics.OutcomeSuccess
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = metrics.OutcomeHTTPError
	}
	metrics.ObserveProcessorCall(endpoint, outcome, duration)

	log.Debug("HTTP Request Completed",
		zap.String("endpoint", endpoint),
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
		zap.Int("status_code", resp.StatusCode),
		zap.String("debug_id", resp.Header.Get(DebugIDHeader)),
		zap.Duration("duration", duration),
	)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware that honors the egress proxy settings.
func NewClient(timeout time.Duration, settings proxy.Settings) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = settings.Func()

	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: transport,
		},
		Timeout: timeout,
	}
}

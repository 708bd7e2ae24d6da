package metrics

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"paypal-checkout/internal/core/logger"
)

const namespace = "paypal_checkout"

// Outcome labels for processor calls.
const (
	OutcomeSuccess        = "success"
	OutcomeHTTPError      = "http_error"
	OutcomeTransportError = "transport_error"
)

// Token cache result labels.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
	CacheEvict = "evict"
)

var (
	processorRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "processor_requests_total",
		Help:      "Outbound processor calls by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	processorDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "processor_request_duration_seconds",
		Help:      "Latency of outbound processor calls.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 8),
	}, []string{"endpoint"})

	tokenCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_cache_total",
		Help:      "Access token cache lookups and evictions by result.",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(processorRequests, processorDuration, tokenCache)
}

// ObserveProcessorCall records one outbound call.
func ObserveProcessorCall(endpoint, outcome string, duration time.Duration) {
	processorRequests.WithLabelValues(endpoint, outcome).Inc()
	processorDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// ObserveTokenCache records one token cache lookup.
func ObserveTokenCache(result string) {
	tokenCache.WithLabelValues(result).Inc()
}

type logFunc func(v ...interface{})

func (l logFunc) Println(v ...interface{}) {
	l(v...)
}

// Handler exposes the default gatherer as a fiber handler.
func Handler() fiber.Handler {
	sugar := logger.Named("metrics").Sugar()

	return adaptor.HTTPHandler(promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		ErrorLog:      logFunc(sugar.Warn),
		ErrorHandling: promhttp.HTTPErrorOnError,
	}))
}

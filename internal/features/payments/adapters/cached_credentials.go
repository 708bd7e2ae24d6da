package adapters

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"paypal-checkout/internal/core/cache"
	"paypal-checkout/internal/core/config"
	"paypal-checkout/internal/core/logger"
	"paypal-checkout/internal/core/metrics"
	"paypal-checkout/internal/features/payments/domain"
	"paypal-checkout/internal/features/payments/ports"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// CachedCredentials reuses access tokens until shortly before they expire.
// Cache failures degrade to a fresh fetch and never fail the caller.
type CachedCredentials struct {
	next  ports.CredentialProvider
	cache cache.Cache
	key   string
	skew  time.Duration
	log   *zap.Logger
}

// NewCachedCredentials wraps next with a cache keyed by the credential set.
func NewCachedCredentials(next ports.CredentialProvider, c cache.Cache, cfg config.PayPalConfig, skew time.Duration) *CachedCredentials {
	sum := sha256.Sum256([]byte(cfg.APIBase + "\x00" + cfg.ClientID + "\x00" + cfg.ClientSecret))

	return &CachedCredentials{
		next:  next,
		cache: c,
		key:   "token:" + hex.EncodeToString(sum[:]),
		skew:  skew,
		log:   logger.Named("token_cache"),
	}
}

type cachedToken struct {
	Value     string `json:"access_token"`
	TokenType string `json:"token_type"`
}

// AccessToken returns a cached token when one is present, otherwise fetches and stores a new one.
func (c *CachedCredentials) AccessToken(ctx context.Context) (*domain.AccessToken, error) {
	if token, ok := c.lookup(ctx); ok {
		return token, nil
	}

	token, err := c.next.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, token)
	return token, nil
}

// Invalidate drops the cached token. A failed delete is logged; the entry then lives until its TTL.
func (c *CachedCredentials) Invalidate(ctx context.Context) {
	metrics.ObserveTokenCache(metrics.CacheEvict)
	if err := c.cache.Delete(ctx, c.key); err != nil {
		c.log.Warn("Token cache eviction failed", zap.Error(err))
		return
	}
	c.log.Info("Evicted access token rejected by processor")
}

func (c *CachedCredentials) lookup(ctx context.Context) (*domain.AccessToken, bool) {
	data, err := c.cache.Get(ctx, c.key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			metrics.ObserveTokenCache(metrics.CacheMiss)
		} else {
			metrics.ObserveTokenCache(metrics.CacheError)
			c.log.Warn("Token cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var cached cachedToken
	if err := json.Unmarshal(data, &cached); err != nil || cached.Value == "" {
		metrics.ObserveTokenCache(metrics.CacheError)
		c.log.Warn("Discarding unreadable cached token", zap.Error(err))
		return nil, false
	}

	metrics.ObserveTokenCache(metrics.CacheHit)
	return &domain.AccessToken{Value: cached.Value, TokenType: cached.TokenType}, true
}

func (c *CachedCredentials) store(ctx context.Context, token *domain.AccessToken) {
	ttl := token.ExpiresIn - c.skew
	if ttl <= 0 {
		return
	}

	data, err := json.Marshal(cachedToken{Value: token.Value, TokenType: token.TokenType})
	if err != nil {
		c.log.Warn("Failed to encode token for cache", zap.Error(err))
		return
	}

	if err := c.cache.Set(ctx, c.key, data, ttl); err != nil {
		c.log.Warn("Token cache write failed", zap.Error(err))
	}
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paypal-checkout/internal/core/cache"
	"paypal-checkout/internal/core/config"
	"paypal-checkout/internal/core/httpclient"
	"paypal-checkout/internal/core/logger"
	"paypal-checkout/internal/core/proxy"
	"paypal-checkout/internal/core/server"
	diagdomain "paypal-checkout/internal/features/diagnostics/domain"
	diaghandler "paypal-checkout/internal/features/diagnostics/handler"
	paymentadapter "paypal-checkout/internal/features/payments/adapters"
	paymenthandler "paypal-checkout/internal/features/payments/handler"
	"paypal-checkout/internal/features/payments/ports"
	paymentservice "paypal-checkout/internal/features/payments/service"

	"go.uber.org/zap"
)

// @title PayPal Checkout API
// @version 1.0
// @description Creates, authorizes and captures PayPal payments on behalf of the checkout UI.
// @contact.name API Support
// @license.name MIT
// @host localhost:10000
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("token_cache", cfg.TokenCache.Enabled),
	)

	if report := diagdomain.NewEnvReport(cfg.PayPal); !report.Complete() {
		l.Warn("PayPal configuration incomplete, processor calls will fail", zap.Any("check_env", report))
	}

	egress := proxy.FromConfig(cfg.Proxy)
	if egress.HasProxy() {
		l.Info("Routing processor calls through egress proxy", zap.String("proxy", egress.HostPort()))
	}
	client := httpclient.NewClient(cfg.PayPal.HTTPTimeout, egress)

	// Initialize Credential Provider, optionally backed by the token cache
	var credentials ports.CredentialProvider = paymentadapter.NewPayPalCredentials(client, cfg.PayPal)
	if cfg.TokenCache.Enabled {
		redisCache, err := cache.NewRedisAdapter(cfg.TokenCache.RedisURL, logger.ServiceName+":")
		if err != nil {
			l.Fatal("Token cache setup failed", zap.Error(err))
		}
		defer redisCache.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(ctx); err != nil {
			l.Warn("Token cache unreachable, tokens will be fetched per request until it recovers", zap.Error(err))
		}
		cancel()

		credentials = paymentadapter.NewCachedCredentials(credentials, redisCache, cfg.PayPal, cfg.TokenCache.Skew)
	}

	// Initialize Payment Service & Handlers
	orders := paymentadapter.NewPayPalOrders(client, cfg.PayPal.APIBase)
	paymentSvc := paymentservice.NewPaymentService(credentials, orders)
	paymentHdl := paymenthandler.NewPaymentHandler(paymentSvc)
	diagHdl := diaghandler.NewDiagnosticsHandler(cfg.PayPal)

	srv := server.New(cfg)

	// Register Routes
	paymenthandler.RegisterRoutes(srv.App, paymentHdl)
	srv.App.Get("/check-env", diagHdl.CheckEnv)
	srv.ServeStatic()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		l.Info("Shutting down")
		if err := srv.Shutdown(); err != nil {
			l.Error("Shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}

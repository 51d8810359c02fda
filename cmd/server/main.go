package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nanobananapay/payment-gateway/internal/adapters/dummypay"
	"github.com/nanobananapay/payment-gateway/internal/adapters/mockpay"
	"github.com/nanobananapay/payment-gateway/internal/adapters/postgres"
	"github.com/nanobananapay/payment-gateway/internal/adapters/secrets"
	"github.com/nanobananapay/payment-gateway/internal/adapters/testpay"
	"github.com/nanobananapay/payment-gateway/internal/api/rest"
	"github.com/nanobananapay/payment-gateway/internal/config"
	"github.com/nanobananapay/payment-gateway/internal/domain/ports"
	"github.com/nanobananapay/payment-gateway/internal/services/ledger"
	"github.com/nanobananapay/payment-gateway/internal/services/payment"
	"github.com/nanobananapay/payment-gateway/pkg/logging"
	"github.com/nanobananapay/payment-gateway/pkg/middleware"
	"github.com/nanobananapay/payment-gateway/pkg/observability"
	"github.com/nanobananapay/payment-gateway/pkg/resilience"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logging.NewLogger(cfg.Logger.Level, cfg.Logger.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer zapLogger.Sync()
	logger := logging.NewZapAdapter(zapLogger)

	zapLogger.Info("Starting payment gateway",
		zap.String("env", cfg.Primary.Env),
	)

	ctx := context.Background()

	dbCfg := postgres.DefaultConfig(cfg.Database.URL)
	dbCfg.MaxConns = cfg.Database.MaxConns
	dbCfg.MinConns = cfg.Database.MinConns

	db, err := postgres.NewAdapter(ctx, dbCfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	secretManager, err := buildSecretManager(ctx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize secrets backend", zap.Error(err))
	}

	gateways, err := buildGateways(ctx, cfg, secretManager, logger, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to initialize payment gateways", zap.Error(err))
	}

	timeouts := resilience.DefaultTimeoutConfig()

	partnerRepo := postgres.NewPartnerRepository(db)
	feeScheduleRepo := postgres.NewFeeScheduleRepository(db)
	routeRepo := postgres.NewRouteRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)

	router := payment.NewRouter(routeRepo, gateways, timeouts, logger)
	authService := payment.NewService(partnerRepo, feeScheduleRepo, paymentRepo, router, logger)
	ledgerService := ledger.NewService(paymentRepo, logger)

	handler := rest.NewHandler(authService, ledgerService, logger)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	defer rateLimiter.Stop()

	var root http.Handler = mux
	root = rest.RequestTimeout(timeouts, root)
	root = rateLimiter.Handler(root)
	root = rest.Recovery(logger, root)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      root,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthChecker := observability.NewHealthChecker(db.GetDB())
	metricsServer := observability.StartMetricsServer(cfg.Metrics.Port, healthChecker, zapLogger)

	go func() {
		zapLogger.Info("HTTP server listening",
			zap.String("port", cfg.Server.Port),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to serve HTTP", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down servers...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("HTTP server shutdown error", zap.Error(err))
	}
	if err := observability.ShutdownMetricsServer(metricsServer); err != nil {
		zapLogger.Error("Metrics server shutdown error", zap.Error(err))
	}

	zapLogger.Info("Servers stopped")
}

func buildSecretManager(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ports.SecretManager, error) {
	switch cfg.Secrets.Backend {
	case "aws":
		awsCfg := secrets.DefaultAWSConfig(cfg.Secrets.AWSRegion)
		awsCfg.Profile = cfg.Secrets.AWSProfile
		awsCfg.Endpoint = cfg.Secrets.AWSEndpoint
		return secrets.NewAWSSecretsManager(ctx, awsCfg, logger)
	case "vault":
		vaultCfg := secrets.DefaultVaultConfig(cfg.Secrets.VaultAddress)
		vaultCfg.Token = cfg.Secrets.VaultToken
		vaultCfg.Namespace = cfg.Secrets.VaultNamespace
		if cfg.Secrets.VaultMount != "" {
			vaultCfg.MountPath = cfg.Secrets.VaultMount
		}
		return secrets.NewVaultSecretManager(vaultCfg, logger)
	case "local":
		return secrets.NewLocalSecretManager(cfg.Secrets.LocalPath, logger), nil
	default:
		return nil, fmt.Errorf("unknown secrets backend %q", cfg.Secrets.Backend)
	}
}

func buildGateways(
	ctx context.Context,
	cfg *config.Config,
	secretManager ports.SecretManager,
	logger ports.Logger,
	zapLogger *zap.Logger,
) ([]ports.PaymentGateway, error) {
	apiKey, err := secretManager.GetSecret(ctx, cfg.TestPay.APIKeySecret)
	if err != nil {
		return nil, fmt.Errorf("fetch TestPay API key: %w", err)
	}
	iv, err := secretManager.GetSecret(ctx, cfg.TestPay.IVSecret)
	if err != nil {
		return nil, fmt.Errorf("fetch TestPay IV: %w", err)
	}

	testPayClient, err := testpay.NewClientWithDefaults(testpay.Config{
		BaseURL:           cfg.TestPay.BaseURL,
		APIKey:            apiKey.Value,
		IV:                iv.Value,
		RequestsPerSecond: cfg.TestPay.RequestsPerSecond,
		Burst:             cfg.TestPay.Burst,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("initialize TestPay client: %w", err)
	}

	zapLogger.Info("Payment gateways registered",
		zap.Strings("gateways", []string{"MOCKPAY", "TESTPAY", "DUMMYPAY"}),
	)

	return []ports.PaymentGateway{
		mockpay.NewClient(),
		testPayClient,
		dummypay.NewClient(),
	}, nil
}

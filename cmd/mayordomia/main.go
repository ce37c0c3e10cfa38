package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mayordomia/mayordomia-go/internal/config"
	"github.com/mayordomia/mayordomia-go/internal/domain"
	"github.com/mayordomia/mayordomia-go/internal/finance"
	"github.com/mayordomia/mayordomia-go/internal/handler"
	"github.com/mayordomia/mayordomia-go/internal/infra/cache"
	"github.com/mayordomia/mayordomia-go/internal/infra/gemini"
	"github.com/mayordomia/mayordomia-go/internal/infra/observability"
	"github.com/mayordomia/mayordomia-go/internal/infra/resilience"
	"github.com/mayordomia/mayordomia-go/internal/infra/supabase"
	"github.com/mayordomia/mayordomia-go/internal/port"
	"github.com/mayordomia/mayordomia-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("expense_scope", cfg.ExpenseScope),
		zap.String("supabase_url", cfg.SupabaseURL),
		zap.String("gemini_model", cfg.GeminiModel),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "mayordomia")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	methodCache := cache.New[[]domain.PaymentMethod](cfg.CacheTTL)
	defer methodCache.Close()

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	storeBreaker := resilience.NewCircuitBreaker("supabase")
	aiBreaker := resilience.NewCircuitBreaker("gemini")
	aiBulkhead := resilience.NewBulkhead(cfg.MaxConcurrency)

	// --- Collaborators ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	store := supabase.NewClient(
		httpClient,
		cfg.SupabaseURL,
		cfg.SupabaseAnonKey,
		cfg.SupabaseServiceKey,
		storeBreaker,
		resilienceCfg,
		logger,
	)

	var advisor port.AdvisorCaller
	var comparer port.PriceComparer
	if cfg.GeminiAPIKey != "" {
		aiClient, err := gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, aiBreaker, aiBulkhead, logger)
		if err != nil {
			logger.Fatal("failed to init gemini client", zap.Error(err))
		}
		advisor = aiClient
		comparer = aiClient
		logger.Info("AI advisor enabled", zap.String("model", cfg.GeminiModel))
	} else {
		logger.Warn("GEMINI_API_KEY not set, advisor degrades to fallback responses")
	}

	// --- Services ---
	ledgerSvc := service.NewLedgerService(
		store,
		methodCache,
		finance.ExpenseScope(cfg.ExpenseScope),
		metrics,
		logger,
	)
	advisorSvc := service.NewAdvisorService(ledgerSvc, advisor, comparer, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(handler.RouterConfig{
		Ledger:         ledgerSvc,
		Advisor:        advisorSvc,
		Metrics:        metrics,
		Logger:         logger,
		JWTSecret:      cfg.SupabaseJWTSecret,
		AllowedOrigins: cfg.CORSOrigins,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	marketplaceserver "github.com/Apurer/brtx-marketplace/go"

	collectionsopensea "github.com/Apurer/brtx-marketplace/internal/domains/collections/adapters/external/opensea"
	collectionsapp "github.com/Apurer/brtx-marketplace/internal/domains/collections/application"
	marketworkflows "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/adapters/workflows"
	marketports "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/ports"
	slugsopensea "github.com/Apurer/brtx-marketplace/internal/domains/slugs/adapters/external/opensea"
	slugsmemory "github.com/Apurer/brtx-marketplace/internal/domains/slugs/adapters/memory"
	slugsobs "github.com/Apurer/brtx-marketplace/internal/domains/slugs/adapters/observability"
	slugspostgres "github.com/Apurer/brtx-marketplace/internal/domains/slugs/adapters/persistence/postgres"
	slugsapp "github.com/Apurer/brtx-marketplace/internal/domains/slugs/application"
	slugsports "github.com/Apurer/brtx-marketplace/internal/domains/slugs/ports"
	platformobservability "github.com/Apurer/brtx-marketplace/internal/platform/observability"
	platformpostgres "github.com/Apurer/brtx-marketplace/internal/platform/postgres"
	platformtemporal "github.com/Apurer/brtx-marketplace/internal/platform/temporal"
)

const serviceName = "brtx-marketplace-api"

// Run boots the marketplace HTTP API with observability, stores, chain access and workflows wired.
// It returns when ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	listingClient, err := NewOpenSeaClient(cfg, logger)
	if err != nil {
		return err
	}

	slugRepo, cleanupRepo := buildSlugRepository(ctx, cfg, logger)
	defer cleanupRepo()
	slugService := slugsobs.New(
		slugsapp.NewService(slugRepo, slugsopensea.NewListingSource(listingClient)),
		slugsobs.WithLogger(logger),
		slugsobs.WithTracer(instruments.Tracer("internal.slugs.application")),
		slugsobs.WithMeter(instruments.Meter("internal.slugs.application")),
	)
	collectionsService := collectionsapp.NewService(
		collectionsopensea.NewSource(listingClient),
		collectionsapp.WithDefaultWallet(cfg.StoreWallet),
	)

	var (
		marketService   marketports.Service
		marketWorkflows marketports.WorkflowOrchestrator
	)
	if service, cleanupChain, err := NewMarketplaceService(ctx, cfg, instruments); err != nil {
		logger.Warn("marketplace chain access unavailable, product and order routes answer 503", slog.String("error", err.Error()))
	} else {
		defer cleanupChain()
		marketService = service
		marketWorkflows = marketworkflows.NewInlineOrderWorkflows(service)
		temporalClient, err := platformtemporal.Dial(cfg.Temporal(), instruments, "temporal-client")
		if err != nil {
			logger.Warn("Temporal workflows unavailable, placing orders inline", slog.String("error", err.Error()))
		} else {
			defer temporalClient.Close()
			marketWorkflows = marketworkflows.NewTemporalOrderWorkflows(temporalClient)
			logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
		}
	}

	handlers := marketplaceserver.ApiHandleFunctions{
		MarketplaceAPI: marketplaceserver.NewMarketplaceAPI(marketService, marketWorkflows, cfg.TokenDecimals),
		SlugsAPI:       marketplaceserver.NewSlugsAPI(slugService),
		CollectionsAPI: marketplaceserver.NewCollectionsAPI(collectionsService),
	}

	// Middleware only applies to routes registered after it.
	engine := gin.Default()
	engine.Use(otelgin.Middleware(serviceName))
	router := marketplaceserver.NewRouterWithGinEngine(engine, handlers)
	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("marketplace API listening", slog.String("addr", addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("marketplace API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("marketplace API shutting down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func buildSlugRepository(ctx context.Context, cfg Config, logger *slog.Logger) (slugsports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectAndMigrate(ctx, cfg.PostgresDSN, logger)
	if db == nil {
		return slugsmemory.NewRepository(), cleanup
	}
	return slugspostgres.NewRepository(db), cleanup
}

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/brtx-marketplace/internal/app/api"
	orderactivities "github.com/Apurer/brtx-marketplace/internal/durable/temporal/activities/orders"
	orderworkflows "github.com/Apurer/brtx-marketplace/internal/durable/temporal/workflows/orders"
	platformobservability "github.com/Apurer/brtx-marketplace/internal/platform/observability"
	platformtemporal "github.com/Apurer/brtx-marketplace/internal/platform/temporal"
)

func main() {
	ctx := context.Background()
	const serviceName = "brtx-marketplace-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	// The worker has no inline fallback: without a node there is nothing to execute.
	marketService, cleanupChain, err := api.NewMarketplaceService(ctx, cfg, instruments)
	if err != nil {
		logger.Error("failed to configure marketplace chain access", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanupChain()
	orderActivities := orderactivities.NewActivities(marketService)

	temporalClient, err := platformtemporal.Dial(cfg.Temporal(), instruments, "temporal-worker")
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(orderActivities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderPlacementTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

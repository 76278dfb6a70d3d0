package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
	"github.com/Apurer/brtx-marketplace/internal/durable/temporal/sequences"
)

const (
	// OrderPlacementWorkflowName is the public identifier for registering the workflow.
	OrderPlacementWorkflowName = "orders.workflows.Placement"
	// OrderPlacementTaskQueue is the queue consumed by the worker processing order workflows.
	OrderPlacementTaskQueue = "ORDER_PLACEMENT"
)

// OrderPlacementWorkflowInput captures the purchase intent.
type OrderPlacementWorkflowInput struct {
	Request domain.OrderRequest
	TraceID string
}

// OrderPlacementWorkflow orchestrates the activity that approves and buys a product.
func OrderPlacementWorkflow(ctx workflow.Context, input OrderPlacementWorkflowInput) (*domain.OrderResult, error) {
	logger := workflow.GetLogger(ctx)
	productID := input.Request.ProductID
	logger.Info("OrderPlacementWorkflow started", withTraceID(input.TraceID, "productId", productID)...)
	result, err := sequences.RunOrderPlacementSequence(ctx, input.Request)
	if err != nil {
		logger.Error("OrderPlacementWorkflow failed", withTraceID(input.TraceID, "productId", productID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderPlacementWorkflow completed", withTraceID(input.TraceID, "productId", productID, "txHash", result.TransactionHash)...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}

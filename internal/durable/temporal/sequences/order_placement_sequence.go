package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
	orderactivities "github.com/Apurer/brtx-marketplace/internal/durable/temporal/activities/orders"
)

// orderTimeout bounds approval plus purchase, both waiting for a mined receipt. Temporal requires
// it; a transaction submitted before it fires can still be mined afterwards.
const orderTimeout = 10 * time.Minute

// RunOrderPlacementSequence executes the purchase activity exactly once.
func RunOrderPlacementSequence(ctx workflow.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "productId", req.ProductID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: orderTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var result domain.OrderResult
	if err := workflow.ExecuteActivity(ctx, orderactivities.PlaceOrderActivityName, req).Get(ctx, &result); err != nil {
		logger.Error("order placement sequence failed", "productId", req.ProductID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence completed", "productId", req.ProductID, "txHash", result.TransactionHash)
	return &result, nil
}

package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/application"
	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/ports"
)

// PlaceOrderActivityName runs the order orchestrator once.
const PlaceOrderActivityName = "orders.activities.PlaceOrder"

// Activities groups activities that operate on the marketplace bounded context.
type Activities struct {
	service ports.Service
}

// NewActivities wires the marketplace service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder approves (when needed) and buys the product. Failures are non-retryable because a
// submitted transaction cannot be withdrawn.
func (a *Activities) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized", "productId", req.ProductID)
		return nil, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "productId", req.ProductID, "prepaid", req.Prepaid)
	result, err := a.service.PlaceOrder(ctx, req)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "productId", req.ProductID, "error", err)
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), errorType(err), err)
	}
	logger.Info("PlaceOrder activity completed", "productId", req.ProductID, "txHash", result.TransactionHash)
	return result, nil
}

var errorTypes = []struct {
	name string
	err  error
}{
	// Same precedence as the HTTP problem mappers.
	{"InvalidDescriptor", ports.ErrInvalidDescriptor},
	{"InvalidInput", application.ErrInvalidInput},
	{"InvalidAddress", ports.ErrInvalidAddress},
	{"ProductNotFound", ports.ErrProductNotFound},
	{"SignerUnavailable", ports.ErrSignerUnavailable},
	{"RemoteUnavailable", ports.ErrRemoteUnavailable},
	{"ApprovalFailed", application.ErrApprovalFailed},
	{"PurchaseFailed", application.ErrPurchaseFailed},
}

func errorType(err error) string {
	for _, t := range errorTypes {
		if errors.Is(err, t.err) {
			return t.name
		}
	}
	return "OrderFailed"
}

// RestoreError maps an error returned by a workflow run back onto the marketplace sentinel it
// was raised with, keeping the remote message.
func RestoreError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	for _, t := range errorTypes {
		if appErr.Type() == t.name {
			return &restoredError{sentinel: t.err, msg: appErr.Error()}
		}
	}
	return err
}

type restoredError struct {
	sentinel error
	msg      string
}

func (e *restoredError) Error() string { return e.msg }
func (e *restoredError) Unwrap() error { return e.sentinel }

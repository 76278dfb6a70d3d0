package orders

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/application"
	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/ports"
	orderactivities "github.com/Apurer/brtx-marketplace/internal/durable/temporal/activities/orders"
)

type stubService struct {
	ports.Service
	calls  int
	result *domain.OrderResult
	err    error
}

func (s *stubService) PlaceOrder(_ context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := *s.result
	out.ProductID = req.ProductID
	return &out, nil
}

func newEnv(t *testing.T, svc ports.Service) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(OrderPlacementWorkflow, workflow.RegisterOptions{Name: OrderPlacementWorkflowName})
	acts := orderactivities.NewActivities(svc)
	env.RegisterActivityWithOptions(acts.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	return env
}

func TestOrderPlacementWorkflow_Completes(t *testing.T) {
	svc := &stubService{result: &domain.OrderResult{Success: true, TransactionHash: "0xabc", Amount: big.NewInt(1000)}}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{
		Request: domain.OrderRequest{ProductID: 1, Prepaid: true},
		TraceID: "trace-1",
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var result domain.OrderResult
	require.NoError(t, env.GetWorkflowResult(&result))
	require.True(t, result.Success)
	require.Equal(t, uint64(1), result.ProductID)
	require.Equal(t, "0xabc", result.TransactionHash)
	require.Equal(t, "1000", result.Amount.String())
}

func TestOrderPlacementWorkflow_DoesNotRetry(t *testing.T) {
	svc := &stubService{err: fmt.Errorf("%w: insufficient balance", application.ErrPurchaseFailed)}
	env := newEnv(t, svc)

	env.ExecuteWorkflow(OrderPlacementWorkflow, OrderPlacementWorkflowInput{
		Request: domain.OrderRequest{ProductID: 2},
	})
	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	require.Equal(t, 1, svc.calls)
	require.ErrorIs(t, orderactivities.RestoreError(err), application.ErrPurchaseFailed)
}

func TestRestoreError_PassesThroughPlainErrors(t *testing.T) {
	plain := errors.New("boom")
	require.Same(t, plain, orderactivities.RestoreError(plain))
	require.NoError(t, orderactivities.RestoreError(nil))
}

package marketplaceserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	collectionsapp "github.com/Apurer/brtx-marketplace/internal/domains/collections/application"
	collectionsports "github.com/Apurer/brtx-marketplace/internal/domains/collections/ports"
	marketapp "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/application"
	marketports "github.com/Apurer/brtx-marketplace/internal/domains/marketplace/ports"
	slugsapp "github.com/Apurer/brtx-marketplace/internal/domains/slugs/application"
	slugsdomain "github.com/Apurer/brtx-marketplace/internal/domains/slugs/domain"
	slugsports "github.com/Apurer/brtx-marketplace/internal/domains/slugs/ports"
	apierrors "github.com/Apurer/brtx-marketplace/internal/shared/errors"
)

// responder maps domain errors to problems. The first matching mapper wins, so a purchase that
// failed because the node was unreachable reports 502 rather than 409.
var responder = apierrors.NewResponder(
	misconfigurationMapper,
	invalidInputMapper,
	notFoundMapper,
	signerMapper,
	remoteMapper,
	conflictMapper,
)

// misconfigurationMapper keeps a bad CONTRACTS_FILE from being reported as the caller's mistake.
func misconfigurationMapper(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, marketports.ErrInvalidDescriptor) {
		return apierrors.ErrInternal.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func invalidInputMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, marketapp.ErrInvalidInput),
		errors.Is(err, marketports.ErrInvalidAddress),
		errors.Is(err, slugsapp.ErrInvalidInput),
		errors.Is(err, slugsdomain.ErrInvalidSlug),
		errors.Is(err, collectionsapp.ErrInvalidInput):
		return apierrors.ErrBadRequest.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func notFoundMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, marketports.ErrProductNotFound):
		return apierrors.NewNotFoundProblem("product", err), true
	case errors.Is(err, slugsports.ErrNotFound):
		return apierrors.NewNotFoundProblem("wallet", err), true
	}
	return apierrors.ProblemDetail{}, false
}

func signerMapper(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, marketports.ErrSignerUnavailable) {
		return apierrors.ErrUnavailable.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func remoteMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, marketports.ErrRemoteUnavailable),
		errors.Is(err, slugsports.ErrRemoteUnavailable),
		errors.Is(err, collectionsports.ErrRemoteUnavailable):
		return apierrors.ErrBadGateway.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func conflictMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, marketapp.ErrApprovalFailed):
		return apierrors.NewStepProblem("approve", err), true
	case errors.Is(err, marketapp.ErrPurchaseFailed):
		return apierrors.NewStepProblem("buyProduct", err), true
	case errors.Is(err, marketapp.ErrTransferFailed):
		return apierrors.NewStepProblem("NameTransfer", err), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondServiceError classifies a service failure.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

// respondError is used where the transport layer itself decides the status.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest
	case http.StatusMethodNotAllowed:
		problem = apierrors.ErrMethodNotAllowed
	case http.StatusServiceUnavailable:
		problem = apierrors.ErrUnavailable
	default:
		problem = apierrors.ErrInternal
	}
	responder.Respond(c, problem.WithDetail(err.Error()))
}

// Package errors renders RFC 7807 problem documents for the marketplace API.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail is an RFC 7807 problem document.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Extensions carry the resource type of a 404 or the failed step of a 409.
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy carrying detail.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with one more extension member.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		ext[k] = v
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

const (
	TypeBadRequest  = "/problems/bad-request"
	TypeNotFound    = "/problems/not-found"
	TypeNotAllowed  = "/problems/method-not-allowed"
	TypeConflict    = "/problems/conflict"
	TypeInternal    = "/problems/internal-error"
	TypeBadGateway  = "/problems/bad-gateway"
	TypeUnavailable = "/problems/service-unavailable"
)

var (
	// ErrBadRequest covers malformed bodies and invalid slugs, addresses and ids from the caller.
	ErrBadRequest = ProblemDetail{Type: TypeBadRequest, Title: "Bad Request", Status: http.StatusBadRequest}
	// ErrNotFound covers unknown products and wallets.
	ErrNotFound = ProblemDetail{Type: TypeNotFound, Title: "Resource Not Found", Status: http.StatusNotFound}
	// ErrMethodNotAllowed is sent when the path exists for other methods only.
	ErrMethodNotAllowed = ProblemDetail{Type: TypeNotAllowed, Title: "Method Not Allowed", Status: http.StatusMethodNotAllowed}
	// ErrConflict is sent when an on-chain step was rejected.
	ErrConflict = ProblemDetail{Type: TypeConflict, Title: "Conflict", Status: http.StatusConflict}
	// ErrInternal covers unclassified failures and server misconfiguration.
	ErrInternal = ProblemDetail{Type: TypeInternal, Title: "Internal Server Error", Status: http.StatusInternalServerError}
	// ErrBadGateway is sent when the chain node, directory store or listing service failed.
	ErrBadGateway = ProblemDetail{Type: TypeBadGateway, Title: "Bad Gateway", Status: http.StatusBadGateway}
	// ErrUnavailable is sent when a dependency the request needs is not configured.
	ErrUnavailable = ProblemDetail{Type: TypeUnavailable, Title: "Service Unavailable", Status: http.StatusServiceUnavailable}
)

// NewNotFoundProblem reports a missing resource of the given type.
func NewNotFoundProblem(resourceType string, err error) ProblemDetail {
	return ErrNotFound.WithDetail(err.Error()).WithExtension("resourceType", resourceType)
}

// NewStepProblem reports an on-chain step that was submitted or attempted and failed.
func NewStepProblem(step string, err error) ProblemDetail {
	return ErrConflict.WithDetail(err.Error()).WithExtension("step", step)
}

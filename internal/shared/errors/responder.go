package errors

import (
	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Mapper recognises a domain error and describes it as a problem.
type Mapper func(err error) (ProblemDetail, bool)

// Responder writes problem documents. Mappers are tried in order and the first match wins;
// anything unmatched is reported as an internal error.
type Responder struct {
	mappers []Mapper
}

// NewResponder builds a responder over the given mappers.
func NewResponder(mappers ...Mapper) *Responder {
	return &Responder{mappers: mappers}
}

// Problem classifies err without writing anything.
func (r *Responder) Problem(err error) ProblemDetail {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			return problem
		}
	}
	return ErrInternal.WithDetail(err.Error())
}

// Respond writes problem, defaulting its instance to the request path.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError classifies err and writes the resulting problem.
func (r *Responder) RespondError(c *gin.Context, err error) {
	r.Respond(c, r.Problem(err))
}

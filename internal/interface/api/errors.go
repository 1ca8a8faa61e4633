package api

import (
	"errors"
	"net/http"

	"workshop-service/internal/domain/repository"

	"github.com/gin-gonic/gin"
)

// Error codes of the JSON error envelope
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeNotFound     = "NOT_FOUND"
	CodeUnavailable  = "UNAVAILABLE"
	CodeInternal     = "INTERNAL"
)

// ErrorBody is the error part of the envelope
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// ErrorResponse is the envelope returned for every failed request
type ErrorResponse struct {
	OK    bool      `json:"ok"`
	Error ErrorBody `json:"error"`
}

// AbortWithError writes the envelope and stops the handler chain
func AbortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:      code,
			Message:   message,
			Retryable: code == CodeUnavailable,
		},
	})
}

// writeError maps domain errors onto HTTP statuses
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		AbortWithError(c, http.StatusNotFound, CodeNotFound, "Data not found")
	case errors.Is(err, repository.ErrStoreUnavailable):
		AbortWithError(c, http.StatusServiceUnavailable, CodeUnavailable, err.Error())
	default:
		AbortWithError(c, http.StatusInternalServerError, CodeInternal, err.Error())
	}
}

package httpserver

import (
	"errors"
	"net/http"
	"time"

	"credit-ledger/internal/domain"
	"github.com/gin-gonic/gin"
)

// Failure kinds reported in the error payload's exception field.
const (
	exceptionValidation    = "ValidationError"
	exceptionNotFound      = "NotFoundError"
	exceptionConflict      = "ConflictError"
	exceptionAuthorization = "AuthorizationMismatchError"
	exceptionInternal      = "InternalError"
)

const badRequestTitle = "Bad Request! Consult the documentation"

// errorResponse is the uniform error payload. Every failure, field-level or
// operation-level, goes out in this shape.
type errorResponse struct {
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Exception string    `json:"exception"`
	Details   []string  `json:"details"`
}

func writeError(c *gin.Context, status int, exception string, details []string) {
	title := badRequestTitle
	if status >= http.StatusInternalServerError {
		title = "Internal Server Error"
	}
	c.JSON(status, errorResponse{
		Title:     title,
		Timestamp: time.Now().UTC(),
		Status:    status,
		Exception: exception,
		Details:   details,
	})
}

func writeValidationError(c *gin.Context, details []string) {
	writeError(c, http.StatusBadRequest, exceptionValidation, details)
}

// writeDomainError maps ledger/directory failures onto the payload exactly
// once, here. Everything the domain raises stays in the 400 family; only
// unclassified errors become a 500.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(c, http.StatusBadRequest, exceptionNotFound, []string{err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(c, http.StatusBadRequest, exceptionConflict, []string{err.Error()})
	case errors.Is(err, domain.ErrOwnership):
		writeError(c, http.StatusBadRequest, exceptionAuthorization, []string{err.Error()})
	case errors.Is(err, domain.ErrInvalid):
		writeValidationError(c, []string{err.Error()})
	default:
		writeError(c, http.StatusInternalServerError, exceptionInternal, []string{"unexpected error"})
	}
}

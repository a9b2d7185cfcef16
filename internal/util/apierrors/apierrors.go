package apierrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ValidationError covers bad or missing input parameters.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// AuthError covers a missing or invalid session or API key.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

func NewAuthError(message string) *AuthError {
	return &AuthError{Message: message}
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// QuotaExceededError carries current usage so the 429 body can tell
// the caller where they stand.
type QuotaExceededError struct {
	Used  int64
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded: %d of %d requests used in the last 30 days", e.Used, e.Limit)
}

func NewQuotaExceededError(used int64, limit int) *QuotaExceededError {
	return &QuotaExceededError{Used: used, Limit: limit}
}

// InternalError wraps an unexpected failure. The wrapped cause is for
// logs only and never reaches the response body.
type InternalError struct {
	Cause error
}

func (e *InternalError) Error() string {
	if e.Cause == nil {
		return "internal server error"
	}
	return e.Cause.Error()
}

func (e *InternalError) Unwrap() error { return e.Cause }

func NewInternalError(cause error) *InternalError {
	return &InternalError{Cause: cause}
}

// Respond maps an error from the taxonomy onto the JSON error
// convention: {"error": "..."} with the matching HTTP status.
// Unrecognized errors are treated as internal and answered with a
// generic message.
func Respond(ctx *gin.Context, err error) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		return
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Message})
		return
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Message})
		return
	}

	var quotaErr *QuotaExceededError
	if errors.As(err, &quotaErr) {
		ctx.JSON(http.StatusTooManyRequests, gin.H{"error": quotaErr.Error()})
		return
	}

	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

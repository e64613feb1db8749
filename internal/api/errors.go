package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Shared response messages
const (
	MsgBodyEmpty         = "Body empty"
	MsgMissingAttributes = "One or more required attributes are missing or empty"
	MsgInvalidRequest    = "Invalid request"
	MsgInternal          = "Internal Server Error"
)

// APIError is a failure that maps onto a JSON response.
// Key is the JSON field carrying Message: "error" for most failures, "msg" for not found.
type APIError struct {
	Status  int
	Key     string
	Message string
}

func (e *APIError) Error() string { return e.Message }

// ValidationError reports malformed or missing input
func ValidationError(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Key: "error", Message: msg}
}

// AuthError reports refused credentials or access
func AuthError(status int, msg string) *APIError {
	return &APIError{Status: status, Key: "error", Message: msg}
}

// ConflictError reports a uniqueness violation. Existing clients expect 500 here, not 409.
func ConflictError(msg string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Key: "error", Message: msg}
}

// NotFoundError reports that no row matched
func NotFoundError(msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Key: "msg", Message: msg}
}

// InternalError hides an unexpected failure behind a generic message
func InternalError() *APIError {
	return &APIError{Status: http.StatusInternalServerError, Key: "error", Message: MsgInternal}
}

// respondError writes err as JSON. Anything that is not an *APIError becomes an InternalError.
func respondError(c *gin.Context, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(), // Requested route
			"error": err.Error(),  // Underlying failure
		}).Error("Unhandled error")
		apiErr = InternalError()
	}
	c.AbortWithStatusJSON(apiErr.Status, gin.H{apiErr.Key: apiErr.Message})
}

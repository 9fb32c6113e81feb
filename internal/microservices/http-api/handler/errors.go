package handler

import (
	"errors"
	"net/http"

	"yamdb/internal/logger"
	"yamdb/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	var ce *service.ConflictError

	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: ve.Fields})
	case errors.As(err, &ce):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  ce.Message,
			Fields: map[string][]string{ce.Field: {ce.Message}},
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:  err.Error(),
			Fields: map[string][]string{"confirmation_code": {"Invalid or expired confirmation code."}},
		})
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidToken):
		c.Header("WWW-Authenticate", `Bearer realm="api"`)
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: service.ErrUnauthenticated.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrMailDelivery):
		logger.Get().WithError(err).Error("confirmation mail not sent")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: service.ErrMailDelivery.Error()})
	default:
		logger.Get().WithError(err).WithField("path", c.FullPath()).Error("unhandled error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{Error: "method " + c.Request.Method + " not allowed"})
}

func routeNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
}

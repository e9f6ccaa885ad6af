package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/estate-service/internal/repository"
	"github.com/yourusername/estate-service/internal/services"
	"github.com/yourusername/estate-service/pkg/response"
)

// respondError maps service and repository errors onto the response
// envelope. Unknown errors are 500 and attached to the context for
// ErrorLogger.
func respondError(c *gin.Context, err error) {
	var verr *services.ValidationError
	var perr *services.PartialApplyError

	switch {
	case errors.As(err, &verr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", verr.Fields)
	case errors.As(err, &perr):
		_ = c.Error(err)
		response.ErrorWithDetails(c, http.StatusInternalServerError, "PARTIALLY_APPLIED",
			"The change was only partly saved. Please check the record before retrying.", gin.H{"applied": perr.Applied})
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, repository.ErrForbidden), errors.Is(err, services.ErrInsufficientRole):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	case errors.Is(err, services.ErrSelfAction):
		response.Error(c, http.StatusForbidden, "SELF_ACTION", err.Error())
	case errors.Is(err, services.ErrDuplicateRequest):
		response.Error(c, http.StatusConflict, "DUPLICATE_REQUEST", "You already have a pending request for this role")
	case errors.Is(err, services.ErrNotPending):
		response.Error(c, http.StatusConflict, "NOT_PENDING", err.Error())
	case errors.Is(err, services.ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "INVALID_ROLE", err.Error())
	case errors.Is(err, services.ErrInvalidToken):
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Sign-in failed")
	case errors.Is(err, services.ErrSessionNotFound):
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, context.Canceled):
		response.Error(c, 499, "CANCELED", "Request canceled")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong. Please try again.")
	}
}

func bindError(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err.Error())
}

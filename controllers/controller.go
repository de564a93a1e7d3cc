package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lehar2932-art/tiffin-testing/pkg/resp"
	"github.com/lehar2932-art/tiffin-testing/services"
)

// fail maps service-layer sentinel errors onto the response envelope.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, "forbidden")
	case errors.Is(err, services.ErrValidation):
		resp.BadRequest(c, "validation failed")
	case errors.Is(err, services.ErrInvalidTransition):
		resp.Forbidden(c, "status transition not allowed")
	case errors.Is(err, services.ErrPaymentSignature):
		resp.BadRequest(c, "invalid payment signature")
	case errors.Is(err, services.ErrConflict):
		resp.BadRequest(c, "conflicting update, please retry")
	case errors.Is(err, services.ErrAlreadyReviewed):
		resp.BadRequest(c, "order already reviewed")
	case errors.Is(err, services.ErrEmailTaken):
		resp.BadRequest(c, "email already registered")
	case errors.Is(err, services.ErrInvalidCredentials):
		resp.Unauthorized(c, "invalid credentials")
	case errors.Is(err, services.ErrAccountDisabled):
		resp.Forbidden(c, "account is disabled")
	default:
		resp.ServerError(c, err)
	}
}

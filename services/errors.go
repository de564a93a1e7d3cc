package services

import "errors"

// Sentinel errors mapped to HTTP status codes by the controllers.
var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPaymentSignature  = errors.New("invalid payment signature")
	ErrConflict          = errors.New("conflict")
)

package service

import "errors"

// Sentinel errors the HTTP layer maps onto status codes. Services wrap
// them with context via fmt.Errorf("...: %w", Err...).
var (
	ErrValidation    = errors.New("validation")              // 400
	ErrUnauthorized  = errors.New("unauthorized")            // 401
	ErrForbidden     = errors.New("forbidden")               // 403
	ErrNotFound      = errors.New("not found")               // 404
	ErrConflict      = errors.New("conflict")                // 409
	ErrPrecondition  = errors.New("precondition failed")     // 412
	ErrMisconfigured = errors.New("server misconfiguration") // 500
)

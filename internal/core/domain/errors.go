package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrJobNotFound        = errors.New("job not found")
	ErrSalespersonUnknown = errors.New("salesperson not found")
	ErrInvalidStatus      = errors.New("invalid job status")

	// ErrGatewayNotConfigured signals a missing or placeholder gateway URL.
	// Fatal at startup: nothing works without a gateway address.
	ErrGatewayNotConfigured = errors.New("gateway url not configured")

	// ErrGatewayUnavailable signals that the initial snapshot load failed.
	// The dashboard stays blocked until a load succeeds.
	ErrGatewayUnavailable = errors.New("gateway unavailable")
)

// ValidationError is raised by client-side validation before any gateway
// request is issued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// GatewayError carries the gateway-provided failure message for a request
// the gateway answered with a non-success status.
type GatewayError struct {
	Action  string
	Message string
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return "gateway rejected " + e.Action
	}
	return e.Message
}

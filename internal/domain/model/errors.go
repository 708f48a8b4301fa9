package model

import "errors"

// ErrRateLimited means the upstream request budget is exhausted
var ErrRateLimited = errors.New("upstream request budget exhausted")

// UpstreamError reports any failure talking to or interpreting the weather provider.
// Message is safe to return to API clients.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError creates an UpstreamError with an optional cause
func NewUpstreamError(message string, err error) *UpstreamError {
	return &UpstreamError{Message: message, Err: err}
}

// ValidationError reports an invalid request input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ErrorResponse is the body of every non 2xx answer
type ErrorResponse struct {
	Error string `json:"error" example:"Latitude must be between -90 and 90."`
}

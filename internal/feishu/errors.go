package feishu

import "errors"

// ValidationError reports caller input that failed validation, or a 4xx
// response from the provider's HTTP layer. Validation errors are never
// retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NetworkError reports a transport failure, a retryable HTTP status, or an
// unparsable success body. RateLimited marks 429 responses, which double the
// backoff before the next attempt.
type NetworkError struct {
	Message     string
	RateLimited bool
	Err         error
}

func (e *NetworkError) Error() string { return e.Message }

// Unwrap returns the underlying cause, if any.
func (e *NetworkError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// IsNetwork reports whether err is a network error.
func IsNetwork(err error) bool {
	var nerr *NetworkError
	return errors.As(err, &nerr)
}

// IsRateLimited reports whether err is a network error caused by provider
// rate limiting.
func IsRateLimited(err error) bool {
	var nerr *NetworkError
	return errors.As(err, &nerr) && nerr.RateLimited
}

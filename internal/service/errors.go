package service

import "errors"

// Error taxonomy shared across services. Handlers map these to HTTP
// statuses with errors.Is; internal detail stays out of responses.
var (
	// ErrUpstream covers network failures, non-2xx statuses and
	// undecodable bodies from the AI completion endpoints.
	ErrUpstream = errors.New("upstream service error")

	// ErrMalformedResponse means a completion body that could not be
	// parsed into a nutrition estimate.
	ErrMalformedResponse = errors.New("malformed model response")

	// ErrValidation means user input failed a business rule.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means a referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrStore wraps persistence failures.
	ErrStore = errors.New("storage failure")
)

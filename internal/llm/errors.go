package llm

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a generation call produced no usable text.
type FailureKind string

const (
	FailureServiceError     FailureKind = "SERVICE_ERROR"
	FailureEmptyResponse    FailureKind = "EMPTY_RESPONSE"
	FailureTransportFailure FailureKind = "TRANSPORT_FAILURE"
)

var (
	// ErrServiceError indicates the endpoint answered with a non-2xx status.
	ErrServiceError = errors.New("generation service returned an error status")

	// ErrEmptyResponse indicates a 2xx envelope without usable text.
	ErrEmptyResponse = errors.New("generation service returned no content")

	// ErrTransportFailure indicates the call never produced a readable
	// envelope: connection refused, timeout, cancelled, or malformed JSON.
	ErrTransportFailure = errors.New("generation service transport failure")

	// ErrGenerationDisabled is wrapped in a transport failure when the
	// provider is configured off.
	ErrGenerationDisabled = errors.New("generation disabled")

	// ErrRateLimited is wrapped in a transport failure when the limiter
	// refuses a call before it reaches the backend.
	ErrRateLimited = errors.New("rate limit wait abandoned")
)

// GenerationError is the only error type a Generator returns.
type GenerationError struct {
	Kind       FailureKind
	StatusCode int    // set for FailureServiceError
	Body       string // raw response body, for diagnostics
	Err        error
}

func (e *GenerationError) Error() string {
	switch e.Kind {
	case FailureServiceError:
		return fmt.Sprintf("generation service error: status %d: %s", e.StatusCode, e.Body)
	case FailureEmptyResponse:
		if e.Err != nil {
			return "generation empty response: " + e.Err.Error()
		}
		return "generation empty response"
	default:
		if e.Err != nil {
			return "generation transport failure: " + e.Err.Error()
		}
		return "generation transport failure"
	}
}

// Unwrap exposes both the kind sentinel and the underlying cause so that
// errors.Is works against either.
func (e *GenerationError) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func (e *GenerationError) sentinel() error {
	switch e.Kind {
	case FailureServiceError:
		return ErrServiceError
	case FailureEmptyResponse:
		return ErrEmptyResponse
	default:
		return ErrTransportFailure
	}
}

func serviceError(status int, body string) *GenerationError {
	return &GenerationError{Kind: FailureServiceError, StatusCode: status, Body: body}
}

func emptyResponse(reason string) *GenerationError {
	return &GenerationError{Kind: FailureEmptyResponse, Err: errors.New(reason)}
}

func transportFailure(err error) *GenerationError {
	return &GenerationError{Kind: FailureTransportFailure, Err: err}
}

// AsGenerationError normalizes any error into a *GenerationError. Errors of
// foreign types count as transport failures. Returns nil for nil.
func AsGenerationError(err error) *GenerationError {
	if err == nil {
		return nil
	}
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge
	}
	return transportFailure(err)
}

// FailureKindOf returns the failure kind of err, or "" for nil.
func FailureKindOf(err error) FailureKind {
	if ge := AsGenerationError(err); ge != nil {
		return ge.Kind
	}
	return ""
}

package adsearch

import (
	"fmt"
	"strings"

	"github.com/adarchive/adlib-gateway/internal/constants"
)

// ValidationError is a client input error, surfaced as HTTP 400. Code is
// one of the constants.Code* validation codes.
type ValidationError struct {
	Code    int
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func errMissingParameter(name string) *ValidationError {
	return &ValidationError{
		Code:    constants.CodeMissingParameter,
		message: fmt.Sprintf("Missing required parameter: %s", name),
	}
}

func errMissingSearchCriterion() *ValidationError {
	return &ValidationError{
		Code:    constants.CodeMissingSearchCriterion,
		message: constants.GetErrorMessage(constants.CodeMissingSearchCriterion),
	}
}

func errInvalidFields(tokens []string) *ValidationError {
	return &ValidationError{
		Code:    constants.CodeInvalidFields,
		message: fmt.Sprintf("Invalid fields: %s", strings.Join(tokens, ", ")),
	}
}

func errInvalidCountries(tokens []string) *ValidationError {
	return &ValidationError{
		Code:    constants.CodeInvalidCountries,
		message: fmt.Sprintf("Invalid/unsupported country codes: %s", strings.Join(tokens, ", ")),
	}
}

// UpstreamError wraps a failure surfaced by the archive stream. The
// underlying message is shown to the caller with a 500 status.
type UpstreamError struct {
	cause error
}

func (e *UpstreamError) Error() string {
	return e.cause.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.cause
}

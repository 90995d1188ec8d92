// Package apperr is the gateway's error taxonomy. Every handler failure is
// normalized into an *Error before it is rendered to the caller.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies failures.
type Kind string

const (
	KindConfig     Kind = "CONFIGURATION"
	KindValidation Kind = "VALIDATION"
	KindUpstream   Kind = "UPSTREAM"
	KindParse      Kind = "PARSE"
	KindInternal   Kind = "INTERNAL"
)

// Error is a failure that knows its HTTP status and caller-facing message.
// Err carries the cause for logs and is never rendered.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s[%d]: %s: %v", e.Kind, e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%s[%d]: %s", e.Kind, e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NotConfigured reports a missing provider credential.
func NotConfigured(provider string) *Error {
	return &Error{
		Kind:    KindConfig,
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("%s API key not configured", provider),
	}
}

// Unavailable is the 503 flavour of NotConfigured.
func Unavailable(message string) *Error {
	return &Error{
		Kind:    KindConfig,
		Status:  http.StatusServiceUnavailable,
		Message: message,
	}
}

func Validation(message string) *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: message,
	}
}

// Upstream reports a non-2xx answer from a provider. The caller sees 500;
// the upstream status is kept in Details.
func Upstream(provider string, status int, details string) *Error {
	return &Error{
		Kind:    KindUpstream,
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("Failed to fetch data from %s", provider),
		Details: details,
		Err:     fmt.Errorf("%s returned status %d", provider, status),
	}
}

// Transport wraps a network failure talking to a provider.
func Transport(provider string, err error) *Error {
	return &Error{
		Kind:    KindUpstream,
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("Failed to reach %s", provider),
		Err:     err,
	}
}

// Generation wraps a failed call to a generative-AI provider.
func Generation(provider string, err error) *Error {
	return &Error{
		Kind:    KindUpstream,
		Status:  http.StatusInternalServerError,
		Message: "AI generation failed",
		Details: provider,
		Err:     err,
	}
}

func Parse(what string, err error) *Error {
	return &Error{
		Kind:    KindParse,
		Status:  http.StatusInternalServerError,
		Message: fmt.Sprintf("Failed to parse %s", what),
		Err:     err,
	}
}

func Internal(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		Err:     err,
	}
}

// PlanLimit is the scheduling service's 402.
func PlanLimit(details string) *Error {
	return &Error{
		Kind:    KindUpstream,
		Status:  http.StatusPaymentRequired,
		Message: "Plan limit exceeded: upgrade your scheduling plan to create more posts",
		Details: details,
	}
}

// From normalizes any error into an *Error.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// IsKind reports whether err normalizes to the given kind.
func IsKind(err error, k Kind) bool {
	return err != nil && From(err).Kind == k
}

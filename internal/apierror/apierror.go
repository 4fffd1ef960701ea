// Package apierror provides the error envelopes shared by every service.
// All failures surfaced to the operator go through this package so that
// validation problems, transport failures and backend-reported business
// errors render consistently. Nothing here is ever fatal to the
// process.
package apierror

import (
	"errors"
	"fmt"
	"strings"
)

// FieldError mirrors the backend's `errors { field message }` payload
// and is also used for local pre-network validation failures.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Kind classifies a failure per the handling rules: validation errors
// never reach the network, transport errors are connectivity problems,
// GraphQL errors are top-level errors in the response envelope, and
// business errors are success:false results.
type Kind int

const (
	KindValidation Kind = iota
	KindTransport
	KindGraphQL
	KindBusiness
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindGraphQL:
		return "graphql"
	case KindBusiness:
		return "business"
	default:
		return "unknown"
	}
}

// Error is the canonical error type carried across service boundaries.
type Error struct {
	Kind   Kind
	Fields []FieldError
	cause  error
}

func (e *Error) Error() string {
	if msg := e.Message(); msg != "" {
		return msg
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error { return e.cause }

// Message returns the single human-readable string shown to the
// operator: the first structured error's message wins, the rest are
// discarded.
func (e *Error) Message() string {
	if len(e.Fields) > 0 {
		return e.Fields[0].Message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return ""
}

// Validation builds a pre-network field-level error.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Fields: []FieldError{{Field: field, Message: message}}}
}

// Business wraps the structured error list of a success:false response.
func Business(fields []FieldError) *Error {
	if len(fields) == 0 {
		fields = []FieldError{{Message: "Error desconocido"}}
	}
	return &Error{Kind: KindBusiness, Fields: fields}
}

// FromTransport classifies an error returned by the GraphQL client
// library. The library reports server-side GraphQL errors with a
// "graphql:" prefix; anything else is a network/transport failure.
func FromTransport(err error) *Error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	kind := KindTransport
	if strings.HasPrefix(err.Error(), "graphql:") {
		kind = KindGraphQL
	}
	return &Error{Kind: kind, cause: err}
}

// IsValidation reports whether err is a local validation failure, i.e.
// the request never reached the backend.
func IsValidation(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindValidation
}

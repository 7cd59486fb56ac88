// Copyright 2025 Certen Protocol
//
// Package errors provides the fatal-error taxonomy for the commit verifier.
// Every error raised by pkg/valset, pkg/signedheader, or pkg/verify's
// preconditions is a VerifyError: malformed input that a caller must treat
// as a bug, never as evidence about a commit.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies the class of malformed-input failure.
type Code string

const (
	// CodePagination: a /validators response spans more than one page.
	CodePagination Code = "PAGINATION_NOT_SUPPORTED"
	// CodeMalformedField: a field failed to parse, or had the wrong length/shape.
	CodeMalformedField Code = "MALFORMED_FIELD"
	// CodeUnsupportedKeyType: pub_key.type was not tendermint/PubKeyEd25519.
	CodeUnsupportedKeyType Code = "UNSUPPORTED_KEY_TYPE"
	// CodeAddressMismatch: claimed address != SHA-256(pub_key)[0..20].
	CodeAddressMismatch Code = "ADDRESS_KEY_MISMATCH"
	// CodeDuplicateAddress: the same validator address appeared twice.
	CodeDuplicateAddress Code = "DUPLICATE_ADDRESS"
	// CodeCountMismatch: total/count disagreed with the number of entries parsed.
	CodeCountMismatch Code = "COUNT_MISMATCH"
	// CodeHeightMismatch: header.height != commit.height.
	CodeHeightMismatch Code = "HEIGHT_MISMATCH"
	// CodePrecondition: a Verify() precondition was violated by the caller.
	CodePrecondition Code = "PRECONDITION_VIOLATION"
)

// VerifyError is a structured, fatal, malformed-input error. Errors built
// with Field, Fieldf or Wrap name the offending field so a caller can act
// on it without parsing the message text; New and Newf leave Field empty.
type VerifyError struct {
	Code  Code
	Field string
	Msg   string
	Cause error
}

func (e *VerifyError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field %q)", e.Code, e.Msg, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *VerifyError) Unwrap() error { return e.Cause }

// New creates a VerifyError with no offending field named.
func New(code Code, msg string) *VerifyError {
	return &VerifyError{Code: code, Msg: msg}
}

// Newf creates a VerifyError with a formatted message.
func Newf(code Code, format string, args ...any) *VerifyError {
	return &VerifyError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Field creates a VerifyError naming the offending field.
func Field(code Code, field, msg string) *VerifyError {
	return &VerifyError{Code: code, Field: field, Msg: msg}
}

// Fieldf creates a VerifyError naming the offending field, with a formatted message.
func Fieldf(code Code, field, format string, args ...any) *VerifyError {
	return &VerifyError{Code: code, Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to an existing parse/decode error while keeping the code and field.
func Wrap(code Code, field string, cause error) *VerifyError {
	return &VerifyError{Code: code, Field: field, Msg: cause.Error(), Cause: cause}
}

// As reports whether err is (or wraps) a *VerifyError, matching stdlib errors.As.
func As(err error) (*VerifyError, bool) {
	var ve *VerifyError
	ok := errors.As(err, &ve)
	return ve, ok
}

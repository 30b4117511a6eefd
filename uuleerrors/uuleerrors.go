// Package uuleerrors holds the decode error taxonomy shared by the UULEv1 and
// UULEv2 codecs. Decoding either fully succeeds or fails with exactly one of
// the sentinels below, wrapped with field context; callers branch with
// errors.Is or bucket failures with CodeOf.
package uuleerrors

import "errors"

var (
	// ErrInvalidPrefix means the token does not start with the literal
	// format prefix ("w+" for UULEv1, "a+" for UULEv2).
	ErrInvalidPrefix = errors.New("uule invalid prefix")
	// ErrInvalidBase64 means the token body is not URL-safe base64.
	ErrInvalidBase64 = errors.New("uule invalid base64url")
	// ErrMalformedField means a field's bytes or text cannot be parsed as
	// its expected type, or a length field overruns the buffer.
	ErrMalformedField = errors.New("uule malformed field")
	// ErrMissingField means a required field is absent.
	ErrMissingField = errors.New("uule missing field")
	// ErrUnknownField means the text block carries an unrecognized key.
	ErrUnknownField = errors.New("uule unknown field")
	// ErrStructure means block markers or field order do not match the
	// closed schema.
	ErrStructure = errors.New("uule structure mismatch")
)

// Code is a stable, programmatic identifier for a decode outcome.
type Code string

const (
	CodeOK             Code = "ok"
	CodeInvalidPrefix  Code = "invalid_prefix"
	CodeInvalidBase64  Code = "invalid_base64"
	CodeMalformedField Code = "malformed_field"
	CodeMissingField   Code = "missing_field"
	CodeUnknownField   Code = "unknown_field"
	CodeStructure      Code = "structure"
	CodeDecodeFailed   Code = "decode_failed"
)

// CodeOf maps a decode error to its stable Code. A nil error is CodeOK;
// errors from outside the taxonomy fall back to CodeDecodeFailed.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrInvalidPrefix):
		return CodeInvalidPrefix
	case errors.Is(err, ErrInvalidBase64):
		return CodeInvalidBase64
	case errors.Is(err, ErrMalformedField):
		return CodeMalformedField
	case errors.Is(err, ErrMissingField):
		return CodeMissingField
	case errors.Is(err, ErrUnknownField):
		return CodeUnknownField
	case errors.Is(err, ErrStructure):
		return CodeStructure
	default:
		return CodeDecodeFailed
	}
}

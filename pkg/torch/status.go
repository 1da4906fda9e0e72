package torch

import (
	"fmt"
	"unicode/utf8"
)

// Code enumerates the outcome codes reported by the acceleration runtime.
// The numeric values are part of the cross-boundary encoding.
type Code uint8

const (
	CodeOK Code = iota
	CodeCancelled
	CodeUnknown
	CodeInvalidArgument
	CodeDeadlineExceeded
	CodeNotFound
	CodeAlreadyExists
	CodePermissionDenied
	CodeResourceExhausted
	CodeFailedPrecondition
	CodeAborted
	CodeOutOfRange
	CodeUnimplemented
	CodeInternal
	CodeUnavailable
	CodeDataLoss
	CodeUnauthenticated
)

var codeNames = [...]string{
	CodeOK:                 "ok",
	CodeCancelled:          "cancelled",
	CodeUnknown:            "unknown",
	CodeInvalidArgument:    "invalid argument",
	CodeDeadlineExceeded:   "deadline exceeded",
	CodeNotFound:           "not found",
	CodeAlreadyExists:      "already exists",
	CodePermissionDenied:   "permission denied",
	CodeResourceExhausted:  "resource exhausted",
	CodeFailedPrecondition: "failed precondition",
	CodeAborted:            "aborted",
	CodeOutOfRange:         "out of range",
	CodeUnimplemented:      "unimplemented",
	CodeInternal:           "internal",
	CodeUnavailable:        "unavailable",
	CodeDataLoss:           "data loss",
	CodeUnauthenticated:    "unauthenticated",
}

func (c Code) String() string {
	if int(c) < len(codeNames) {
		return codeNames[c]
	}
	return fmt.Sprintf("code(%d)", uint8(c))
}

// Status is the result descriptor reported by a runtime call: an outcome code
// plus an optional diagnostic message provided by the runtime.
type Status struct {
	code    Code
	message []byte
}

// NewStatus wraps a runtime-provided outcome code and raw message bytes.
func NewStatus(code uint8, message []byte) Status {
	return Status{code: Code(code), message: message}
}

// Code returns the outcome code.
func (s Status) Code() Code { return s.code }

// OK reports whether the call succeeded.
func (s Status) OK() bool { return s.code == CodeOK }

// Message returns the diagnostic message. Absent or non-UTF-8 runtime bytes
// yield an empty string rather than an error.
func (s Status) Message() string {
	if len(s.message) == 0 || !utf8.Valid(s.message) {
		return ""
	}
	return string(s.message)
}

func (s Status) String() string {
	return fmt.Sprintf("'%s (id:%d)'", s.Message(), uint8(s.code))
}

package torch

import "fmt"

// invalidArgumentError signals malformed caller input: nil handles, length
// mismatches, type-tag mismatches, unencodable paths.
type invalidArgumentError struct{ msg string }

func (e invalidArgumentError) Error() string { return "invalid argument: " + e.msg }

// ErrInvalidArgument constructs an invalid-argument error.
func ErrInvalidArgument(msg string) error { return invalidArgumentError{msg: msg} }

// IsInvalidArgument reports whether err indicates malformed caller input.
func IsInvalidArgument(err error) bool {
	_, ok := err.(invalidArgumentError)
	return ok
}

// outOfRangeError signals a dimension index past the tensor's rank.
type outOfRangeError struct {
	index int
	dims  int
}

func (e outOfRangeError) Error() string {
	return fmt.Sprintf("dimension index %d out of range (rank %d)", e.index, e.dims)
}

// IsOutOfRange reports whether err indicates an out-of-range dimension index.
func IsOutOfRange(err error) bool {
	_, ok := err.(outOfRangeError)
	return ok
}

// runtimeError wraps a non-Ok outcome code returned by a runtime call,
// verbatim.
type runtimeError struct {
	code Code
	msg  string
}

func (e runtimeError) Error() string {
	if e.msg == "" {
		return "runtime error: " + e.code.String()
	}
	return fmt.Sprintf("runtime error: %s: %s", e.code, e.msg)
}

// ErrRuntime wraps a runtime outcome code in an error.
func ErrRuntime(code Code) error { return runtimeError{code: code} }

func errRuntimef(code Code, format string, args ...any) error {
	return runtimeError{code: code, msg: fmt.Sprintf(format, args...)}
}

// IsRuntime reports whether err wraps a runtime outcome code.
func IsRuntime(err error) bool {
	_, ok := err.(runtimeError)
	return ok
}

// RuntimeCode extracts the wrapped outcome code from a runtime error.
func RuntimeCode(err error) (Code, bool) {
	re, ok := err.(runtimeError)
	return re.code, ok
}

package httpapi

import (
	"encoding/json"
	"net/http"

	"acceld/internal/dispatch"
	"acceld/pkg/torch"
	"acceld/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// errStatus maps service errors onto HTTP status codes.
func errStatus(err error) int {
	switch {
	case dispatch.IsModelNotFound(err):
		return http.StatusNotFound
	case torch.IsInvalidArgument(err), torch.IsOutOfRange(err):
		return http.StatusBadRequest
	case torch.IsRuntime(err):
		code, _ := torch.RuntimeCode(err)
		switch code {
		case torch.CodeNotFound:
			return http.StatusNotFound
		case torch.CodeInvalidArgument, torch.CodeFailedPrecondition:
			return http.StatusBadRequest
		case torch.CodeResourceExhausted:
			return http.StatusTooManyRequests
		case torch.CodeUnavailable:
			return http.StatusServiceUnavailable
		}
		return http.StatusBadGateway
	}
	if he, ok := err.(HTTPError); ok {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"vidgrab/internal/domain/errconsts"
	"vidgrab/internal/domain/logger"
)

const maxBodyBytes = 1 << 16

// errorResponse is the body of every failed API call.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// statusFor maps an error onto its HTTP status and machine-readable code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, errconsts.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, errconsts.ErrOperationBusy):
		return http.StatusConflict, "busy"
	case errors.Is(err, errconsts.ErrNoCatalog):
		return http.StatusConflict, "no_catalog"
	case errors.Is(err, errconsts.ErrUnknownFormat):
		return http.StatusBadRequest, "unknown_format"
	case errors.Is(err, errconsts.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, errconsts.ErrInvalidInput):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, errconsts.ErrInvalidUpstreamData):
		return http.StatusBadGateway, "invalid_upstream_data"
	case errors.Is(err, errconsts.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errconsts.ErrTimeout):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, errconsts.ErrUpstreamFailure), errors.Is(err, errconsts.ErrUpstreamUnavailable):
		return http.StatusBadGateway, "upstream_unavailable"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Pl.E("Failed to encode JSON response: %v", err)
	}
}

// writeError logs err and writes its error envelope.
func writeError(w http.ResponseWriter, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Pl.E("Request failed (%d %s): %v", status, code, err)
	} else {
		logger.Pl.D(1, "Request rejected (%d %s): %v", status, code, err)
	}
	writeJSON(w, status, errorResponse{
		Success: false,
		Error:   errconsts.UserMessage(err),
		Code:    code,
	})
}

// decodeBody decodes a JSON request body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(errconsts.ErrInvalidInput, err)
	}
	return nil
}

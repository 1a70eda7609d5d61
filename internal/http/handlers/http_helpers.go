package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
)

// writeJSON takes a response status code and arbitrary data and writes a json
// response to the client.
func writeJSON(w http.ResponseWriter, status int, data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}
	return nil
}

// writeError sends a generic message plus the request id so a merchant report
// can be matched to the logs. Fault internals never reach the client.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if err := writeJSON(w, status, ErrorResponse{
		Error:     msg,
		RequestID: GetRequestID(r),
	}); err != nil {
		log.Error("failed to write error response", zap.Error(err))
	}
}

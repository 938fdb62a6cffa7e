package transport

import (
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

// maxJSONBody bounds decoded request bodies.
const maxJSONBody = 64 << 10

// StatusResponse is the body of simple acknowledgements.
type StatusResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the body of a failed API request.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// decodeJSON parses a bounded JSON request body into dst.
func decodeJSON(r io.Reader, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	writeJSON(w, code, StatusResponse{Status: status})
}

func writeError(w http.ResponseWriter, code int, message string, fields map[string]string) {
	writeJSON(w, code, ErrorResponse{Error: message, Fields: fields})
}

package middleware

import (
	"encoding/json"
	"net/http"
)

// writeStatus writes the API error envelope. It mirrors the handlers'
// response shape without importing them.
func writeStatus(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": msg},
		"meta":    map[string]string{"request_id": GetRequestID(r.Context())},
	})
}

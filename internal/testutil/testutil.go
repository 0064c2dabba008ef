// Package testutil provides common test helpers for the argus project.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// RespondJSON writes v as a JSON response body, failing the test on encode
// errors.
func RespondJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode response: %v", err)
	}
}

// JSONServer starts an httptest server whose routes map URL paths to fixed
// JSON payloads. Unknown paths return 404. The server is closed when the
// test completes.
func JSONServer(t *testing.T, routes map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		RespondJSON(t, w, payload)
	}))
	t.Cleanup(server.Close)
	return server
}

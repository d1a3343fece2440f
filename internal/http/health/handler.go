package health

import (
	"encoding/json"
	"net/http"
)

// Response is the liveness payload.
type Response struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Handler returns the liveness endpoint. It reports process health only; it
// never touches the profile store or the upstream API.
func Handler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(Response{Status: "ok", Version: version})
	}
}

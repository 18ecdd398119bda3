package webhook

import "net/http"

// ReadinessChecker reports whether the receiver should accept deliveries.
type ReadinessChecker interface {
	IsReady() bool
}

// livenessHandler answers 200 while the process runs.
func livenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		writeJSON(r.Context(), w, http.StatusOK, statusResponse{Status: "alive"})
	}
}

// readinessHandler answers 200 when checker is ready and 503 otherwise.
func readinessHandler(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		if !checker.IsReady() {
			writeJSON(r.Context(), w, http.StatusServiceUnavailable, statusResponse{Status: "starting"})
			return
		}
		writeJSON(r.Context(), w, http.StatusOK, statusResponse{Status: "ready"})
	}
}

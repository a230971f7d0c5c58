package httpx

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mlehotskylf-org/signkit/internal/config"
)

// HealthStatus represents the overall health status of the service.
type HealthStatus struct {
	Status string            `json:"status"`           // "ok" or "degraded"
	Checks map[string]string `json:"checks,omitempty"` // Only included in deep health checks
}

// healthzHandler handles health check requests.
// Returns 200 OK with {"status": "ok"} for basic liveness checks.
// Supports ?check=deep to exercise the config, the signer, and the random source.
func healthzHandler(cfg config.Config, deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("check") != "deep" {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			return
		}
		deepHealthCheck(w, r, cfg, deps)
	}
}

// deepHealthCheck returns 200 if all checks pass, 503 if any fails.
func deepHealthCheck(w http.ResponseWriter, r *http.Request, cfg config.Config, deps Deps) {
	checks := make(map[string]string)
	allHealthy := true

	// Check 1: configuration is complete
	if err := cfg.Validate(); err != nil {
		checks["config"] = fmt.Sprintf("invalid: %v", err)
		allHealthy = false
		slog.WarnContext(r.Context(), "health check failed", "check", "config", "error", err)
	} else {
		checks["config"] = "ok"
	}

	// Check 2: the signer can produce a signature
	if _, err := deps.Signer.Signature([]byte("healthz")); err != nil {
		checks["signer"] = "misconfigured"
		allHealthy = false
		slog.WarnContext(r.Context(), "health check failed", "check", "signer", "error", err)
	} else {
		checks["signer"] = "ok"
	}

	// Check 3: the random source yields bytes
	if _, err := deps.Random.Bytes(1); err != nil {
		checks["random"] = "unavailable"
		allHealthy = false
		slog.WarnContext(r.Context(), "health check failed", "check", "random", "error", err)
	} else {
		checks["random"] = "ok"
	}

	status := HealthStatus{
		Status: "ok",
		Checks: checks,
	}

	if !allHealthy {
		status.Status = "degraded"
		writeJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	writeJSON(w, http.StatusOK, status)
}

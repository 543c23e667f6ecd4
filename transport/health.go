package transport

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/findahub/accounts/utils/logger"
)

// ReadyCheck probes one dependency. The readiness endpoint replaces any
// ambient "initialized" flag with an explicit, queryable signal.
type ReadyCheck struct {
	Name  string
	Probe func() error
}

// HealthHandler reports 200 when every dependency probe passes, 503 otherwise.
func HealthHandler(checks []ReadyCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]string, len(checks))
		healthy := true

		for _, c := range checks {
			if err := c.Probe(); err != nil {
				logger.Warn("readiness probe failed", zap.String("check", c.Name), zap.String("error", err.Error()))
				status[c.Name] = "down"
				healthy = false
				continue
			}
			status[c.Name] = "up"
		}

		if !healthy {
			writeJSON(w, http.StatusServiceUnavailable, &Response{
				Code:    "5003",
				Message: "not ready",
				Data:    status,
			})
			return
		}

		writeSuccess(w, status)
	}
}

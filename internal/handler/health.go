package handler

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/osse101/geotreasure/internal/logger"
)

// ReadinessTimeout bounds one /readyz call; checks run in parallel under it
const ReadinessTimeout = 2 * time.Second

const (
	statusOK          = "ok"
	statusUnavailable = "unavailable"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// ReadinessCheck probes one backing dependency such as postgres or redis
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HandleHealthz is the liveness probe. It never touches dependencies.
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: statusOK})
	}
}

// HandleReadyz answers 200 only when every check passes. With no checks, as in
// in-memory mode, it is always ready.
func HandleReadyz(checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), ReadinessTimeout)
		defer cancel()

		failed := make([]error, len(checks))
		var g errgroup.Group
		for i, c := range checks {
			g.Go(func() error {
				failed[i] = c.Check(ctx)
				return nil
			})
		}
		_ = g.Wait()

		resp := HealthResponse{Status: statusOK, Checks: make(map[string]string, len(checks))}
		for i, c := range checks {
			if err := failed[i]; err != nil {
				logger.FromContext(ctx).Error(LogMsgReadinessFailed, "dependency", c.Name, "error", err)
				resp.Checks[c.Name] = statusUnavailable
				resp.Status = statusUnavailable
				continue
			}
			resp.Checks[c.Name] = statusOK
		}

		if resp.Status != statusOK {
			resp.Message = "dependency check failed"
			respondJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

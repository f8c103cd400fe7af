package controllers

import (
	"net/http"

	"github.com/pbrapdanielquiazon-spec/ASwinTech/api/responses"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/config"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/db"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/logger"
	"github.com/pbrapdanielquiazon-spec/ASwinTech/pkg/redis"
)

// Health reports process liveness plus the state of the dependencies the
// API cannot serve without. A failing dependency turns the whole check 503.
func Health(cfg *config.Config, logg *logger.Logger, dbPing db.Pinger, redisPing redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		checks := map[string]string{}
		healthy := true

		if dbPing != nil {
			if err := dbPing.Ping(ctx); err != nil {
				logg.Warn(logg.WithField(ctx, "component", "database"), "health check failed: "+err.Error())
				checks["database"] = "down"
				healthy = false
			} else {
				checks["database"] = "ok"
			}
		}
		if redisPing != nil {
			if err := redisPing.Ping(ctx); err != nil {
				logg.Warn(logg.WithField(ctx, "component", "redis"), "health check failed: "+err.Error())
				checks["redis"] = "down"
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}

		status := "ok"
		code := http.StatusOK
		if !healthy {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		responses.WriteSuccessStatus(w, code, map[string]any{
			"status": status,
			"env":    cfg.App.Env,
			"checks": checks,
		})
	}
}

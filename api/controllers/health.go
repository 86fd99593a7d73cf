package controllers

import (
	"net/http"

	"github.com/chocovilla/chocovilla-backend/api/responses"
	"github.com/chocovilla/chocovilla-backend/pkg/config"
	pkgerrors "github.com/chocovilla/chocovilla-backend/pkg/errors"
	"github.com/chocovilla/chocovilla-backend/pkg/logger"
	"github.com/chocovilla/chocovilla-backend/pkg/redis"
)

const envHeader = "X-ChocoVilla-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the cache store and the spreadsheet configuration.
func HealthReady(cfg *config.Config, logg *logger.Logger, redisClient redis.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		if cfg.Google.APIKey == "" || cfg.Google.SheetID == "" {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeDependency, "sheets configuration incomplete"))
			return
		}

		if redisClient != nil {
			if err := redisClient.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}

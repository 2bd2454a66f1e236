package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/anmawex/dashboard-challenge/api/responses"
	"github.com/anmawex/dashboard-challenge/pkg/config"
	pkgerrors "github.com/anmawex/dashboard-challenge/pkg/errors"
	"github.com/anmawex/dashboard-challenge/pkg/logger"
)

// Pinger verifies a downstream dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Dashboard-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings every registered dependency and aggregates the failures.
func HealthReady(cfg *config.Config, logg *logger.Logger, dependencies map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Dashboard-Env", cfg.App.Env)

		var errs error
		statuses := map[string]string{}
		for name, dep := range dependencies {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				statuses[name] = "down"
				errs = multierr.Append(errs, err)
				continue
			}
			statuses[name] = "up"
		}

		if errs != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeTransport, errs, "dependency check failed").WithDetails(statuses))
			return
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "dependencies": statuses})
	}
}

package controllers

import (
	"net/http"

	"github.com/anmawex/dashboard-challenge/api/responses"
	"github.com/anmawex/dashboard-challenge/internal/inventory"
	"github.com/anmawex/dashboard-challenge/pkg/logger"
)

// DashboardMetrics returns the analytics snapshot for the authoritative
// collection. Repeated calls over an unchanged collection reuse the cached
// snapshot.
func DashboardMetrics(mgr *inventory.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, mgr.Metrics())
	}
}

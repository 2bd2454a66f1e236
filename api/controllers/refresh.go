package controllers

import (
	"net/http"

	"github.com/anmawex/dashboard-challenge/api/responses"
	"github.com/anmawex/dashboard-challenge/internal/inventory"
	pkgerrors "github.com/anmawex/dashboard-challenge/pkg/errors"
	"github.com/anmawex/dashboard-challenge/pkg/logger"
)

type collectionStateResponse struct {
	Phase string `json:"phase"`
	Count int    `json:"count"`
}

// CollectionRefresh forces a full resync from the catalog. A failed load
// keeps the previous collection and reports the load error.
func CollectionRefresh(mgr *inventory.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mgr.Refresh(r.Context())

		if mgr.Phase() == inventory.PhaseError {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeTransport, mgr.ErrorMessage()))
			return
		}

		responses.WriteSuccess(w, collectionStateResponse{
			Phase: string(mgr.Phase()),
			Count: len(mgr.Products()),
		})
	}
}

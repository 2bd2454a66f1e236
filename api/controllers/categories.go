package controllers

import (
	"net/http"

	"github.com/anmawex/dashboard-challenge/api/responses"
	"github.com/anmawex/dashboard-challenge/pkg/catalog"
	"github.com/anmawex/dashboard-challenge/pkg/logger"
)

// CategoriesList proxies the catalog's category taxonomy.
func CategoriesList(svc CatalogService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.FetchCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if categories == nil {
			categories = []catalog.Category{}
		}
		responses.WriteSuccess(w, categories)
	}
}

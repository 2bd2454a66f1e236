package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anmawex/dashboard-challenge/api/controllers"
	"github.com/anmawex/dashboard-challenge/api/middleware"
	"github.com/anmawex/dashboard-challenge/internal/inventory"
	"github.com/anmawex/dashboard-challenge/pkg/config"
	"github.com/anmawex/dashboard-challenge/pkg/logger"
	"github.com/anmawex/dashboard-challenge/pkg/metrics"
	pkgredis "github.com/anmawex/dashboard-challenge/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	Manager     *inventory.Manager
	Catalog     controllers.CatalogService
	CatalogPing controllers.Pinger
	Redis       *pkgredis.Client
	Registry    *prometheus.Registry
}

// NewRouter assembles the dashboard's HTTP surface.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if deps.Registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(deps.Registry)
	}

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.CORS(deps.Config.CORS.AllowedOrigins),
		middleware.Metrics(httpMetrics),
	)

	dependencies := map[string]controllers.Pinger{"catalog": deps.CatalogPing}
	if deps.Redis != nil {
		dependencies["redis"] = deps.Redis
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, dependencies))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if deps.Redis != nil {
			r.Use(middleware.Idempotency(deps.Redis, deps.Config.Redis.IdempotencyTTL, deps.Logger))
		}

		r.Get("/products", controllers.ProductsList(deps.Manager, deps.Logger))
		r.Post("/products", controllers.ProductCreate(deps.Catalog, deps.Manager, deps.Logger))
		r.Get("/products/{id}", controllers.ProductGet(deps.Catalog, deps.Logger))
		r.Put("/products/{id}", controllers.ProductUpdate(deps.Catalog, deps.Manager, deps.Logger))
		r.Delete("/products/{id}", controllers.ProductDelete(deps.Manager, deps.Logger))

		r.Post("/refresh", controllers.CollectionRefresh(deps.Manager, deps.Logger))
		r.Get("/categories", controllers.CategoriesList(deps.Catalog, deps.Logger))
		r.Get("/dashboard/metrics", controllers.DashboardMetrics(deps.Manager, deps.Logger))
	})

	return r
}

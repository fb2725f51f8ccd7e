package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"github.com/socialchef/pantry/internal/middleware"
	"go.opentelemetry.io/otel"
)

// NewRouter wires the relay's single route. CORS runs before routing so
// OPTIONS is answered on every path.
func NewRouter(s *Server, serviceName string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)

	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))

	metricCfg := otelchimetric.NewBaseConfig(serviceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.Use(middleware.CORS)

	r.NotFound(HandleNotFound)
	r.MethodNotAllowed(HandleNotFound)

	r.Post("/api/recipe", exactURL(s.HandleRecipe))

	return r
}

// exactURL sends requests carrying any query string, even a bare "?", to
// the not-found handler. The recipe route matches on the full request URL.
func exactURL(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" || r.URL.ForceQuery {
			HandleNotFound(w, r)
			return
		}
		next(w, r)
	}
}

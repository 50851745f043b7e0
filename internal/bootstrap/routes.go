package bootstrap

import (
	"log/slog"
	"net/http"

	"weathervista/internal/handlers"
	"weathervista/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// legacyFunctionPath is where the browser dashboard historically reached the proxy.
const legacyFunctionPath = "/.netlify/functions/weather"

func InitRoutes(
	weatherHandler *handlers.WeatherHandler,
	popularHandler *handlers.PopularHandler,
	registry *prometheus.Registry,
	logger *slog.Logger,
) chi.Router {

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/weather", weatherHandler.GetWeather)
	r.Get(legacyFunctionPath, weatherHandler.GetWeather)

	if popularHandler != nil {
		r.Get("/popular", popularHandler.GetPopular)
	}

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}

package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/guttosm/cryptostats/config"
	"github.com/guttosm/cryptostats/internal/api"
	"github.com/guttosm/cryptostats/internal/logger"
	"github.com/guttosm/cryptostats/internal/service"
)

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Opens the record store selected by STORE_DRIVER (CSV files or PostgreSQL).
//   - Builds the query service wrapped with logging and Prometheus instrumentation.
//   - Creates the HTTP handler layer to handle requests.
//   - Configures the Gin router with all API routes and /metrics.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	store, closeStore, err := openRecordStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	// Private registry: only what this process exports
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := service.NewMetrics(registry)
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	// Initialize service layer (query engine + cross-cutting wrappers)
	queryLog := logger.With("query")
	var svc service.QueryService
	svc = service.NewQueryService(store, cfg.Store.Location)
	svc = service.NewLoggingMiddleware(&queryLog, svc)
	svc = service.NewInstrumentingMiddleware(metrics, svc)

	// Initialize HTTP handler layer (business logic to HTTP mapping)
	handler := api.NewHandler(svc)

	// Setup Gin router with routes
	router := api.NewRouter(handler, api.RouterOptions{
		RequestTimeout:     cfg.Server.RequestTimeout,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		Metrics:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	// Register health and readiness probes
	api.NewHealthHandler(store.Ping).Register(router)

	logger.L().Info().
		Str("driver", cfg.Store.Driver).
		Str("timezone", cfg.Store.Timezone).
		Msg("application initialized")

	return router, closeStore, nil
}

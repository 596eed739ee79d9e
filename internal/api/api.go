// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/cadencehq/cadence/internal/config"
	"github.com/cadencehq/cadence/internal/infrastructure"
	"github.com/cadencehq/cadence/pkg/formatting"
	"github.com/cadencehq/cadence/pkg/middleware"
	"github.com/cadencehq/cadence/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	runtime.Logger.Info("api module configured",
		"base_path", cfg.API.BasePath,
		"ingest_limit", formatting.FormatBytes(cfg.API.MaxIngestSizeBytes(), 0),
		"workers", cfg.API.Workers,
	)

	mux := http.NewServeMux()
	registerRoutes(mux, domain)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}

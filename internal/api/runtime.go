package api

import (
	"github.com/cadencehq/cadence/internal/config"
	"github.com/cadencehq/cadence/internal/infrastructure"
	"github.com/cadencehq/cadence/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Workers    int
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Agent:     infra.Agent,
		},
		Pagination: cfg.API.Pagination,
		Workers:    cfg.API.Workers,
	}
}

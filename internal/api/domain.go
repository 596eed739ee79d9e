package api

import (
	"github.com/cadencehq/cadence/internal/analyses"
	"github.com/cadencehq/cadence/internal/config"
	"github.com/cadencehq/cadence/internal/conversations"
	"github.com/cadencehq/cadence/internal/drafts"
	"github.com/cadencehq/cadence/internal/outreach"
	"github.com/cadencehq/cadence/internal/prompts"
	"github.com/cadencehq/cadence/internal/prospects"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Prospects     prospects.System
	Conversations conversations.System
	Drafts        drafts.System
	Prompts       prompts.System
	Analyses      analyses.System
	Outreach      outreach.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	prospectsSystem := prospects.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	conversationsSystem := conversations.New(
		runtime.Database.Connection(),
		prospectsSystem,
		runtime.Logger,
		runtime.Pagination,
		cfg.API.MaxIngestSizeBytes(),
	)

	draftsSystem := drafts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	analysesSystem := analyses.New(
		runtime.Database.Connection(),
		runtime.Agent,
		runtime.Logger,
		runtime.Pagination,
		conversationsSystem,
		prospectsSystem,
		promptsSystem,
		draftsSystem,
		runtime.Workers,
	)

	outreachSystem := outreach.New(
		runtime.Database.Connection(),
		analysesSystem,
		runtime.Storage,
		outreach.DefaultCatalog(),
		runtime.Logger,
		runtime.Workers,
	)

	return &Domain{
		Prospects:     prospectsSystem,
		Conversations: conversationsSystem,
		Drafts:        draftsSystem,
		Prompts:       promptsSystem,
		Analyses:      analysesSystem,
		Outreach:      outreachSystem,
	}
}

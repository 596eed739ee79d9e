package api

import (
	"net/http"

	"github.com/cadencehq/cadence/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Prospects.Handler().Routes(),
		domain.Conversations.Handler().Routes(),
		domain.Drafts.Handler().Routes(),
		domain.Prompts.Handler().Routes(),
		domain.Analyses.Handler().Routes(),
		domain.Outreach.Handler().Routes(),
	)
}

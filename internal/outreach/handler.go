package outreach

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cadencehq/cadence/pkg/handlers"
	"github.com/cadencehq/cadence/pkg/routes"
)

// Handler provides HTTP endpoints for the outreach engine.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// ExportResponse is returned by the report export endpoint.
type ExportResponse struct {
	Key string `json:"key"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "outreach"),
	}
}

// Routes returns the route group definition for outreach endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/outreach",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/report", Handler: h.Report},
			{Method: "POST", Pattern: "/report/export", Handler: h.Export},
			{Method: "GET", Pattern: "/sequences", Handler: h.Sequences},
			{Method: "GET", Pattern: "/sequences/{name}", Handler: h.Sequence},
		},
	}
}

// Report runs an evaluation pass and returns the ranked contact list.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.sys.Report(r.Context(), time.Now().UTC())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

// Export runs an evaluation pass and uploads the report to blob storage.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	key, err := h.sys.Export(r.Context(), time.Now().UTC())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, ExportResponse{Key: key})
}

// Sequences returns every sequence definition in the catalog.
func (h *Handler) Sequences(w http.ResponseWriter, r *http.Request) {
	catalog := h.sys.Catalog()

	seqs := make([]Sequence, 0, len(catalog.Names()))
	for _, name := range catalog.Names() {
		if seq, ok := catalog.Sequence(name); ok {
			seqs = append(seqs, seq)
		}
	}

	handlers.RespondJSON(w, http.StatusOK, seqs)
}

// Sequence returns one sequence definition by name.
func (h *Handler) Sequence(w http.ResponseWriter, r *http.Request) {
	seq, ok := h.sys.Catalog().Sequence(r.PathValue("name"))
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusNotFound, ErrSequenceNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, seq)
}

// Package http provides http transport for ingestion
package http

import (
	stdhttp "net/http"

	"github.com/missBerg/eir-open/internal/modkit/httpkit"
	"github.com/missBerg/eir-open/internal/services/api/ingest/domain"
	svc "github.com/missBerg/eir-open/internal/services/api/ingest/service"
)

// Register mounts ingest endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// scan one repo on demand
	httpkit.PostJSON[domain.IngestInput](r, "/github", h.ingest)

	// sweep the configured or requested repo set
	httpkit.PostJSON[domain.SyncInput](r, "/sync", h.sync)
}

type handlers struct{ svc svc.Service }

func (h *handlers) ingest(r *stdhttp.Request, in domain.IngestInput) (any, error) {
	return h.svc.Ingest(r.Context(), in)
}

func (h *handlers) sync(r *stdhttp.Request, in domain.SyncInput) (any, error) {
	return h.svc.Sync(r.Context(), in)
}

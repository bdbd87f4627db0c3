// Package http provides http transport for the registry
package http

import (
	stdhttp "net/http"

	"github.com/missBerg/eir-open/internal/modkit/httpkit"
	"github.com/missBerg/eir-open/internal/services/api/registry/domain"
	svc "github.com/missBerg/eir-open/internal/services/api/registry/service"
)

// Register mounts registry endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// published catalog with filters and the tag facet
	httpkit.Get(r, "/skills", h.list)

	// one record by slug, any status
	httpkit.Get(r, "/skills/{slug}", h.bySlug)

	// public submission upsert
	httpkit.PostJSON[domain.SubmissionInput](r, "/submissions", h.submit)
}

type handlers struct{ svc svc.Service }

func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	return h.svc.List(r.Context(), domain.ListInput{
		Q:              q.Get("q"),
		Tag:            q.Get("tag"),
		ReviewStatus:   q.Get("review"),
		ModerationTier: q.Get("tier"),
	})
}

func (h *handlers) bySlug(r *stdhttp.Request) (any, error) {
	return h.svc.BySlug(r.Context(), httpkit.URLParam(r, "slug"))
}

func (h *handlers) submit(r *stdhttp.Request, in domain.SubmissionInput) (any, error) {
	out, err := h.svc.Upsert(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(out), nil
}

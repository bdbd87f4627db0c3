package module

import (
	"context"

	"github.com/missBerg/eir-open/internal/core/catalog"
	"github.com/missBerg/eir-open/internal/services/api/registry/domain"
	regsvc "github.com/missBerg/eir-open/internal/services/api/registry/service"
)

// Ports is the surface other modules may consume
type Ports interface {
	domain.ReaderPort
	domain.WriterPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptRegistryPort struct{ svc regsvc.Service }

// List returns published skills with filters and the tag facet
func (a adaptRegistryPort) List(ctx context.Context, in domain.ListInput) (domain.ListResult, error) {
	return a.svc.List(ctx, in)
}

// BySlug returns one skill by slug
func (a adaptRegistryPort) BySlug(ctx context.Context, slug string) (catalog.Skill, error) {
	return a.svc.BySlug(ctx, slug)
}

// Upsert merges one submission into the catalog
func (a adaptRegistryPort) Upsert(ctx context.Context, in domain.SubmissionInput) (domain.UpsertResult, error) {
	return a.svc.Upsert(ctx, in)
}

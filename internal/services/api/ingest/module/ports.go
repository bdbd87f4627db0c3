package module

import (
	"context"

	"github.com/missBerg/eir-open/internal/services/api/ingest/domain"
	ingsvc "github.com/missBerg/eir-open/internal/services/api/ingest/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptIngestPort struct{ svc ingsvc.Service }

// Ingest scans one repo for manifests
func (a adaptIngestPort) Ingest(ctx context.Context, in domain.IngestInput) (domain.IngestResult, error) {
	return a.svc.Ingest(ctx, in)
}

// Sync sweeps the configured or requested repo set
func (a adaptIngestPort) Sync(ctx context.Context, in domain.SyncInput) (domain.SyncResult, error) {
	return a.svc.Sync(ctx, in)
}

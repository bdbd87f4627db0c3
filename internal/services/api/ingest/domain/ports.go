package domain

import "context"

// ServicePort is consumed by handlers and the sync binary
type ServicePort interface {
	Ingest(ctx context.Context, in IngestInput) (IngestResult, error)
	Sync(ctx context.Context, in SyncInput) (SyncResult, error)
}

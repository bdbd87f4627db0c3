package domain

import (
	"context"

	"github.com/missBerg/eir-open/internal/core/catalog"
)

// ReaderPort serves catalog queries
type ReaderPort interface {
	List(ctx context.Context, in ListInput) (ListResult, error)
	BySlug(ctx context.Context, slug string) (catalog.Skill, error)
}

// WriterPort accepts submissions; the ingest module drives it too
type WriterPort interface {
	Upsert(ctx context.Context, in SubmissionInput) (UpsertResult, error)
}

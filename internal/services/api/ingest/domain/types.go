// Package domain holds DTOs for ingest http and service contracts
package domain

import regdomain "github.com/missBerg/eir-open/internal/services/api/registry/domain"

// IngestInput names one repo to scan. Repo accepts owner/repo shorthand or a
// full GitHub URL; repoUrl is an accepted alias for form reuse
type IngestInput struct {
	Repo    string `json:"repo,omitempty" validate:"omitempty,max=300"`
	RepoURL string `json:"repoUrl,omitempty" validate:"omitempty,max=300"`
	Ref     string `json:"ref,omitempty" validate:"omitempty,max=100"`
}

// IngestResult summarizes one ingestion run
type IngestResult struct {
	Repo     string                   `json:"repo"`
	Ref      string                   `json:"ref"`
	Ingested int                      `json:"ingested"`
	Results  []regdomain.UpsertResult `json:"results"`
}

// SyncInput names the repos to sweep; empty falls back to the configured set
type SyncInput struct {
	Repos []string `json:"repos,omitempty"`
	Ref   string   `json:"ref,omitempty" validate:"omitempty,max=100"`
}

// SyncRepoResult is the per-repo slice of a sync sweep
type SyncRepoResult struct {
	Repo     string `json:"repo"`
	Ingested int    `json:"ingested"`
}

// SyncResult summarizes a sync sweep
type SyncResult struct {
	Ref     string           `json:"ref"`
	Summary []SyncRepoResult `json:"summary"`
}

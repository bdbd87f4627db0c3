// Package domain holds DTOs for registry http and service contracts
package domain

import "github.com/missBerg/eir-open/internal/core/catalog"

// SubmissionInput is one skill payload, from the public submit form or the
// ingestion pipeline. List fields accept an array or a comma separated string
type SubmissionInput struct {
	Name      string `json:"name" validate:"required,max=200"`
	Title     string `json:"title,omitempty" validate:"omitempty,max=200"`
	Owner     string `json:"owner,omitempty" validate:"omitempty,max=100"`
	RepoURL   string `json:"repoUrl" validate:"required,startswith=https://github.com/"`
	SkillPath string `json:"skillPath,omitempty" validate:"omitempty,max=300"`
	Summary   string `json:"summary,omitempty" validate:"omitempty,max=2000"`

	DomainTags      catalog.FlexList `json:"domainTags,omitempty"`
	Populations     catalog.FlexList `json:"populations,omitempty"`
	Regions         catalog.FlexList `json:"regions,omitempty"`
	SourceURLs      catalog.FlexList `json:"sourceUrls,omitempty"`
	LinkedFileNames catalog.FlexList `json:"linkedFileNames,omitempty"`

	HealthMDCompatible bool `json:"healthMdCompatible,omitempty"`
	CreatesLinkedFile  bool `json:"createsLinkedFile,omitempty"`

	ReviewStatus string `json:"reviewStatus,omitempty" validate:"omitempty,oneof=not_medically_reviewed clinician_reviewed not_applicable"`
	LastReviewed string `json:"lastReviewed,omitempty"`
	Version      string `json:"version,omitempty" validate:"omitempty,max=50"`

	Submitter               string `json:"submitter,omitempty" validate:"omitempty,max=100"`
	ModerationTierRequested string `json:"moderationTierRequested,omitempty" validate:"omitempty,oneof=community verified clinician_reviewed"`
	Notes                   string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ListInput filters the published catalog
type ListInput struct {
	Q              string `json:"q,omitempty"`
	Tag            string `json:"tag,omitempty"`
	ReviewStatus   string `json:"review,omitempty"`
	ModerationTier string `json:"tier,omitempty"`
}

// UpsertResult reports the stored record and whether it was new
type UpsertResult struct {
	Skill catalog.Skill `json:"skill"`
	Type  string        `json:"type"`
}

// ListResult is the catalog listing with its filter vocabulary and tag facet
type ListResult struct {
	Skills  []catalog.Skill `json:"skills"`
	Filters FilterOptions   `json:"filters"`
	Tags    []string        `json:"tags"`
}

// FilterOption is one value and its display label
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions is the fixed filter vocabulary the UI renders
type FilterOptions struct {
	ReviewStatuses  []FilterOption `json:"reviewStatuses"`
	ModerationTiers []FilterOption `json:"moderationTiers"`
}

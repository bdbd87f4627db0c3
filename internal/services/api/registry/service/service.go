// Package service contains the registry upsert and query workflows
package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/missBerg/eir-open/internal/core/catalog"
	"github.com/missBerg/eir-open/internal/core/slug"
	perr "github.com/missBerg/eir-open/internal/platform/errors"
	"github.com/missBerg/eir-open/internal/platform/snapstore"
	str "github.com/missBerg/eir-open/internal/platform/strings"
	"github.com/missBerg/eir-open/internal/services/api/registry/domain"
	"github.com/missBerg/eir-open/internal/services/api/registry/repo"
)

// Service defines the registry service contract
type Service interface {
	domain.ReaderPort
	domain.WriterPort
}

// Svc implements the registry service. Upserts serialize on a mutex because
// the snapshot is read-modify-write as one document
type Svc struct {
	store *repo.Store
	mu    sync.Mutex

	now   func() time.Time
	newID func() string
}

// New constructs a registry service over the given snapshot backend
func New(backend snapstore.Backend) *Svc {
	return &Svc{
		store: repo.New(backend),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Upsert validates the payload, merges it into the catalog by its
// (repoUrl, skillPath) identity, and records an audit submission
func (s *Svc) Upsert(ctx context.Context, in domain.SubmissionInput) (domain.UpsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return domain.UpsertResult{}, err
	}
	now := catalog.Timestamp(s.now())

	name := strings.TrimSpace(in.Name)
	sl := slug.Make(name)
	if name == "" || sl == "" {
		return domain.UpsertResult{}, perr.Validationf("skill name is required")
	}

	repoURL := strings.TrimSpace(in.RepoURL)
	if !strings.HasPrefix(repoURL, "https://github.com/") {
		return domain.UpsertResult{}, perr.Validationf("github repo url is required")
	}

	skillPath := str.FirstNonEmpty(strings.TrimSpace(in.SkillPath), sl+"/")
	review := str.FirstNonEmpty(in.ReviewStatus, catalog.ReviewNotMedical)
	linked := in.LinkedFileNames.Strings()

	idx := repo.FindByIdentity(snap, repoURL, skillPath)
	if idx < 0 {
		// a new identity may not take over an existing slug
		if repo.FindBySlug(snap, sl) >= 0 {
			return domain.UpsertResult{}, perr.Conflictf("slug %q is already taken by another skill", sl)
		}
	}

	record := catalog.Skill{
		ID:                 sl,
		Slug:               sl,
		Name:               name,
		Title:              catalog.Title(str.FirstNonEmpty(strings.TrimSpace(in.Title), name)),
		Owner:              strings.ToLower(str.FirstNonEmpty(strings.TrimSpace(in.Owner), "community")),
		RepoURL:            repoURL,
		SkillPath:          skillPath,
		DomainTags:         in.DomainTags.Strings(),
		Populations:        in.Populations.Strings(),
		Regions:            in.Regions.Strings(),
		HealthMDCompatible: in.HealthMDCompatible,
		CreatesLinkedFile:  in.CreatesLinkedFile,
		LinkedFileNames:    linked,
		ReviewStatus:       review,
		ModerationTier:     catalog.TierCommunity,
		Status:             catalog.StatusPendingReview,
		Badges:             catalog.Badges(in.HealthMDCompatible, in.CreatesLinkedFile, linked, review),
		Summary:            strings.TrimSpace(in.Summary),
		SourceURLs:         in.SourceURLs.Strings(),
		LastReviewed:       str.Ptr(strings.TrimSpace(in.LastReviewed)),
		Version:            str.FirstNonEmpty(strings.TrimSpace(in.Version), catalog.DefaultVersion),
		UpdatedAt:          now,
	}

	subType := catalog.SubmissionTypeNew
	if idx >= 0 {
		prev := snap.Skills[idx]
		record.ID = prev.ID
		record.Slug = prev.Slug
		record.ModerationTier = prev.ModerationTier
		record.Status = prev.Status
		snap.Skills[idx] = record
		subType = catalog.SubmissionTypeUpdate
	} else {
		snap.Skills = append([]catalog.Skill{record}, snap.Skills...)
	}

	snap.Submissions = append([]catalog.Submission{{
		ID:                      s.newID(),
		Type:                    subType,
		RepoURL:                 repoURL,
		SkillPath:               skillPath,
		Slug:                    record.Slug,
		SubmittedBy:             str.FirstNonEmpty(strings.TrimSpace(in.Submitter), "anonymous"),
		ModerationTierRequested: str.FirstNonEmpty(in.ModerationTierRequested, catalog.TierCommunity),
		Notes:                   strings.TrimSpace(in.Notes),
		CreatedAt:               now,
		Status:                  catalog.SubmissionQueued,
	}}, snap.Submissions...)

	if err := s.store.Save(ctx, snap); err != nil {
		return domain.UpsertResult{}, err
	}
	return domain.UpsertResult{Skill: record, Type: subType}, nil
}

// List returns published skills matching the filters, ranked by moderation
// tier then recency, with the filter vocabulary and the tag facet
func (s *Svc) List(ctx context.Context, in domain.ListInput) (domain.ListResult, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return domain.ListResult{}, err
	}

	q := strings.ToLower(strings.TrimSpace(in.Q))
	out := []catalog.Skill{}
	for _, sk := range snap.Skills {
		if sk.Status != catalog.StatusPublished {
			continue
		}
		if in.Tag != "" && !contains(sk.DomainTags, in.Tag) {
			continue
		}
		if in.ReviewStatus != "" && sk.ReviewStatus != in.ReviewStatus {
			continue
		}
		if in.ModerationTier != "" && sk.ModerationTier != in.ModerationTier {
			continue
		}
		if q != "" && !matchesQuery(sk, q) {
			continue
		}
		out = append(out, sk)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := catalog.TierRank(out[i].ModerationTier), catalog.TierRank(out[j].ModerationTier)
		if ri != rj {
			return ri > rj
		}
		return out[i].UpdatedAt > out[j].UpdatedAt
	})

	return domain.ListResult{
		Skills:  out,
		Filters: FilterOptions(),
		Tags:    tagFacet(snap.Skills),
	}, nil
}

// BySlug returns one skill regardless of its publication status
func (s *Svc) BySlug(ctx context.Context, sl string) (catalog.Skill, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return catalog.Skill{}, err
	}
	if i := repo.FindBySlug(snap, sl); i >= 0 {
		return snap.Skills[i], nil
	}
	return catalog.Skill{}, perr.NotFoundf("skill %q not found", sl)
}

// FilterOptions returns the fixed filter vocabulary
func FilterOptions() domain.FilterOptions {
	return domain.FilterOptions{
		ReviewStatuses: []domain.FilterOption{
			{Value: "", Label: "All review states"},
			{Value: catalog.ReviewNotMedical, Label: "Not medically reviewed"},
			{Value: catalog.ReviewClinicianReviewed, Label: "Clinician reviewed"},
			{Value: catalog.ReviewNotApplicable, Label: "Not applicable"},
		},
		ModerationTiers: []domain.FilterOption{
			{Value: "", Label: "All moderation tiers"},
			{Value: catalog.TierCommunity, Label: "Community"},
			{Value: catalog.TierVerified, Label: "Verified"},
			{Value: catalog.TierClinicianReviewed, Label: "Clinician reviewed"},
		},
	}
}

// tagFacet is the sorted unique union of tags across the whole catalog,
// published or not
func tagFacet(skills []catalog.Skill) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, sk := range skills {
		for _, tag := range sk.DomainTags {
			if !seen[tag] {
				seen[tag] = true
				out = append(out, tag)
			}
		}
	}
	sort.Strings(out)
	return out
}

func matchesQuery(sk catalog.Skill, q string) bool {
	parts := []string{sk.Name, sk.Title, sk.Summary}
	parts = append(parts, sk.DomainTags...)
	parts = append(parts, sk.Badges...)
	return strings.Contains(strings.ToLower(strings.Join(parts, " ")), q)
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}

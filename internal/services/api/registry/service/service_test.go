package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/missBerg/eir-open/internal/core/catalog"
	perr "github.com/missBerg/eir-open/internal/platform/errors"
	"github.com/missBerg/eir-open/internal/services/api/registry/domain"
)

// memBackend keeps the snapshot in memory for tests
type memBackend struct {
	data     []byte
	writeErr error
}

func (m *memBackend) Kind() string { return "mem" }

func (m *memBackend) Read(context.Context) ([]byte, error) {
	if m.data == nil {
		return []byte(`{"skills":[],"submissions":[]}`), nil
	}
	return m.data, nil
}

func (m *memBackend) Write(_ context.Context, b []byte) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.data = b
	return nil
}

func newTestSvc(b *memBackend) *Svc {
	s := New(b)
	tick := 0
	s.now = func() time.Time {
		tick++
		return time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(tick) * time.Second)
	}
	seq := 0
	s.newID = func() string {
		seq++
		return fmt.Sprintf("sub-%d", seq)
	}
	return s
}

func validInput() domain.SubmissionInput {
	return domain.SubmissionInput{
		Name:    "pregnancy-tracker",
		RepoURL: "https://github.com/acme/skills",
	}
}

func TestUpsertNewRecordDefaults(t *testing.T) {
	s := newTestSvc(&memBackend{})

	out, err := s.Upsert(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if out.Type != catalog.SubmissionTypeNew {
		t.Fatalf("Type = %q, want new", out.Type)
	}
	sk := out.Skill
	if sk.ID != "pregnancy-tracker" || sk.Slug != "pregnancy-tracker" {
		t.Fatalf("id/slug = %q/%q", sk.ID, sk.Slug)
	}
	if sk.Title != "Pregnancy-Tracker" {
		t.Fatalf("Title = %q", sk.Title)
	}
	if sk.Owner != "community" {
		t.Fatalf("Owner = %q", sk.Owner)
	}
	if sk.SkillPath != "pregnancy-tracker/" {
		t.Fatalf("SkillPath = %q", sk.SkillPath)
	}
	if sk.Status != catalog.StatusPendingReview {
		t.Fatalf("Status = %q", sk.Status)
	}
	if sk.ModerationTier != catalog.TierCommunity {
		t.Fatalf("ModerationTier = %q", sk.ModerationTier)
	}
	if sk.ReviewStatus != catalog.ReviewNotMedical {
		t.Fatalf("ReviewStatus = %q", sk.ReviewStatus)
	}
	if sk.Version != "0.1.0" {
		t.Fatalf("Version = %q", sk.Version)
	}
	if sk.LastReviewed != nil {
		t.Fatalf("LastReviewed = %v, want nil", *sk.LastReviewed)
	}
	if len(sk.Badges) != 1 || sk.Badges[0] != "Not Medically Reviewed" {
		t.Fatalf("Badges = %v", sk.Badges)
	}
}

func TestUpsertValidation(t *testing.T) {
	s := newTestSvc(&memBackend{})

	cases := []struct {
		name string
		in   domain.SubmissionInput
	}{
		{"empty name", domain.SubmissionInput{RepoURL: "https://github.com/a/b"}},
		{"symbol only name", domain.SubmissionInput{Name: "!!!", RepoURL: "https://github.com/a/b"}},
		{"missing repo url", domain.SubmissionInput{Name: "x"}},
		{"non github repo url", domain.SubmissionInput{Name: "x", RepoURL: "https://gitlab.com/a/b"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := s.Upsert(context.Background(), c.in)
			if !perr.IsCode(err, perr.ErrorCodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpsertUpdatePreservesModeration(t *testing.T) {
	b := &memBackend{data: []byte(`{
		"skills": [{
			"id": "old-id",
			"slug": "old-slug",
			"name": "pregnancy-tracker",
			"repoUrl": "https://github.com/acme/skills",
			"skillPath": "skills/pt/",
			"moderationTier": "verified",
			"status": "published",
			"badges": ["Stale Badge"],
			"updatedAt": "2026-01-01T00:00:00.000Z"
		}],
		"submissions": []
	}`)}
	s := newTestSvc(b)

	in := validInput()
	in.SkillPath = "skills/pt/"
	in.HealthMDCompatible = true
	out, err := s.Upsert(context.Background(), in)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if out.Type != catalog.SubmissionTypeUpdate {
		t.Fatalf("Type = %q, want update", out.Type)
	}
	sk := out.Skill
	if sk.ID != "old-id" || sk.Slug != "old-slug" {
		t.Fatalf("identity not preserved: %q/%q", sk.ID, sk.Slug)
	}
	if sk.ModerationTier != "verified" {
		t.Fatalf("ModerationTier = %q, want verified", sk.ModerationTier)
	}
	if sk.Status != catalog.StatusPublished {
		t.Fatalf("Status = %q, want published", sk.Status)
	}
	// badges are recomputed, never merged
	want := []string{"Health.md Compatible", "Not Medically Reviewed"}
	if len(sk.Badges) != 2 || sk.Badges[0] != want[0] || sk.Badges[1] != want[1] {
		t.Fatalf("Badges = %v, want %v", sk.Badges, want)
	}
}

func TestUpsertUpdateKeepsPositionNewPrepends(t *testing.T) {
	s := newTestSvc(&memBackend{})
	ctx := context.Background()

	first := validInput()
	first.Name = "first-skill"
	if _, err := s.Upsert(ctx, first); err != nil {
		t.Fatal(err)
	}
	second := validInput()
	second.Name = "second-skill"
	if _, err := s.Upsert(ctx, second); err != nil {
		t.Fatal(err)
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Skills[0].Slug != "second-skill" || snap.Skills[1].Slug != "first-skill" {
		t.Fatalf("new records should prepend, got %q then %q", snap.Skills[0].Slug, snap.Skills[1].Slug)
	}

	// updating the older record must not move it
	first.Summary = "updated"
	if _, err := s.Upsert(ctx, first); err != nil {
		t.Fatal(err)
	}
	snap, _ = s.store.Load(ctx)
	if snap.Skills[1].Slug != "first-skill" || snap.Skills[1].Summary != "updated" {
		t.Fatalf("update should merge in place, got %+v", snap.Skills)
	}
}

func TestUpsertSlugConflict(t *testing.T) {
	s := newTestSvc(&memBackend{})
	ctx := context.Background()

	if _, err := s.Upsert(ctx, validInput()); err != nil {
		t.Fatal(err)
	}

	// same name, different identity
	in := validInput()
	in.RepoURL = "https://github.com/other/skills"
	_, err := s.Upsert(ctx, in)
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpsertRecordsSubmission(t *testing.T) {
	s := newTestSvc(&memBackend{})
	ctx := context.Background()

	in := validInput()
	in.Submitter = "  alice "
	in.Notes = " please review "
	in.ModerationTierRequested = catalog.TierVerified
	if _, err := s.Upsert(ctx, in); err != nil {
		t.Fatal(err)
	}
	// second upsert for the same identity is an update
	if _, err := s.Upsert(ctx, validInput()); err != nil {
		t.Fatal(err)
	}

	snap, _ := s.store.Load(ctx)
	if len(snap.Submissions) != 2 {
		t.Fatalf("submissions = %d, want 2", len(snap.Submissions))
	}
	newest, oldest := snap.Submissions[0], snap.Submissions[1]
	if newest.Type != catalog.SubmissionTypeUpdate || oldest.Type != catalog.SubmissionTypeNew {
		t.Fatalf("types = %q, %q", newest.Type, oldest.Type)
	}
	if oldest.SubmittedBy != "alice" || oldest.Notes != "please review" {
		t.Fatalf("attribution = %q / %q", oldest.SubmittedBy, oldest.Notes)
	}
	if oldest.ModerationTierRequested != catalog.TierVerified {
		t.Fatalf("tier requested = %q", oldest.ModerationTierRequested)
	}
	if newest.SubmittedBy != "anonymous" || newest.ModerationTierRequested != catalog.TierCommunity {
		t.Fatalf("defaults = %q / %q", newest.SubmittedBy, newest.ModerationTierRequested)
	}
	if newest.Status != catalog.SubmissionQueued || oldest.Status != catalog.SubmissionQueued {
		t.Fatal("submissions must start queued")
	}
	// record tier stays community even when a higher tier was requested
	if snap.Skills[0].ModerationTier != catalog.TierCommunity {
		t.Fatalf("skill tier = %q, want community", snap.Skills[0].ModerationTier)
	}
}

func TestUpsertWriteFailurePropagates(t *testing.T) {
	b := &memBackend{writeErr: perr.Persistencef("backend down")}
	s := newTestSvc(b)

	_, err := s.Upsert(context.Background(), validInput())
	if !perr.IsCode(err, perr.ErrorCodePersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestUpsertNormalizesListsAndCase(t *testing.T) {
	s := newTestSvc(&memBackend{})

	in := validInput()
	in.Name = "  Café Skill  "
	in.Owner = "  ACME  "
	in.DomainTags = catalog.FlexList{"pregnancy", "  ", "triage"}
	out, err := s.Upsert(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if out.Skill.Slug != "cafe-skill" {
		t.Fatalf("Slug = %q", out.Skill.Slug)
	}
	if out.Skill.Owner != "acme" {
		t.Fatalf("Owner = %q", out.Skill.Owner)
	}
	if out.Skill.Name != "Café Skill" {
		t.Fatalf("Name = %q", out.Skill.Name)
	}
}

func seedListBackend() *memBackend {
	return &memBackend{data: []byte(`{
		"skills": [
			{"slug":"a","name":"alpha","title":"Alpha","summary":"triage helper","status":"published",
			 "moderationTier":"community","reviewStatus":"not_medically_reviewed",
			 "domainTags":["triage"],"badges":[],"updatedAt":"2026-01-03T00:00:00.000Z"},
			{"slug":"b","name":"beta","title":"Beta","summary":"pregnancy helper","status":"published",
			 "moderationTier":"clinician_reviewed","reviewStatus":"clinician_reviewed",
			 "domainTags":["pregnancy"],"badges":["Health.md Compatible"],"updatedAt":"2026-01-01T00:00:00.000Z"},
			{"slug":"c","name":"gamma","title":"Gamma","summary":"hidden","status":"pending_review",
			 "moderationTier":"community","reviewStatus":"not_medically_reviewed",
			 "domainTags":["diabetes"],"badges":[],"updatedAt":"2026-01-05T00:00:00.000Z"},
			{"slug":"d","name":"delta","title":"Delta","summary":"another triage","status":"published",
			 "moderationTier":"community","reviewStatus":"not_medically_reviewed",
			 "domainTags":["triage","discovery"],"badges":[],"updatedAt":"2026-01-04T00:00:00.000Z"}
		],
		"submissions": []
	}`)}
}

func TestListPublishedOnlyAndSorted(t *testing.T) {
	s := newTestSvc(seedListBackend())

	out, err := s.List(context.Background(), domain.ListInput{})
	if err != nil {
		t.Fatal(err)
	}
	got := slugs(out.Skills)
	// clinician_reviewed outranks community; community ties break on recency
	want := []string{"b", "d", "a"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestListFilters(t *testing.T) {
	s := newTestSvc(seedListBackend())
	ctx := context.Background()

	out, _ := s.List(ctx, domain.ListInput{Tag: "triage"})
	if got := slugs(out.Skills); fmt.Sprint(got) != fmt.Sprint([]string{"d", "a"}) {
		t.Fatalf("tag filter = %v", got)
	}

	out, _ = s.List(ctx, domain.ListInput{ReviewStatus: "clinician_reviewed"})
	if got := slugs(out.Skills); fmt.Sprint(got) != fmt.Sprint([]string{"b"}) {
		t.Fatalf("review filter = %v", got)
	}

	out, _ = s.List(ctx, domain.ListInput{ModerationTier: "community"})
	if got := slugs(out.Skills); fmt.Sprint(got) != fmt.Sprint([]string{"d", "a"}) {
		t.Fatalf("tier filter = %v", got)
	}

	// pending records never match, even with a tag filter that fits
	out, _ = s.List(ctx, domain.ListInput{Tag: "diabetes"})
	if len(out.Skills) != 0 {
		t.Fatalf("pending record leaked: %v", slugs(out.Skills))
	}
}

func TestListQuery(t *testing.T) {
	s := newTestSvc(seedListBackend())
	ctx := context.Background()

	// matches summary text, case insensitive
	out, _ := s.List(ctx, domain.ListInput{Q: "PREGNANCY"})
	if got := slugs(out.Skills); fmt.Sprint(got) != fmt.Sprint([]string{"b"}) {
		t.Fatalf("q over summary = %v", got)
	}

	// matches badge text
	out, _ = s.List(ctx, domain.ListInput{Q: "health.md"})
	if got := slugs(out.Skills); fmt.Sprint(got) != fmt.Sprint([]string{"b"}) {
		t.Fatalf("q over badges = %v", got)
	}

	out, _ = s.List(ctx, domain.ListInput{Q: "no-such-thing"})
	if len(out.Skills) != 0 {
		t.Fatalf("q miss = %v", slugs(out.Skills))
	}
}

func TestListTagFacetSpansAllStatuses(t *testing.T) {
	s := newTestSvc(seedListBackend())

	out, err := s.List(context.Background(), domain.ListInput{})
	if err != nil {
		t.Fatal(err)
	}
	// diabetes comes from a pending record but still shows in the facet
	want := []string{"diabetes", "discovery", "pregnancy", "triage"}
	if fmt.Sprint(out.Tags) != fmt.Sprint(want) {
		t.Fatalf("tags = %v, want %v", out.Tags, want)
	}
}

func TestListFilterVocabulary(t *testing.T) {
	s := newTestSvc(&memBackend{})
	out, err := s.List(context.Background(), domain.ListInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Filters.ReviewStatuses) != 4 || len(out.Filters.ModerationTiers) != 4 {
		t.Fatalf("filters = %+v", out.Filters)
	}
	if out.Filters.ReviewStatuses[0].Label != "All review states" {
		t.Fatalf("review label = %q", out.Filters.ReviewStatuses[0].Label)
	}
	if out.Filters.ModerationTiers[0].Label != "All moderation tiers" {
		t.Fatalf("tier label = %q", out.Filters.ModerationTiers[0].Label)
	}
	if out.Skills == nil || out.Tags == nil {
		t.Fatal("empty catalog must serialize as [] not null")
	}
}

func TestBySlug(t *testing.T) {
	s := newTestSvc(seedListBackend())
	ctx := context.Background()

	sk, err := s.BySlug(ctx, "c")
	if err != nil {
		t.Fatalf("BySlug: %v", err)
	}
	// lookup by slug sees unpublished records too
	if sk.Status != catalog.StatusPendingReview {
		t.Fatalf("Status = %q", sk.Status)
	}

	_, err = s.BySlug(ctx, "nope")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func slugs(skills []catalog.Skill) []string {
	out := make([]string, 0, len(skills))
	for _, sk := range skills {
		out = append(out, sk.Slug)
	}
	return out
}

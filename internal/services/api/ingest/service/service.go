// Package service turns GitHub manifest trees into registry submissions
package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	gh "github.com/missBerg/eir-open/internal/adapters/ingest/github"
	"github.com/missBerg/eir-open/internal/core/catalog"
	"github.com/missBerg/eir-open/internal/core/frontmatter"
	"github.com/missBerg/eir-open/internal/core/infer"
	perr "github.com/missBerg/eir-open/internal/platform/errors"
	"github.com/missBerg/eir-open/internal/platform/logger"
	str "github.com/missBerg/eir-open/internal/platform/strings"
	"github.com/missBerg/eir-open/internal/services/api/ingest/domain"
	regdomain "github.com/missBerg/eir-open/internal/services/api/registry/domain"
)

const (
	defaultRef = "main"
	ingestBot  = "ingestion-bot"
)

var (
	skillFileRe  = regexp.MustCompile(`(?i)(^|/)SKILL\.md$`)
	skillLeafRe  = regexp.MustCompile(`(?i)SKILL\.md$`)
	repoPrefixRe = regexp.MustCompile(`(?i)^https?://github\.com/`)
	gitSuffixRe  = regexp.MustCompile(`(?i)\.git$`)
)

// GitHubPort is the slice of the GitHub client the ingester needs
type GitHubPort interface {
	Tree(ctx context.Context, owner, repo, ref string) (gh.TreeResponse, error)
	RawFile(ctx context.Context, owner, repo, ref, path string) (string, error)
}

// Service defines the ingest service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the ingest service
type Svc struct {
	gh    GitHubPort
	reg   regdomain.WriterPort
	repos []string
	log   logger.Logger
}

// New constructs an ingest service. repos is the default sweep set used when
// a sync request names none
func New(ghc GitHubPort, reg regdomain.WriterPort, repos []string) *Svc {
	if ghc == nil {
		panic("ingest.Service requires a non nil GitHub port")
	}
	if reg == nil {
		panic("ingest.Service requires a non nil registry writer port")
	}
	return &Svc{gh: ghc, reg: reg, repos: repos, log: *logger.Named("ingest")}
}

// ParseRepoRef accepts owner/repo shorthand or a full GitHub URL
func ParseRepoRef(in string) (owner, repo string, err error) {
	clean := repoPrefixRe.ReplaceAllString(strings.TrimSpace(in), "")
	clean = gitSuffixRe.ReplaceAllString(clean, "")
	parts := strings.Split(clean, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", perr.Validationf("repo must be in format owner/repo or full GitHub URL")
	}
	return parts[0], parts[1], nil
}

// Ingest scans one repo for manifests and upserts every one found
func (s *Svc) Ingest(ctx context.Context, in domain.IngestInput) (domain.IngestResult, error) {
	owner, repo, err := ParseRepoRef(str.FirstNonEmpty(in.Repo, in.RepoURL))
	if err != nil {
		return domain.IngestResult{}, err
	}
	ref := str.FirstNonEmpty(in.Ref, defaultRef)

	payloads, err := s.BuildPayloads(ctx, owner, repo, ref)
	if err != nil {
		return domain.IngestResult{}, err
	}
	if len(payloads) == 0 {
		return domain.IngestResult{}, perr.NotFoundf("no SKILL.md files found in repo")
	}

	notes := fmt.Sprintf("Ingested from %s/%s@%s", owner, repo, ref)
	results := make([]regdomain.UpsertResult, 0, len(payloads))
	for _, p := range payloads {
		out, err := s.upsertAs(ctx, p, notes)
		if err != nil {
			return domain.IngestResult{}, err
		}
		results = append(results, out)
	}

	s.log.Info().
		Str("repo", owner+"/"+repo).
		Str("ref", ref).
		Int("ingested", len(results)).
		Msg("ingest run complete")

	return domain.IngestResult{
		Repo:     owner + "/" + repo,
		Ref:      ref,
		Ingested: len(results),
		Results:  results,
	}, nil
}

// Sync sweeps a set of repos. Repos with no manifests contribute a zero
// count instead of failing the sweep
func (s *Svc) Sync(ctx context.Context, in domain.SyncInput) (domain.SyncResult, error) {
	repos := str.IfEmpty(in.Repos, s.repos)
	if len(repos) == 0 {
		return domain.SyncResult{}, perr.Validationf("no repos provided and no default sweep set configured")
	}
	ref := str.FirstNonEmpty(in.Ref, defaultRef)

	summary := make([]domain.SyncRepoResult, 0, len(repos))
	for _, r := range repos {
		owner, repo, err := ParseRepoRef(r)
		if err != nil {
			return domain.SyncResult{}, err
		}
		payloads, err := s.BuildPayloads(ctx, owner, repo, ref)
		if err != nil {
			return domain.SyncResult{}, err
		}
		notes := fmt.Sprintf("Synced from %s/%s@%s", owner, repo, ref)
		for _, p := range payloads {
			if _, err := s.upsertAs(ctx, p, notes); err != nil {
				return domain.SyncResult{}, err
			}
		}
		summary = append(summary, domain.SyncRepoResult{Repo: owner + "/" + repo, Ingested: len(payloads)})
	}
	return domain.SyncResult{Ref: ref, Summary: summary}, nil
}

// BuildPayloads discovers SKILL.md manifests in the repo tree and turns each
// into a normalized submission
func (s *Svc) BuildPayloads(ctx context.Context, owner, repo, ref string) ([]regdomain.SubmissionInput, error) {
	tree, err := s.gh.Tree(ctx, owner, repo, ref)
	if err != nil {
		return nil, err
	}

	var payloads []regdomain.SubmissionInput
	for _, entry := range tree.Tree {
		if entry.Type != "blob" || !skillFileRe.MatchString(entry.Path) {
			continue
		}
		doc, err := s.gh.RawFile(ctx, owner, repo, ref, entry.Path)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, synthesize(owner, repo, entry.Path, doc))
	}
	return payloads, nil
}

// synthesize fills a submission from one manifest, deriving what the
// frontmatter leaves out
func synthesize(owner, repo, path, doc string) regdomain.SubmissionInput {
	fm := frontmatter.Parse(doc)
	name := str.FirstNonEmpty(fm["name"], parentDir(path), repo)
	desc := fm["description"]

	tags := infer.Tags(name, desc, path)
	linked := infer.LinkedFiles(name, desc)

	return regdomain.SubmissionInput{
		Name:               name,
		Owner:              owner,
		RepoURL:            "https://github.com/" + owner + "/" + repo,
		SkillPath:          skillLeafRe.ReplaceAllString(path, ""),
		Summary:            str.FirstNonEmpty(desc, fmt.Sprintf("%s skill from %s/%s", name, owner, repo)),
		DomainTags:         catalog.FlexList(tags),
		Populations:        catalog.FlexList{"general"},
		Regions:            catalog.FlexList{"global"},
		HealthMDCompatible: infer.HealthMD(name, desc),
		CreatesLinkedFile:  len(linked) > 0,
		LinkedFileNames:    catalog.FlexList(linked),
		ReviewStatus:       catalog.ReviewNotMedical,
		Version:            catalog.DefaultVersion,
	}
}

// parentDir returns the directory holding the manifest, empty at repo root
func parentDir(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

func (s *Svc) upsertAs(ctx context.Context, p regdomain.SubmissionInput, notes string) (regdomain.UpsertResult, error) {
	p.Submitter = ingestBot
	p.ModerationTierRequested = catalog.TierCommunity
	p.Notes = notes
	return s.reg.Upsert(ctx, p)
}

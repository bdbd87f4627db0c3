// Package catalog holds the registry record types and the domain vocabulary
// shared by the store and service layers
package catalog

import (
	"regexp"
	"strings"
	"time"
)

// Skill statuses
const (
	StatusPublished     = "published"
	StatusPendingReview = "pending_review"
)

// Moderation tiers
const (
	TierCommunity         = "community"
	TierVerified          = "verified"
	TierClinicianReviewed = "clinician_reviewed"
)

// Review statuses
const (
	ReviewNotMedical        = "not_medically_reviewed"
	ReviewClinicianReviewed = "clinician_reviewed"
	ReviewNotApplicable     = "not_applicable"
)

// Submission lifecycle
const (
	SubmissionQueued = "queued"

	SubmissionTypeNew    = "new"
	SubmissionTypeUpdate = "update"
)

// DefaultVersion is assumed when a payload carries no version
const DefaultVersion = "0.1.0"

// Skill is one published or pending registry record
type Skill struct {
	ID                 string   `json:"id"`
	Slug               string   `json:"slug"`
	Name               string   `json:"name"`
	Title              string   `json:"title"`
	Owner              string   `json:"owner"`
	RepoURL            string   `json:"repoUrl"`
	SkillPath          string   `json:"skillPath"`
	DomainTags         []string `json:"domainTags"`
	Populations        []string `json:"populations"`
	Regions            []string `json:"regions"`
	HealthMDCompatible bool     `json:"healthMdCompatible"`
	CreatesLinkedFile  bool     `json:"createsLinkedFile"`
	LinkedFileNames    []string `json:"linkedFileNames"`
	ReviewStatus       string   `json:"reviewStatus"`
	ModerationTier     string   `json:"moderationTier"`
	Status             string   `json:"status"`
	Badges             []string `json:"badges"`
	Summary            string   `json:"summary"`
	SourceURLs         []string `json:"sourceUrls"`
	LastReviewed       *string  `json:"lastReviewed"`
	Version            string   `json:"version"`
	UpdatedAt          string   `json:"updatedAt"`
}

// Submission is one audit entry; newest entries sit at the front
type Submission struct {
	ID                      string `json:"id"`
	Type                    string `json:"type"`
	RepoURL                 string `json:"repoUrl"`
	SkillPath               string `json:"skillPath"`
	Slug                    string `json:"slug"`
	SubmittedBy             string `json:"submittedBy"`
	ModerationTierRequested string `json:"moderationTierRequested"`
	Notes                   string `json:"notes"`
	CreatedAt               string `json:"createdAt"`
	Status                  string `json:"status"`
}

// Snapshot is the whole store as one document
type Snapshot struct {
	Skills      []Skill      `json:"skills"`
	Submissions []Submission `json:"submissions"`
}

// TierRank orders moderation tiers for listing; unknown tiers sort last
func TierRank(tier string) int {
	switch tier {
	case TierClinicianReviewed:
		return 3
	case TierVerified:
		return 2
	case TierCommunity:
		return 1
	default:
		return 0
	}
}

// Badges derives the display badge list from the record's flags.
// It is recomputed on every upsert, never merged
func Badges(healthMD, createsLinked bool, linkedFiles []string, reviewStatus string) []string {
	var out []string
	if healthMD {
		out = append(out, "Health.md Compatible")
	}
	if createsLinked && len(linkedFiles) > 0 && linkedFiles[0] != "" {
		out = append(out, "Creates "+linkedFiles[0])
	}
	if reviewStatus == ReviewNotMedical {
		out = append(out, "Not Medically Reviewed")
	}
	return out
}

var wordStart = regexp.MustCompile(`\b\w`)

// Title uppercases the first character of every word, leaving the rest alone
func Title(s string) string {
	return wordStart.ReplaceAllStringFunc(strings.TrimSpace(s), strings.ToUpper)
}

// Timestamp renders t as UTC with fixed millisecond width so that
// lexicographic comparison matches chronological order
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

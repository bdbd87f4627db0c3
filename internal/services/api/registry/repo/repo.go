// Package repo encodes registry snapshots over the snapshot store seam
package repo

import (
	"context"
	"encoding/json"

	"github.com/missBerg/eir-open/internal/core/catalog"
	perr "github.com/missBerg/eir-open/internal/platform/errors"
	"github.com/missBerg/eir-open/internal/platform/snapstore"
)

// Store loads and saves the whole catalog snapshot
type Store struct {
	backend snapstore.Backend
}

// New constructs a Store over the given backend
func New(backend snapstore.Backend) *Store {
	if backend == nil {
		panic("registry.Store requires a non nil backend")
	}
	return &Store{backend: backend}
}

// Load reads and decodes the snapshot. Missing or null collections come
// back as empty slices so callers never see nil
func (s *Store) Load(ctx context.Context) (catalog.Snapshot, error) {
	b, err := s.backend.Read(ctx)
	if err != nil {
		return catalog.Snapshot{}, err
	}
	var snap catalog.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return catalog.Snapshot{}, perr.Wrapf(err, perr.ErrorCodePersistence, "snapshot decode failed")
	}
	if snap.Skills == nil {
		snap.Skills = []catalog.Skill{}
	}
	if snap.Submissions == nil {
		snap.Submissions = []catalog.Submission{}
	}
	return snap, nil
}

// Save encodes and writes the snapshot
func (s *Store) Save(ctx context.Context, snap catalog.Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodePersistence, "snapshot encode failed")
	}
	return s.backend.Write(ctx, append(b, '\n'))
}

// FindByIdentity returns the index of the skill with the given repo URL and
// skill path, or -1
func FindByIdentity(snap catalog.Snapshot, repoURL, skillPath string) int {
	for i, sk := range snap.Skills {
		if sk.RepoURL == repoURL && sk.SkillPath == skillPath {
			return i
		}
	}
	return -1
}

// FindBySlug returns the index of the skill with the given slug, or -1
func FindBySlug(snap catalog.Snapshot, slug string) int {
	for i, sk := range snap.Skills {
		if sk.Slug == slug {
			return i
		}
	}
	return -1
}

package snapstore

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestOpenSelectsBackend(t *testing.T) {
	b := Open(Config{FilePath: "x.json"})
	if b.Kind() != "file" {
		t.Fatalf("Kind = %q, want file", b.Kind())
	}

	b = Open(Config{AccountID: "a", DatabaseID: "d", Token: "t"})
	if b.Kind() != "d1" {
		t.Fatalf("Kind = %q, want d1", b.Kind())
	}

	// partial remote config falls back to the file backend
	b = Open(Config{AccountID: "a", DatabaseID: "d"})
	if b.Kind() != "file" {
		t.Fatalf("Kind = %q, want file", b.Kind())
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "skills.json")
	b := Open(Config{FilePath: path})

	want := []byte(`{"skills":[],"submissions":[]}`)
	if err := b.Write(context.Background(), want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := b.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Read = %s, want %s", got, want)
	}

	// second write replaces, not appends
	want = []byte(`{"skills":[{"slug":"x"}],"submissions":[]}`)
	if err := b.Write(context.Background(), want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ = b.Read(context.Background())
	if !bytes.Equal(got, want) {
		t.Fatalf("Read = %s, want %s", got, want)
	}
}

func TestFileReadMissingServesSeed(t *testing.T) {
	b := Open(Config{FilePath: filepath.Join(t.TempDir(), "nope.json")})
	got, err := b.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(got, Seed()) {
		t.Fatal("missing file should serve the seed snapshot")
	}
}

func TestFileWriteLeavesNoTempDebris(t *testing.T) {
	dir := t.TempDir()
	b := Open(Config{FilePath: filepath.Join(dir, "skills.json")})
	if err := b.Write(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "skills.json" {
		t.Fatalf("unexpected dir contents %v", entries)
	}
}

func TestSeedIsValidSnapshot(t *testing.T) {
	var snap struct {
		Skills      []map[string]any `json:"skills"`
		Submissions []map[string]any `json:"submissions"`
	}
	if err := json.Unmarshal(Seed(), &snap); err != nil {
		t.Fatalf("seed does not parse: %v", err)
	}
	if len(snap.Skills) == 0 {
		t.Fatal("seed has no skills")
	}
	for _, s := range snap.Skills {
		if s["status"] != "published" {
			t.Fatalf("seed skill %v is not published", s["slug"])
		}
	}
}

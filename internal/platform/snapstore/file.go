package snapstore

import (
	"context"
	"os"
	"path/filepath"

	perr "github.com/missBerg/eir-open/internal/platform/errors"
	"github.com/missBerg/eir-open/internal/platform/logger"
)

// fileBackend keeps the snapshot in one JSON file on the local filesystem
type fileBackend struct {
	path string
	log  logger.Logger
}

func (f *fileBackend) Kind() string { return "file" }

// Read returns the file contents, or the seed snapshot when the file is
// missing or unreadable
func (f *fileBackend) Read(_ context.Context) ([]byte, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		f.log.Debug().Err(err).Str("path", f.path).Msg("snapshot file unreadable, serving seed")
		return Seed(), nil
	}
	return b, nil
}

// Write replaces the snapshot atomically via a temp file and rename
func (f *fileBackend) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return perr.Wrapf(err, perr.ErrorCodePersistence, "snapshot dir create failed")
	}

	tmp, err := os.CreateTemp(dir, ".skills-*.json")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodePersistence, "snapshot temp create failed")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodePersistence, "snapshot write failed")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodePersistence, "snapshot close failed")
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return perr.Wrapf(err, perr.ErrorCodePersistence, "snapshot rename failed")
	}
	return nil
}

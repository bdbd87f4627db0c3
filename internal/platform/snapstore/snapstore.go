// Package snapstore persists the registry snapshot as one opaque JSON
// document, either on the local filesystem or in Cloudflare D1
package snapstore

import (
	"context"

	"github.com/missBerg/eir-open/internal/platform/config"
	"github.com/missBerg/eir-open/internal/platform/logger"
	"github.com/missBerg/eir-open/internal/platform/snapstore/d1"
)

// Backend reads and writes the whole snapshot document
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error

	// Kind names the backend for logs, "file" or "d1"
	Kind() string
}

// Config selects and parameterizes the backend
type Config struct {
	// FilePath is where the file backend keeps the snapshot
	FilePath string

	// Cloudflare D1 coordinates; the remote backend is selected only when
	// all three are set
	AccountID  string
	DatabaseID string
	Token      string

	// BaseURL overrides the Cloudflare API host, used by tests
	BaseURL string
}

// FromConf reads backend settings from the STORE_ namespace
func FromConf(cfg config.Conf) Config {
	return Config{
		FilePath:   cfg.MayString("FILE_PATH", "data/skills.json"),
		AccountID:  cfg.MayString("CF_ACCOUNT_ID", ""),
		DatabaseID: cfg.MayString("CF_D1_DATABASE_ID", ""),
		Token:      cfg.MayString("CF_API_TOKEN", ""),
	}
}

// Open selects the backend once at startup: D1 when fully configured,
// the local file otherwise
func Open(cfg Config) Backend {
	if cfg.AccountID != "" && cfg.DatabaseID != "" && cfg.Token != "" {
		return &remoteBackend{
			d1: d1.NewClient(d1.Options{
				AccountID:  cfg.AccountID,
				DatabaseID: cfg.DatabaseID,
				Token:      cfg.Token,
				BaseURL:    cfg.BaseURL,
			}),
			log: *logger.Named("snapstore"),
		}
	}
	return &fileBackend{
		path: cfg.FilePath,
		log:  *logger.Named("snapstore"),
	}
}

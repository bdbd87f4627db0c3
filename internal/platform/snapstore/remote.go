package snapstore

import (
	"context"

	perr "github.com/missBerg/eir-open/internal/platform/errors"
	"github.com/missBerg/eir-open/internal/platform/logger"
	"github.com/missBerg/eir-open/internal/platform/snapstore/d1"
)

const (
	storeKey = "main"

	createTableSQL = "CREATE TABLE IF NOT EXISTS skill_store (store_key TEXT PRIMARY KEY, store_value TEXT NOT NULL)"
	selectSQL      = "SELECT store_value FROM skill_store WHERE store_key = ?"
	upsertSQL      = "INSERT INTO skill_store (store_key, store_value) VALUES (?, ?) " +
		"ON CONFLICT(store_key) DO UPDATE SET store_value = excluded.store_value"
)

// remoteBackend keeps the snapshot as one row in a Cloudflare D1 table
type remoteBackend struct {
	d1  *d1.Client
	log logger.Logger
}

func (r *remoteBackend) Kind() string { return "d1" }

// Read returns the stored snapshot. A missing row seeds the table and
// returns the seed; a failing backend logs and falls back to the seed so
// reads stay available
func (r *remoteBackend) Read(ctx context.Context) ([]byte, error) {
	rows, err := r.read(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("d1 read failed, falling back to seed store")
		return Seed(), nil
	}
	return rows, nil
}

func (r *remoteBackend) read(ctx context.Context) ([]byte, error) {
	if _, err := r.d1.Query(ctx, createTableSQL); err != nil {
		return nil, err
	}
	rows, err := r.d1.Query(ctx, selectSQL, storeKey)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		seed := Seed()
		if err := r.Write(ctx, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	v, ok := rows[0]["store_value"].(string)
	if !ok {
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "d1 store_value has unexpected type")
	}
	return []byte(v), nil
}

// Write upserts the snapshot row. Failures propagate so submissions are
// never silently dropped
func (r *remoteBackend) Write(ctx context.Context, data []byte) error {
	if _, err := r.d1.Query(ctx, createTableSQL); err != nil {
		return perr.Wrapf(err, perr.ErrorCodePersistence, "d1 ensure table failed")
	}
	if _, err := r.d1.Query(ctx, upsertSQL, storeKey, string(data)); err != nil {
		return perr.Wrapf(err, perr.ErrorCodePersistence, "d1 snapshot write failed")
	}
	return nil
}

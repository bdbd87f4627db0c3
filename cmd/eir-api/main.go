package main

import (
	"context"

	"github.com/missBerg/eir-open/internal/platform/config"
	"github.com/missBerg/eir-open/internal/platform/logger"
	phttp "github.com/missBerg/eir-open/internal/platform/net/http"
	"github.com/missBerg/eir-open/internal/platform/snapstore"

	"github.com/missBerg/eir-open/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	storeCfg := root.Prefix("STORE_")

	// bring up logging early
	l := logger.Get()

	// pick the snapshot backend once at startup (STORE_CF_* selects D1)
	snap := snapstore.Open(snapstore.FromConf(storeCfg))
	l.Info().Str("backend", snap.Kind()).Msg("snapshot store ready")

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API (GITHUB_* / INGEST_* live at the root namespace)
	api.Mount(
		srv.Router(),
		api.Options{
			Config: root,
			Snap:   snap,
			Logger: l,
		},
	)

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

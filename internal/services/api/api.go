// Package api provides the HTTP API for the skill registry
package api

import (
	"github.com/missBerg/eir-open/internal/platform/config"
	"github.com/missBerg/eir-open/internal/platform/logger"
	phttp "github.com/missBerg/eir-open/internal/platform/net/http"
	"github.com/missBerg/eir-open/internal/platform/snapstore"

	"github.com/missBerg/eir-open/internal/modkit"
	"github.com/missBerg/eir-open/internal/modkit/httpkit"
	"github.com/missBerg/eir-open/internal/modkit/module"

	ingestmod "github.com/missBerg/eir-open/internal/services/api/ingest/module"
	metamod "github.com/missBerg/eir-open/internal/services/api/meta/module"
	registrymod "github.com/missBerg/eir-open/internal/services/api/registry/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Snap   snapstore.Backend
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:  opt.Config,
		Snap: opt.Snap,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// construct the registry first and extract its writer port
	registry := registrymod.New(deps)
	writer := module.MustPortsOf[registrymod.Ports](registry)

	// the ingest module drives the registry through that port and sits
	// behind the shared-secret header when a key is configured
	ingest := ingestmod.New(
		deps,
		modkit.WithPorts(ingestmod.Ports{Registry: writer}),
		modkit.WithMiddlewares(httpkit.IngestKey(deps.Cfg.Prefix("INGEST_").MayString("KEY", ""))),
	)

	mods := []module.Module{
		metamod.New(deps),
		registry,
		ingest,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}

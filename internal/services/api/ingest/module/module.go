// Package module wires ingestion into the API using modkit
package module

import (
	"net/http"
	"time"

	gh "github.com/missBerg/eir-open/internal/adapters/ingest/github"
	modkit "github.com/missBerg/eir-open/internal/modkit"
	"github.com/missBerg/eir-open/internal/modkit/httpkit"
	"github.com/missBerg/eir-open/internal/platform/config"
	str "github.com/missBerg/eir-open/internal/platform/strings"
	inghttp "github.com/missBerg/eir-open/internal/services/api/ingest/http"
	ingsvc "github.com/missBerg/eir-open/internal/services/api/ingest/service"
	regdomain "github.com/missBerg/eir-open/internal/services/api/registry/domain"
)

// Module implements the ingest module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc ingsvc.Service
}

// Ports declares the injected registry port this module requires
type Ports struct {
	Registry regdomain.WriterPort
}

// Config holds GitHub client and sweep settings
type Config struct {
	APIBase   string
	RawBase   string
	UserAgent string
	Timeout   time.Duration
	Token     string

	// Repos is the default sweep set for sync runs
	Repos []string
}

// FromConfig reads module settings from the GITHUB_ and INGEST_ namespaces
func FromConfig(cfg config.Conf) Config {
	ghc := cfg.Prefix("GITHUB_")
	ing := cfg.Prefix("INGEST_")
	return Config{
		APIBase:   ghc.MayString("API_BASE", ""),
		RawBase:   ghc.MayString("RAW_BASE", ""),
		UserAgent: ghc.MayString("USER_AGENT", ""),
		Timeout:   ghc.MayDuration("TIMEOUT", 0),
		Token:     ghc.MayString("TOKEN", ""),
		Repos:     ing.MayCSV("REPOS", nil),
	}
}

// New constructs the ingest module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("ingest"),
		modkit.WithPrefix("/ingest"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Registry == nil {
		panic("ingest module requires the registry writer port")
	}

	cfg := FromConfig(deps.Cfg)
	ghc := gh.NewClient(gh.Options{
		APIBase:   cfg.APIBase,
		RawBase:   cfg.RawBase,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
		Token:     cfg.Token,
	})
	svc := ingsvc.New(ghc, injected.Registry, cfg.Repos)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptIngestPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		inghttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

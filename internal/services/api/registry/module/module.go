// Package module wires the registry into the API using modkit
package module

import (
	"net/http"

	modkit "github.com/missBerg/eir-open/internal/modkit"
	"github.com/missBerg/eir-open/internal/modkit/httpkit"
	str "github.com/missBerg/eir-open/internal/platform/strings"
	reghttp "github.com/missBerg/eir-open/internal/services/api/registry/http"
	regsvc "github.com/missBerg/eir-open/internal/services/api/registry/service"
)

// Module implements the registry module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc regsvc.Service
}

// New constructs the registry module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("registry"), modkit.WithPrefix("/")}, opts...)...)

	svc := regsvc.New(deps.Snap)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptRegistryPort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		reghttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	mount := func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	}
	// registry routes sit at the API root rather than a named prefix
	if m.prefix == "" || m.prefix == "/" {
		r.Group(mount)
		return
	}
	r.Route(m.prefix, mount)
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

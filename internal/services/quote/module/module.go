// Package module wires quotes into the API using modkit
package module

import (
	"net/http"

	modkit "dockit/internal/modkit"
	"dockit/internal/modkit/httpkit"
	str "dockit/internal/platform/strings"
	"dockit/internal/services/quote/domain"
	quotehttp "dockit/internal/services/quote/http"
	quotesvc "dockit/internal/services/quote/service"
)

// Ports declares the injected collaborators this module requires
type Ports struct {
	Interpreter domain.InterpreterPort
	Pricer      domain.PricerPort
}

// Module implements the quote module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *quotesvc.Service
}

// New constructs the quote module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("quotes"),
		modkit.WithPrefix("/quotes"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Interpreter == nil {
		panic("quote module requires an Interpreter port")
	}

	cfg := FromConfig(deps.Cfg)
	svc := quotesvc.New(injected.Interpreter, injected.Pricer, quotesvc.Config{
		HourlyRate: cfg.HourlyRate,
		Rot:        cfg.Rot,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = adaptQuotePort{svc: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		quotehttp.Register(r, m.svc)
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

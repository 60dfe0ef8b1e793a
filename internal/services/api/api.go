// Package api provides the HTTP API for the application
package api

import (
	"dockit/internal/core/catalog"
	"dockit/internal/core/interpret"
	"dockit/internal/platform/config"
	"dockit/internal/platform/logger"
	phttp "dockit/internal/platform/net/http"

	"dockit/internal/modkit"
	"dockit/internal/modkit/httpkit"
	"dockit/internal/modkit/module"
	"dockit/internal/modkit/swaggerkit"

	"dockit/internal/services/atl"
	"dockit/internal/services/curation"
	"dockit/internal/services/pricing"
	quotedom "dockit/internal/services/quote/domain"

	metamod "dockit/internal/services/api/meta/module"
	quotemod "dockit/internal/services/quote/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Logger        *logger.Logger
	EnableSwagger bool

	Catalog  *catalog.Catalog
	ATL      *atl.Index
	Pricing  *pricing.Resolver
	Curation *curation.Sink
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// typed-nil guards so optional collaborators stay nil interfaces
	var times interpret.TimeIndex
	if opt.ATL != nil {
		times = opt.ATL
	}
	var sink interpret.UnresolvedSink
	if opt.Curation != nil {
		sink = opt.Curation
	}
	var pricer quotedom.PricerPort
	if opt.Pricing != nil {
		pricer = opt.Pricing
	}

	interp := interpret.New(opt.Catalog, times, sink)

	quotes := quotemod.New(deps, modkit.WithPorts(quotemod.Ports{
		Interpreter: interp,
		Pricer:      pricer,
	}))

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{
			Catalog: opt.Catalog,
			ATL:     opt.ATL,
		})),
		quotes,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its prefix
			m.MountRoutes(api)
		}
	})
}

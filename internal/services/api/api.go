// Package api provides the HTTP API for the application
package api

import (
	"apiwarden/internal/platform/config"
	"apiwarden/internal/platform/logger"
	phttp "apiwarden/internal/platform/net/http"
	"apiwarden/internal/platform/store"

	"apiwarden/internal/modkit"
	"apiwarden/internal/modkit/httpkit"
	"apiwarden/internal/modkit/module"
	"apiwarden/internal/modkit/swaggerkit"

	metamod "apiwarden/internal/services/api/meta/module"
	compliancemod "apiwarden/internal/services/compliance/module"
	contractsmod "apiwarden/internal/services/contracts/module"
	rldomain "apiwarden/internal/services/ratelimit/domain"
	rlmw "apiwarden/internal/services/ratelimit/middleware"
	ratelimitmod "apiwarden/internal/services/ratelimit/module"
	rlsvc "apiwarden/internal/services/ratelimit/service"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
		RDS: opt.Store.RDS,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// Construct the ratelimit module first and extract its limiter port;
	// every other module's routes count against the default quota class
	rateLimit := ratelimitmod.New(deps)
	limiter := module.MustPortsOf[rlsvc.Service](rateLimit)

	// Contracts next: compliance consumes its validator
	contracts := contractsmod.New(deps)
	validator := contracts.(*contractsmod.Module).Validator()

	compliance := compliancemod.New(deps, validator,
		modkit.WithMiddlewares(rlmw.Enforce(limiter, rldomain.ClassResults)),
	)

	mods := []module.Module{
		metamod.New(deps),
		rateLimit,
		contracts,
		compliance,
	}

	// versioned API with a common middleware stack
	stack := httpkit.CommonStack(opt.Config.MayCSV("CORS_ORIGINS", nil)...)
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}

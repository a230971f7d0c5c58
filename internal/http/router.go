package httpx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mlehotskylf-org/signkit/internal/config"
	"github.com/mlehotskylf-org/signkit/internal/security"
)

// Deps are the collaborators the handlers call into
type Deps struct {
	Signer *security.Signer
	Random *security.Random
	Logger *slog.Logger
}

// NewRouter creates and configures a new HTTP router with the given config
func NewRouter(cfg config.Config, deps Deps) http.Handler {
	if deps.Random == nil {
		deps.Random = security.NewRandom(nil)
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 64 << 10
	}

	r := chi.NewRouter()

	// Add middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(deps.Logger))
	r.Use(middleware.Recoverer)

	// Add HSTS header if enabled
	if cfg.EnableHSTS {
		r.Use(hstsMiddleware)
	}

	// Routes
	r.Get(RouteHealth, healthzHandler(cfg, deps))

	// Metrics endpoint (only in non-prod environments)
	if cfg.Env != "prod" {
		r.Get(RouteMetrics, metricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(NoStore)
		r.Use(LimitBody(maxBody))

		r.Post(RouteSign, signHandler(deps.Signer))
		r.Post(RouteVerify, verifyHandler(deps.Signer))

		r.Get(RouteRandomBytes, randomBytesHandler(deps.Random, cfg.MaxRandomBytes))
		r.Get(RouteRandomInt, randomIntHandler(deps.Random))
		r.Get(RouteRandomUUID, randomUUIDHandler(deps.Random))
	})

	if cfg.OtelEnabled {
		return otelhttp.NewHandler(r, cfg.OtelServiceName)
	}
	return r
}

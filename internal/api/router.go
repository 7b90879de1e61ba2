package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sentinelos/engine/internal/api/handlers"
	mw "github.com/sentinelos/engine/internal/api/middleware"
)

type Dependencies struct {
	// JWTSecret enables bearer auth on /api/v1 when non-empty.
	JWTSecret      []byte
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	HealthHandler *handlers.HealthHandler
	OrgsHandler   *handlers.OrgsHandler
	GraphsHandler *handlers.GraphsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	rps, burst := dep.RateLimitRPS, dep.RateLimitBurst
	if rps <= 0 {
		rps, burst = 10, 20
	}

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS(dep.CORSOrigins...))
	r.Use(mw.RateLimit(rps, burst))
	r.Use(chimid.Compress(5))

	r.Get("/healthz", dep.HealthHandler.Liveness)
	r.Get("/readyz", dep.HealthHandler.Readiness)

	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/orgs/{orgID}", func(org chi.Router) {
			if len(dep.JWTSecret) > 0 {
				org.Use(mw.Auth(dep.JWTSecret))
			}
			org.Post("/updates", dep.OrgsHandler.PostUpdate)
			org.Get("/state", dep.OrgsHandler.State)
			org.Post("/ask", dep.OrgsHandler.Ask)
			org.Get("/graph", dep.GraphsHandler.Latest)
		})
	})

	return r
}

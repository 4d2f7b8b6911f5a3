package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/daap14/liga/internal/api/handler"
	"github.com/daap14/liga/internal/api/middleware"
	"github.com/daap14/liga/internal/membership"
	"github.com/daap14/liga/internal/season"
	"github.com/daap14/liga/internal/team"
	"github.com/daap14/liga/internal/venue"
)

// ResourceAliases maps each canonical resource prefix to the English alias
// served by the same handlers.
var ResourceAliases = map[string]string{
	"/estadios":         "/venues",
	"/equipos":          "/teams",
	"/temporadas":       "/seasons",
	"/equipo_temporada": "/team_seasons",
}

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Health  handler.HealthReporter
	Version string

	VenueRepo      venue.Repository
	TeamRepo       team.Repository
	SeasonRepo     season.Repository
	MembershipRepo membership.Repository

	// CORSAllowedOrigins defaults to every origin when empty.
	CORSAllowedOrigins []string

	HTTPMetrics    *middleware.HTTPMetrics
	MetricsHandler http.Handler
	OpenAPISpec    []byte
}

// NewRouter creates and configures a Chi router with all middleware and routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery)
	r.Use(chimiddleware.Logger)
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Handler)
	}
	r.Use(corsHandler(deps.CORSAllowedOrigins))
	r.Use(chimiddleware.StripSlashes)

	if deps.Health != nil {
		healthHandler := handler.NewHealthHandler(deps.Health, deps.Version)
		r.Get("/health", healthHandler.ServeHTTP)
	}

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	if len(deps.OpenAPISpec) > 0 {
		openapiHandler := handler.NewOpenAPIHandler(deps.OpenAPISpec)
		r.Get("/openapi.json", openapiHandler.ServeJSON)
		r.Get("/openapi.yaml", openapiHandler.ServeYAML)
	}

	if deps.VenueRepo != nil {
		h := handler.NewVenueHandler(deps.VenueRepo)
		mountResource(r, "/estadios", func(r chi.Router) {
			r.Post("/", h.Create)
			r.Get("/", h.List)
			r.Get("/{id}", h.GetByID)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	}

	if deps.TeamRepo != nil {
		h := handler.NewTeamHandler(deps.TeamRepo)
		mountResource(r, "/equipos", func(r chi.Router) {
			r.Post("/", h.Create)
			r.Get("/", h.List)
			r.Get("/{id}", h.GetByID)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	}

	if deps.SeasonRepo != nil {
		h := handler.NewSeasonHandler(deps.SeasonRepo)
		mountResource(r, "/temporadas", func(r chi.Router) {
			r.Post("/", h.Create)
			r.Get("/", h.List)
			r.Get("/{id}", h.GetByID)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	}

	if deps.MembershipRepo != nil {
		h := handler.NewMembershipHandler(deps.MembershipRepo)
		mountResource(r, "/equipo_temporada", func(r chi.Router) {
			r.Post("/", h.Create)
			r.Get("/", h.List)
			r.Get("/{equipo_id}/{temporada_id}", h.Get)
			r.Put("/{equipo_id}/{temporada_id}", h.Update)
			r.Delete("/{equipo_id}/{temporada_id}", h.Delete)
		})
	}

	return r
}

// mountResource registers routes under prefix and under its alias.
func mountResource(r chi.Router, prefix string, routes func(r chi.Router)) {
	r.Route(prefix, routes)
	if alias, ok := ResourceAliases[prefix]; ok {
		r.Route(alias, routes)
	}
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"SONJUTOKTOK_BACK-END/internal/auth"
	"SONJUTOKTOK_BACK-END/internal/config"
	"SONJUTOKTOK_BACK-END/internal/handlers"
	"SONJUTOKTOK_BACK-END/internal/middleware"
	"SONJUTOKTOK_BACK-END/internal/service"
	"SONJUTOKTOK_BACK-END/internal/store"
)

// Deps are the collaborators the HTTP layer is built from
type Deps struct {
	Config   *config.Config
	Logger   *zap.Logger
	Store    store.ProfileStore
	Verifier auth.Verifier
	Metrics  *middleware.Metrics
}

// NewRouter configures all application routes
func NewRouter(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}

	resolver := auth.NewResolver(d.Verifier, d.Store)
	authHandler := handlers.NewAuthHandler(service.NewRegistration(d.Store), d.Metrics)
	profileHandler := handlers.NewProfileHandler()
	healthHandler := handlers.NewHealthHandler(d.Store, d.Config.Version)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(d.Metrics.Instrument)

	// Health check routes
	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.HealthCheck)
	r.Get("/readyz", healthHandler.ReadinessCheck)
	r.Handle("/metrics", d.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Authentication routes
	r.Post("/auth/signup", authHandler.Signup)

	// Profile routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireProfile(resolver, d.Metrics))
		r.Get("/profile/me", profileHandler.GetMe)
		r.Get("/profile/phone", profileHandler.GetPhone)
	})

	return withCORS(r, d.Config.CORS)
}

func withCORS(next http.Handler, cfg config.CORSConfig) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   cfg.AllowedMethods,
		AllowedHeaders:   cfg.AllowedHeaders,
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
	})
	return c.Handler(next)
}

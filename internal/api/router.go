package api

import (
	"net/http"
	"time"

	"contesthub/internal/api/handler"
	"contesthub/internal/api/middleware"
	"contesthub/internal/app/service"
	"contesthub/internal/common/security"
	"contesthub/internal/platform/config"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	cfg *config.Config,
	codec *security.TokenCodec,
	denylist middleware.Denylist,
	authService *service.AuthService,
	adminService *service.AdminService,
	eventService *service.EventService,
	articleService *service.ArticleService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// The cookie transport needs credentials, so the origin list must be
	// explicit rather than a wildcard.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Decodes the session cookie and stashes the verification result in
	// the request context; Authenticator acts on it per route group.
	r.Use(jwtauth.Verify(codec.Auth(), middleware.TokenFromCookie))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authenticated := middleware.Authenticator(denylist)

	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
		v1.Route("/auth", func(auth chi.Router) {
			authHandler.RegisterPublicRoutes(auth)
			auth.Group(func(protected chi.Router) {
				protected.Use(authenticated)
				authHandler.RegisterProtectedRoutes(protected)
			})
		})

		adminHandler := handler.NewAdminHandler(adminService)
		v1.Route("/admin/users", func(admin chi.Router) {
			admin.Use(authenticated)
			admin.Use(middleware.RequireAdmin)
			adminHandler.RegisterRoutes(admin)
		})

		eventHandler := handler.NewEventHandler(eventService)
		v1.Route("/events", func(events chi.Router) {
			events.Use(authenticated)
			events.Use(middleware.RequireAdmin)
			eventHandler.RegisterRoutes(events)
		})

		articleHandler := handler.NewArticleHandler(articleService)
		v1.Route("/articles", func(articles chi.Router) {
			articles.Use(authenticated)
			articles.Use(middleware.RequireAdmin)
			articleHandler.RegisterRoutes(articles)
		})
	})

	return r
}

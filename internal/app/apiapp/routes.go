package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jobast/bokkal/internal/config"
	authsvc "github.com/jobast/bokkal/internal/services/auth"
	eventssvc "github.com/jobast/bokkal/internal/services/events"
	locationsvc "github.com/jobast/bokkal/internal/services/location"
	modsvc "github.com/jobast/bokkal/internal/services/moderation"
	ratesvc "github.com/jobast/bokkal/internal/services/rate"
	userssvc "github.com/jobast/bokkal/internal/services/users"
	"github.com/jobast/bokkal/internal/transport/http/handlers"
)

type Dependencies struct {
	JWTManager        *authsvc.JWTManager
	LocationService   *locationsvc.Service
	ModerationService *modsvc.Service
	EventsService     *eventssvc.Service
	UsersService      *userssvc.Service
	SuggestLimiter    *ratesvc.Limiter
	Logger            *zap.Logger
	Config            config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	locationHandler := handlers.NewLocationHandler(deps.LocationService, deps.SuggestLimiter)
	eventsHandler := handlers.NewEventsHandler(deps.EventsService, deps.ModerationService)
	adminHandler := handlers.NewAdminHandler(deps.ModerationService, deps.EventsService, deps.UsersService)
	authMW := AuthMiddleware(deps.JWTManager, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/locations/suggest", locationHandler.Suggest)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventsHandler.List)
			r.Get("/{id}", eventsHandler.Get)
			r.With(authMW).Post("/", eventsHandler.Create)
			r.With(authMW).Patch("/{id}", eventsHandler.Update)
			r.With(authMW).Delete("/{id}", eventsHandler.Delete)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authMW)
			r.Get("/events", adminHandler.Events)
			r.Post("/events/{id}/approve", adminHandler.Approve)
			r.Post("/events/{id}/reject", adminHandler.Reject)
			r.Get("/stats", adminHandler.Stats)
			r.Get("/users", adminHandler.Users)
			r.Post("/users/{id}/admin", adminHandler.SetAdmin)
			r.Post("/users/{id}/verify", adminHandler.SetVerified)
		})
	})
}

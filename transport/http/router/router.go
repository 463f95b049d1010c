package router

import (
	"mediconnect/config"
	"mediconnect/infras/metrics"
	"mediconnect/internal/handlers/appointment"
	"mediconnect/internal/handlers/doctor"
	"mediconnect/internal/handlers/schedule"
	"mediconnect/internal/handlers/sweep"
	"mediconnect/transport/http/middleware"
	"mediconnect/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Doctor      doctor.Handler
	Schedule    schedule.Handler
	Appointment appointment.Handler
	Sweep       sweep.Handler
}

type Middlewares struct {
	App      middleware.AppMiddleware
	AuthRole middleware.AuthRole
}

type Router struct {
	DomainHandlers DomainHandlers
	Middlewares    Middlewares
	Metrics        *metrics.Metrics
	Config         *config.Config
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)
	router.Use(r.Middlewares.App.CORS())
	router.Use(r.Middlewares.App.Tracing)
	router.Use(r.Middlewares.App.Metrics)

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		response.WithMessage(w, http.StatusOK, "OK")
	})
	if r.Config.Metrics.Enable {
		router.Handle(r.Config.Metrics.Path, r.Metrics.Handler())
	}

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Group(func(internal chi.Router) {
			internal.Use(r.Middlewares.AuthRole.APIKey)
			internal.Route("/internal", r.DomainHandlers.Sweep.Router)
		})

		routerGroup.Group(func(authed chi.Router) {
			authed.Use(r.Middlewares.App.RateLimit())
			authed.Use(r.Middlewares.AuthRole.Auth)
			authed.Use(r.Middlewares.AuthRole.RBAC)

			r.DomainHandlers.Doctor.Router(authed)
			r.DomainHandlers.Schedule.Router(authed)
			r.DomainHandlers.Appointment.Router(authed)
		})
	})
}

func New(domainHandlers DomainHandlers, middlewares Middlewares, m *metrics.Metrics, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middlewares:    middlewares,
		Metrics:        m,
		Config:         cfg,
	}
}

package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pharmaflow/pharmaflow-backend/api/controllers"
	"github.com/pharmaflow/pharmaflow-backend/api/middleware"
	"github.com/pharmaflow/pharmaflow-backend/internal/agents"
	"github.com/pharmaflow/pharmaflow-backend/internal/auth"
	"github.com/pharmaflow/pharmaflow-backend/internal/catalog"
	"github.com/pharmaflow/pharmaflow-backend/internal/orders"
	"github.com/pharmaflow/pharmaflow-backend/pkg/auth/session"
	"github.com/pharmaflow/pharmaflow-backend/pkg/config"
	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
	"github.com/pharmaflow/pharmaflow-backend/pkg/logger"
	"github.com/pharmaflow/pharmaflow-backend/pkg/metrics"
	"github.com/pharmaflow/pharmaflow-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             controllers.Pinger
	Redis          *redis.Client
	SessionChecker session.Checker
	ActorLoader    middleware.ActorLoader
	HTTPMetrics    *metrics.HTTPMetrics

	AuthService    auth.Service
	OrdersService  orders.Service
	CatalogService *catalog.Service
	AgentsService  *agents.Service
	Distributors   controllers.DistributorLister
}

// NewRouter wires middleware and endpoints into a chi router.
func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)
	if p.HTTPMetrics != nil {
		r.Use(p.HTTPMetrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.DB, p.Redis, logg))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).
			Post("/login", controllers.AuthLogin(p.AuthService, cfg.JWT, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).
			Post("/register", controllers.AuthRegister(p.AuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))
			r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
			r.Get("/me", controllers.AuthMe(p.AuthService, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))
		r.Use(middleware.Actor(p.ActorLoader, logg))

		r.Get("/distributors", controllers.DistributorsList(p.Distributors, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(p.OrdersService, logg))
			r.With(middleware.RequireRole(logg, enums.UserRolePharmacyOwner)).
				Post("/", controllers.OrdersCreate(p.OrdersService, logg))

			r.Route("/{orderID}", func(r chi.Router) {
				r.Get("/", controllers.OrdersGet(p.OrdersService, logg))
				r.With(middleware.RequireRole(logg, enums.UserRolePharmacyOwner)).
					Put("/", controllers.OrdersEdit(p.OrdersService, logg))
				r.With(middleware.RequireRole(logg, enums.UserRolePharmacyOwner)).
					Delete("/", controllers.OrdersCancel(p.OrdersService, logg))
				r.With(middleware.RequireRole(logg, enums.UserRoleDistributor)).
					Patch("/status", controllers.OrdersAdvanceStatus(p.OrdersService, logg))
			})
		})

		r.Route("/medicines", func(r chi.Router) {
			r.Get("/", controllers.MedicinesSearch(p.CatalogService, logg))
			r.With(middleware.RequireRole(logg, enums.UserRoleDistributor)).
				Post("/", controllers.MedicinesAdd(p.CatalogService, logg))
			r.With(middleware.RequireRole(logg, enums.UserRoleDistributor)).
				Patch("/{medicineID}", controllers.MedicinesUpdate(p.CatalogService, logg))
		})

		r.Route("/agent", func(r chi.Router) {
			r.Use(middleware.RequireRole(logg, enums.UserRoleAgent))
			r.Get("/substitutes", controllers.AgentSubstitutes(p.AgentsService, logg))
			r.Get("/performance", controllers.AgentPerformance(p.AgentsService, logg))
		})
	})

	return r
}

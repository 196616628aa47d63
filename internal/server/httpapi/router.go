// Package httpapi exposes the account and catalog services over HTTP+JSON.
package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/nutriscan/internal/logging"
	"github.com/dmitrijs2005/nutriscan/internal/server/config"
	"github.com/dmitrijs2005/nutriscan/internal/server/ratelimit"
	"github.com/dmitrijs2005/nutriscan/internal/server/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds request bodies; signup carries a base64 avatar.
const maxBodyBytes = 10 << 20

// Deps are the collaborators of the HTTP API.
type Deps struct {
	Accounts services.Accounts
	Catalog  services.Catalog
	Health   services.Health
	Limiter  ratelimit.Limiter
	Config   *config.Config
	Logger   logging.Logger
}

type handler struct {
	accounts services.Accounts
	catalog  services.Catalog
	health   services.Health
	logger   logging.Logger
}

// NewRouter wires routes and middleware.
//
//	POST   /user/signup
//	POST   /user/login
//	GET    /user/{userID}/products
//	POST   /user/{userID}/products
//	DELETE /products/{catalogID}
//	GET    /healthz
//	GET    /metrics
func NewRouter(d Deps) http.Handler {
	h := &handler{
		accounts: d.Accounts,
		catalog:  d.Catalog,
		health:   d.Health,
		logger:   d.Logger.With("module", "http"),
	}

	window := d.Config.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	secret := []byte(d.Config.SecretKey)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Logging(h.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS())
	r.Use(Metrics)

	r.Get("/healthz", h.healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/user", func(r chi.Router) {
		r.With(RateLimit(d.Limiter, "signup", d.Config.SignupRateLimit, window)).Post("/signup", h.signup)
		r.With(RateLimit(d.Limiter, "login", d.Config.LoginRateLimit, window)).Post("/login", h.login)

		r.Route("/{userID}/products", func(r chi.Router) {
			if d.Config.RequireTokenBinding {
				r.Use(RequireSessionToken(secret, "userID"))
			}
			r.Get("/", h.listProducts)
			r.Post("/", h.createProduct)
		})
	})

	r.Group(func(r chi.Router) {
		if d.Config.RequireTokenBinding {
			r.Use(RequireSessionToken(secret, ""))
		}
		r.Delete("/products/{catalogID}", h.deleteProduct)
	})

	return r
}

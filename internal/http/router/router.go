package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"swiftcourier-console/internal/config"
	"swiftcourier-console/internal/http/handlers"
	"swiftcourier-console/internal/http/middleware"
	"swiftcourier-console/internal/http/middleware/ratelimit"
	"swiftcourier-console/internal/http/pprofserver"
	"swiftcourier-console/internal/logx"
	"swiftcourier-console/internal/session"
)

// New constructs the chi router for the console: public pages, the
// authenticated dashboard and the staff-only company tree.
func New(
	h *handlers.Handlers,
	auth *session.Authority,
	cfg *config.Config,
	loginLimit *ratelimit.Middleware,
	logger logx.Logger,
) http.Handler {
	cookieName := cfg.Session.Cookie
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.Observability(logger))
	r.Use(middleware.SessionLoader(auth, cookieName, logger))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Handle("/debug/pprof/*", pprofserver.Handler(pprofserver.Config{
		User: cfg.Pprof.User,
		Pass: cfg.Pprof.Pass,
	}))
	r.NotFound(http.HandlerFunc(h.NotFound))

	r.Get("/", h.Home)
	r.Get("/login", h.LoginPage)
	r.Get("/register", h.RegisterPage)

	r.Group(func(r chi.Router) {
		r.Use(loginLimit.Handler())
		r.Post("/login", h.LoginSubmit)
		r.Post("/register", h.RegisterSubmit)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", h.Logout)
		r.Get("/dashboard", h.Dashboard)
	})

	r.Route("/companies", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(middleware.RequireStaff)

		r.Get("/", h.CompanyList)
		r.Get("/new", h.CompanyNew)
		r.Post("/", h.CompanySave)

		r.Route("/{companyID}", func(r chi.Router) {
			r.Get("/edit", h.CompanyEdit)
			r.Get("/employees", h.EmployeeList)
			r.Get("/revenue", h.RevenueReport)

			r.Route("/offices", func(r chi.Router) {
				r.Get("/", h.OfficeList)
				r.Get("/new", h.OfficeNew)
				r.Get("/{officeID}/edit", h.OfficeEdit)
				r.Post("/", h.OfficeSave)
			})

			r.Route("/packages", func(r chi.Router) {
				r.Get("/", h.PackageList)
				r.Get("/new", h.PackageNew)
				r.Get("/{packageID}/edit", h.PackageEdit)
				r.Post("/", h.PackageSave)
			})

			r.Route("/fees", func(r chi.Router) {
				r.Get("/", h.FeeForm)
				r.Post("/", h.FeeSave)
			})
		})
	})

	return r
}

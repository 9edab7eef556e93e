package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	_ "github.com/magabrotheeeer/auth-rbac/docs"
	"github.com/magabrotheeeer/auth-rbac/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/auth-rbac/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/auth-rbac/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/auth-rbac/internal/http/handlers/demo"
	"github.com/magabrotheeeer/auth-rbac/internal/http/handlers/health"
	"github.com/magabrotheeeer/auth-rbac/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auth-rbac/internal/metrics"
	"github.com/magabrotheeeer/auth-rbac/internal/models"
)

// AuthService бизнес-логика, которую используют обработчики /auth.
type AuthService interface {
	register.Service
	login.Service
	me.Service
}

// RouterDeps зависимости HTTP-маршрутов.
type RouterDeps struct {
	Log          *slog.Logger
	Auth         AuthService
	Gate         middlewarectx.Gate
	DB           health.Pinger
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	LoginLimiter *rate.Limiter
}

// NewRouter собирает все маршруты приложения.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
	)

	authenticated := middlewarectx.Authenticate(d.Gate, d.Metrics, d.Log)
	requireRole := func(roles ...string) func(http.Handler) http.Handler {
		return middlewarectx.RequireRole(d.Gate, d.Metrics, d.Log, roles...)
	}

	r.Get("/", demo.Root)
	r.Get("/health", health.New(d.Log, d.DB).ServeHTTP)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", register.New(d.Log, d.Auth).ServeHTTP)

		loginHandler := http.Handler(login.New(d.Log, d.Auth))
		if d.LoginLimiter != nil {
			loginHandler = middlewarectx.RateLimitMiddleware(d.LoginLimiter, d.Log)(loginHandler)
		}
		r.Method(http.MethodPost, "/login", loginHandler)

		r.With(authenticated).Get("/me", me.New(d.Log, d.Auth).ServeHTTP)
	})

	r.With(authenticated).Get("/protected", demo.Protected)
	r.With(requireRole(models.RoleAdmin)).Get("/admin", demo.Admin)
	r.With(requireRole(models.RoleUser, models.RoleAdmin)).Get("/admin-user", demo.AdminOrUser)
	r.With(requireRole(models.RoleUser, models.RoleAdmin)).Get("/user/", demo.UserData)

	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/docs/*", httpSwagger.WrapHandler)

	return r
}

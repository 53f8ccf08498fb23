package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hartantowib/account-service/internal/metrics"
	"github.com/hartantowib/account-service/internal/token"
	"github.com/hartantowib/account-service/internal/transport/http/handlers"
	"github.com/hartantowib/account-service/internal/transport/http/middleware"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Auth   handlers.Authenticator
	Users  handlers.Profiler
	Tokens *token.Service
	Loader middleware.UserLoader
	Redis  *redis.Client
	Log    zerolog.Logger
}

// New assembles the HTTP router. Auth endpoints are rate limited per IP;
// everything under /api/user requires a bearer session.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Tracing(deps.Log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(chimw.Timeout(30 * time.Second))

	authHandler := handlers.NewAuthHandler(deps.Auth)
	userHandler := handlers.NewUserHandler(deps.Users)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		r.With(limit(deps.Redis, "sign_up", 10, time.Minute)).
			Post("/sign-up", authHandler.SignUp)
		r.With(limit(deps.Redis, "verify", 30, time.Minute)).
			Get("/verify/{token}", authHandler.Verify)
		r.With(limit(deps.Redis, "sign_in", 20, time.Minute)).
			Post("/sign-in", authHandler.SignIn)
		r.With(limit(deps.Redis, "forgot_password", 5, time.Minute)).
			Post("/forgot-password", authHandler.ForgotPassword)
		r.With(limit(deps.Redis, "reset_password", 10, time.Minute)).
			Post("/reset-password/{token}", authHandler.ResetPassword)
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Use(middleware.BearerAuth(deps.Tokens, deps.Loader))
		r.Use(middleware.RequireUser)

		r.Post("/", userHandler.CreateBiodata)
		r.Get("/", userHandler.GetBiodata)
		r.Patch("/", userHandler.UpdateBiodata)
		r.Patch("/avatar", userHandler.UploadAvatar)
	})

	return r
}

func limit(rdb *redis.Client, name string, capacity int, window time.Duration) func(http.Handler) http.Handler {
	if rdb == nil {
		// no limiter configured, pass through
		return func(next http.Handler) http.Handler { return next }
	}
	return middleware.RateLimit(rdb, middleware.RouteLimit{
		Name:     name,
		Capacity: capacity,
		Window:   window,
	}, middleware.PrincipalIP())
}

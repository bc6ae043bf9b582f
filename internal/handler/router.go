/*
Package handler provides the HTTP handlers and routing setup for the DuoChat server.

This file defines the main Router, applying necessary middleware like logging, CORS,
session extraction and IP-based rate limiting before delegating requests to specific handlers.
*/
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"duochat/internal/pkg/auth/jwt"
	"duochat/internal/pkg/limiter"
	"duochat/internal/pkg/logx"
	"duochat/internal/pkg/resp"
)

const (
	SignupRate  = 0.05
	SignupBurst = 3
	LoginRate   = 0.2
	LoginBurst  = 10
)

// Router sets up the main HTTP routing table (chi.Router) for the application.
// The rate limiters' cleanup goroutines stop when ctx is cancelled.
func Router(ctx context.Context, deps *AppDeps) http.Handler {
	signupLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(SignupRate), SignupBurst)
	loginLimiter := limiter.NewIPRateLimiter(ctx, rate.Limit(LoginRate), LoginBurst)

	r := chi.NewRouter()

	// Credentialed CORS cannot use a wildcard; in development any origin is reflected.
	corsOptions := cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if deps.Config.IsDevelopment() {
		corsOptions.AllowOriginFunc = func(string) bool { return true }
	}
	r.Use(cors.New(corsOptions).Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "DuoChat Server",
		}
		resp.RespondSuccess(w, r, data)
	})

	requireAuth := RequireAuth(deps)

	r.Group(func(api chi.Router) {
		api.Use(jwt.IdentityExtractorMiddleware(deps.Config.JWTSecret))

		api.Route("/auth", func(a chi.Router) {
			a.With(signupLimiter.Middleware).Post("/signup", HandleSignup(deps))
			a.With(loginLimiter.Middleware).Post("/login", HandleLogin(deps))
			a.Post("/logout", HandleLogout(deps))

			a.With(requireAuth).Put("/update-profile", HandleUpdateProfile(deps))
			a.With(requireAuth).Get("/check", HandleCheckAuth(deps))
		})

		api.Route("/messages", func(m chi.Router) {
			m.Use(requireAuth)

			m.Get("/users", HandleListUsers(deps))
			m.Get("/{id}", HandleGetConversation(deps))
			m.Post("/send/{id}", HandleSendMessage(deps))
		})
	})

	return r
}

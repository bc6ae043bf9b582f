package handler

import (
	"context"
	"net/http"

	"duochat/internal/app/user"
	"duochat/internal/pkg/auth/jwt"
	"duochat/internal/pkg/resp"
)

type contextKey string

const currentUserKey contextKey = "current_user"

// RequireAuth resolves the session attached by jwt.IdentityExtractorMiddleware into a user.
// Requests without a valid session are rejected before the handler runs.
func RequireAuth(deps *AppDeps) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := deps.Auth.ResolveSession(r.Context(), jwt.GetPayloadFromContext(r))
			if err != nil {
				resp.RespondErr(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), currentUserKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the user resolved by RequireAuth.
func CurrentUser(r *http.Request) *user.User {
	u, _ := r.Context().Value(currentUserKey).(*user.User)
	return u
}

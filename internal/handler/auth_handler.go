/*
Package handler provides HTTP handler functions for authentication, the user
directory and direct messages.
*/
package handler

import (
	"net/http"

	"duochat/internal/app/auth"
	"duochat/internal/pkg/auth/jwt"
	"duochat/internal/pkg/req"
	"duochat/internal/pkg/resp"
)

type SignupInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleSignup creates an account and starts a session for it.
func HandleSignup(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SignupInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, session, err := deps.Auth.Signup(r.Context(), auth.SignupInput{
			FullName: input.FullName,
			Email:    input.Email,
			Password: input.Password,
		})
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		jwt.SetSessionCookie(w, session.Token, session.ExpiresAt, deps.Config.SecureCookies())
		resp.RespondCreated(w, r, u.Public())
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies user credentials and starts a session.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input LoginInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, session, err := deps.Auth.Login(r.Context(), input.Email, input.Password)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		jwt.SetSessionCookie(w, session.Token, session.ExpiresAt, deps.Config.SecureCookies())
		resp.RespondSuccess(w, r, u.Public())
	}
}

// HandleLogout clears the session cookie. It always succeeds.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Auth.Logout(r.Context(), jwt.GetPayloadFromContext(r))

		jwt.ClearSessionCookie(w, deps.Config.SecureCookies())
		resp.RespondSuccess(w, r, map[string]string{"message": "Logged out successfully"})
	}
}

type UpdateProfileInput struct {
	ProfilePic string `json:"profilePic"`
}

// HandleUpdateProfile replaces the caller's profile picture.
func HandleUpdateProfile(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := CurrentUser(r)

		var input UpdateProfileInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		u, err := deps.Auth.UpdateProfile(r.Context(), current.ID, input.ProfilePic)
		if err != nil {
			resp.RespondErr(w, r, err)
			return
		}

		resp.RespondSuccess(w, r, u.Public())
	}
}

// HandleCheckAuth returns the user owning the current session.
func HandleCheckAuth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, CurrentUser(r).Public())
	}
}

/*
Package auth implements account signup and login, session issuance and validation,
logout, and profile picture updates.

Sessions are stateless signed tokens. A session is only issued after the user
record has been durably created. Logout clears the client's cookie; when a
deny-list is configured it also revokes the token id for its remaining lifetime.
*/
package auth

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"duochat/internal/app/media"
	"duochat/internal/app/user"
	"duochat/internal/pkg/auth/jwt"
	"duochat/internal/pkg/auth/password"
	"duochat/internal/pkg/denylist"
	"duochat/internal/pkg/errs"
	"duochat/internal/pkg/logx"
)

// MinPasswordLength is the minimum number of characters in a password.
const MinPasswordLength = 6

// UserStore is the credential store used by the service.
type UserStore interface {
	Create(ctx context.Context, fullName, email, passwordHash string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetByID(ctx context.Context, id string) (*user.User, error)
	UpdateProfilePic(ctx context.Context, id, url string) (*user.User, error)
}

// ImageUploader validates an inline image and returns its durable URL.
type ImageUploader interface {
	ValidateAndUpload(ctx context.Context, payload string, purpose media.Purpose) (string, error)
}

// Config holds the session settings.
type Config struct {
	JWTSecret  string
	SessionTTL time.Duration
}

// Session is a freshly issued session token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// SignupInput is the data required to create an account.
type SignupInput struct {
	FullName string
	Email    string
	Password string
}

// Service implements the account operations.
type Service struct {
	users    UserStore
	hasher   password.Hasher
	images   ImageUploader
	denyList denylist.DenyList

	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewService wires the service. A nil deny-list disables server-side revocation.
func NewService(users UserStore, hasher password.Hasher, images ImageUploader, deny denylist.DenyList, cfg Config) *Service {
	if deny == nil {
		deny = denylist.Noop{}
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = jwt.DefaultSessionExpiration
	}

	return &Service{
		users:    users,
		hasher:   hasher,
		images:   images,
		denyList: deny,
		secret:   cfg.JWTSecret,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Signup creates an account and issues a session for it.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*user.User, *Session, error) {
	fullName := strings.TrimSpace(in.FullName)
	email := strings.TrimSpace(in.Email)

	if fullName == "" || email == "" || in.Password == "" {
		return nil, nil, errs.NewError(errs.ErrMissingSignupFields)
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return nil, nil, errs.NewError(errs.ErrPasswordTooShort)
	}
	if len(in.Password) > password.MaxBytes {
		return nil, nil, errs.NewError(errs.ErrPasswordTooLong)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, errs.NewError(errs.ErrUnknown, err)
	}

	u, err := s.users.Create(ctx, fullName, email, hash)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			logx.WarnCtx(ctx, "Signup conflict: email already registered")
			return nil, nil, errs.NewError(errs.ErrEmailAlreadyExists)
		}
		return nil, nil, errs.NewError(errs.ErrUnknown, err)
	}

	session, err := s.issue(u.ID)
	if err != nil {
		return nil, nil, err
	}

	logx.InfoCtx(ctx, "User signed up", "user_id", u.ID)
	return u, session, nil
}

// Login verifies the credentials and issues a session. Unknown emails and wrong
// passwords fail with the same error after the same amount of work.
func (s *Service) Login(ctx context.Context, email, pw string) (*user.User, *Session, error) {
	email = strings.TrimSpace(email)

	var hash string
	u, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		hash = u.PasswordHash
	case errors.Is(err, user.ErrNotFound):
		u = nil
	default:
		return nil, nil, errs.NewError(errs.ErrUnknown, err)
	}

	if err := s.hasher.Verify(hash, pw); err != nil || u == nil {
		return nil, nil, errs.NewError(errs.ErrInvalidCredentials)
	}

	session, err := s.issue(u.ID)
	if err != nil {
		return nil, nil, err
	}

	logx.InfoCtx(ctx, "User logged in", "user_id", u.ID)
	return u, session, nil
}

// Logout revokes the session's token id when a deny-list is configured.
// It never fails: clearing the client cookie is the caller's job and always happens.
func (s *Service) Logout(ctx context.Context, payload *jwt.Payload) {
	if payload == nil {
		return
	}

	if err := s.denyList.Revoke(ctx, payload.Id, payload.Remaining(s.now())); err != nil {
		logx.ErrorCtx(ctx, err, "Failed to revoke session on logout", "user_id", payload.UserID)
	}
}

// ResolveSession turns a verified token payload into the user it belongs to.
func (s *Service) ResolveSession(ctx context.Context, payload *jwt.Payload) (*user.User, error) {
	if payload == nil || payload.UserID == "" {
		return nil, errs.NewError(errs.ErrUnauthorized)
	}

	revoked, err := s.denyList.IsRevoked(ctx, payload.Id)
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}
	if revoked {
		return nil, errs.NewError(errs.ErrUnauthorized)
	}

	u, err := s.users.GetByID(ctx, payload.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, errs.NewError(errs.ErrUnauthorized)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}
	return u, nil
}

// UpdateProfile uploads a new profile picture and stores its URL on the user.
// The user record is untouched when validation or upload fails.
func (s *Service) UpdateProfile(ctx context.Context, userID, imagePayload string) (*user.User, error) {
	if imagePayload == "" {
		return nil, errs.NewError(errs.ErrImageRequired)
	}

	url, err := s.images.ValidateAndUpload(ctx, imagePayload, media.PurposeProfile)
	if err != nil {
		return nil, err
	}

	u, err := s.users.UpdateProfilePic(ctx, userID, url)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, errs.NewError(errs.ErrUnauthorized)
		}
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	logx.InfoCtx(ctx, "Profile picture updated", "user_id", u.ID)
	return u, nil
}

func (s *Service) issue(userID string) (*Session, error) {
	payload := &jwt.Payload{UserID: userID}

	token, err := jwt.GenerateToken(payload, s.secret, s.ttl)
	if err != nil {
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	return &Session{Token: token, ExpiresAt: payload.ExpiresAtTime()}, nil
}

package jwt

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// Payload defines the claims carried by a session token.
// The session is stateless: validity is decided by signature and expiry alone,
// plus the optional deny-list consulted with the token id (StandardClaims.Id).
type Payload struct {
	// StandardClaims holds exp, iat, iss and the token id (jti).
	jwt.StandardClaims

	// UserID is the id of the authenticated user the session is bound to.
	UserID string `json:"uid"`
}

// ExpiresAtTime returns the expiry claim as a time.Time.
func (p *Payload) ExpiresAtTime() time.Time {
	return time.Unix(p.ExpiresAt, 0)
}

// Remaining returns how long the token stays valid, or zero if it has expired.
func (p *Payload) Remaining(now time.Time) time.Duration {
	d := p.ExpiresAtTime().Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	"duochat/internal/pkg/randx"
)

const (
	// DefaultSessionExpiration is the lifetime of a session token when none is configured.
	DefaultSessionExpiration = 7 * 24 * time.Hour

	// TokenIssuer identifies the issuer of the token.
	TokenIssuer = "DuoChat-Server"
)

// ErrInvalidToken is returned for tokens that fail signature, expiry or shape checks.
var ErrInvalidToken = errors.New("invalid or expired token")

// GenerateToken signs a new session token for payload, valid for duration.
// The standard claims of payload are overwritten, so the caller can read
// the resulting expiry and token id from it afterwards.
func GenerateToken(payload *Payload, secretKey string, duration time.Duration) (string, error) {
	if payload.UserID == "" {
		return "", errors.New("session payload has no user id")
	}

	now := time.Now()

	payload.StandardClaims = jwt.StandardClaims{
		Id:        randx.TokenID(),
		ExpiresAt: now.Add(duration).Unix(),
		IssuedAt:  now.Unix(),
		Issuer:    TokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)

	signed, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// ParseToken parses and validates the session token string using the provided secretKey.
func ParseToken(tokenString string, secretKey string) (*Payload, error) {
	claims := &Payload{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" || claims.Issuer != TokenIssuer {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rpupo63/hackathon-platform-backend/errs"
)

// TokenIssuer signs and checks HS256 access tokens. The subject is a user id.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// TTL is the lifetime used when Issue is called with a zero ttl.
func (i *TokenIssuer) TTL() time.Duration {
	return i.ttl
}

func (i *TokenIssuer) Issue(subject string, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = i.ttl
	}
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate returns the token subject. Expired tokens and tokens with a bad
// signature or shape fail with distinct unauthorized errors.
func (i *TokenIssuer) Validate(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", errs.NewExpiredTokenError().WithCause(err)
		}
		return "", errs.NewInvalidTokenError().WithCause(err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errs.NewInvalidTokenError()
	}
	return claims.Subject, nil
}

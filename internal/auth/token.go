// Package auth issues and verifies the bearer tokens that authenticate
// API requests and hashes user passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrUnauthorized       = errors.New("Unauthorized")
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrSecretMissing      = errors.New("a token secret is required")
)

// Principal identifies the user a request is made for.
type Principal struct {
	ID    uuid.UUID
	Email string
}

// Claims are the claims carried by an access token.
type Claims struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	Secret []byte
	TTL    time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewIssuer returns an issuer for the secret. Tokens expire after ttl.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrSecretMissing
	}

	return &Issuer{
		Secret: []byte(secret),
		TTL:    ttl,
	}, nil
}

func (i *Issuer) now() time.Time {
	if i.Now == nil {
		return time.Now()
	}
	return i.Now()
}

// Issue returns a signed token for the principal.
func (i *Issuer) Issue(p Principal) (string, error) {
	now := i.now()

	claims := Claims{
		ID:    p.ID,
		Email: p.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.TTL)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
}

// Verify parses the token and returns the principal it was issued for.
//
// Only HS256 signed tokens that have not expired are accepted.
func (i *Issuer) Verify(token string) (Principal, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return i.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	if claims.ID == uuid.Nil {
		return Principal{}, fmt.Errorf("%w: token has no user", ErrUnauthorized)
	}

	return Principal{ID: claims.ID, Email: claims.Email}, nil
}

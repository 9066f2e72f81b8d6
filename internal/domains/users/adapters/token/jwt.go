// Package token signs and verifies the HS256 bearer tokens consumed by the
// auth middleware.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avalder/go-bookstore-api/internal/domains/users/ports"
)

// DefaultTTL bounds token lifetime when the config does not override it.
const DefaultTTL = 24 * time.Hour

// Claims is the JWT payload: subject id plus the admin role flag.
type Claims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

var (
	_ ports.TokenIssuer   = (*JWT)(nil)
	_ ports.TokenVerifier = (*JWT)(nil)
)

// JWT issues and verifies HS256 tokens with a shared secret.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWT builds a signer/verifier. A non-positive ttl falls back to DefaultTTL.
func NewJWT(secret string, ttl time.Duration) (*JWT, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWT{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs the identity into a bearer token.
func (j *JWT) Issue(identity ports.Identity) (string, error) {
	now := j.now()
	claims := &Claims{
		IsAdmin: identity.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

// Verify parses and validates a token, returning the embedded identity.
func (j *JWT) Verify(tokenStr string) (ports.Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(j.now))
	if err != nil {
		return ports.Identity{}, ports.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return ports.Identity{}, ports.ErrInvalidToken
	}
	return ports.Identity{UserID: claims.Subject, IsAdmin: claims.IsAdmin}, nil
}

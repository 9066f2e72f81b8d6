package ports

import "errors"

var ErrInvalidToken = errors.New("invalid token")

// Identity is what a verified token resolves to: who the caller is and
// whether they hold the admin role.
type Identity struct {
	UserID  string
	IsAdmin bool
}

// TokenIssuer signs an identity into a bearer token.
type TokenIssuer interface {
	Issue(identity Identity) (string, error)
}

// TokenVerifier decodes a bearer token back into an identity, failing with
// ErrInvalidToken on expired, malformed, or mis-signed input.
type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

// Package token issues and validates the signed bearer tokens used as
// the sole authorization mechanism. Tokens are HS256 JWTs carrying the
// user id and email; there is no server-side session state and no
// revocation, so a token stays valid until its expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Validation failures are distinguished internally so the auth middleware
// can log the precise cause, but they all collapse to a single 401 at the
// HTTP boundary to avoid leaking auth internals.
var (
	ErrTokenMissing          = errors.New("token missing")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenInvalidSignature = errors.New("token signature invalid")
)

// Claims embeds the registered JWT claims plus the user identity fields
// the API layer needs on every authenticated request.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Identity is the validated result handed to request handlers.
type Identity struct {
	UserID string
	Email  string
}

// Service signs and verifies bearer tokens with a process-wide secret
// loaded once at startup. There is no key rotation.
type Service struct {
	secret   []byte
	validity time.Duration
}

// NewService creates a token service. validity is the window from
// issuance to expiry (7 days in the default configuration).
func NewService(secret string, validity time.Duration) *Service {
	return &Service{
		secret:   []byte(secret),
		validity: validity,
	}
}

// Issue creates a signed token embedding the user id and email with an
// expiry of now plus the configured validity.
func (s *Service) Issue(userID, email string) (string, error) {
	now := time.Now().UTC()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.validity)),
		},
	})
	return tok.SignedString(s.secret)
}

// Validate verifies the signature and expiry of a raw token string and
// returns the embedded identity. The returned error is always one of the
// ErrToken* kinds.
func (s *Service) Validate(raw string) (Identity, error) {
	if raw == "" {
		return Identity{}, ErrTokenMissing
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, ErrTokenInvalidSignature
		default:
			return Identity{}, ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return Identity{}, ErrTokenMalformed
	}

	return Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
	}, nil
}

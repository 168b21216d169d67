// Package token signs and verifies the service's bearer tokens. Access and
// refresh tokens are HS256 JWTs signed with two independent secrets.
package token

import (
	"errors"
	"fmt"
	"time"

	"chat-app/session-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const AccessTokenTTL = 24 * time.Hour

type Claims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func (c *Claims) Identity() domain.Identity {
	return domain.Identity{UserID: c.UserID, Email: c.Email}
}

type Kind int

const (
	Malformed Kind = iota + 1
	BadSignature
	Expired
)

func (k Kind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case BadSignature:
		return "bad signature"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

type VerificationError struct {
	Kind Kind
	Err  error
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("token %s: %v", e.Kind, e.Err)
}

func (e *VerificationError) Unwrap() error {
	return e.Err
}

type Signer struct {
	accessSecret  []byte
	refreshSecret []byte
	now           func() time.Time
}

type Option func(*Signer)

// WithClock overrides time.Now, for issuing tokens at a fixed instant.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) { s.now = now }
}

func NewSigner(accessSecret, refreshSecret string, opts ...Option) *Signer {
	s := &Signer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignAccess issues a 24h access token with a fresh jti, so two tokens for
// the same identity minted in the same instant never compare equal.
func (s *Signer) SignAccess(id domain.Identity) (string, error) {
	now := s.now()
	return sign(id, s.accessSecret, now, now.Add(AccessTokenTTL), uniqueID(now))
}

func (s *Signer) SignRefresh(id domain.Identity, ttl time.Duration) (string, error) {
	now := s.now()
	return sign(id, s.refreshSecret, now, now.Add(ttl), uuid.NewString())
}

func (s *Signer) VerifyAccess(tokenString string) (*Claims, error) {
	return Verify(tokenString, s.accessSecret)
}

func (s *Signer) VerifyRefresh(tokenString string) (*Claims, error) {
	return Verify(tokenString, s.refreshSecret)
}

// Verify parses tokenString and checks its HS256 signature against secret
// and its expiry. It has no side effects; failures are *VerificationError.
func Verify(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, classify(err)
	}
	if claims.UserID == "" {
		return nil, &VerificationError{Kind: Malformed, Err: errors.New("missing user id claim")}
	}
	return claims, nil
}

func classify(err error) *VerificationError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &VerificationError{Kind: Expired, Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return &VerificationError{Kind: BadSignature, Err: err}
	default:
		return &VerificationError{Kind: Malformed, Err: err}
	}
}

func sign(id domain.Identity, secret []byte, issuedAt, expiresAt time.Time, jti string) (string, error) {
	claims := Claims{
		UserID: id.UserID,
		Email:  id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func uniqueID(now time.Time) string {
	return fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString())
}

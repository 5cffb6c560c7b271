package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
)

// tokenPurpose namespaces verification tokens so they cannot be replayed as
// session cookies or any other signed artifact sharing the secret.
const tokenPurpose = "email-verification"

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and validates signed, time-limited email-verification
// tokens. It does not track consumption: single use is enforced by the store
// clearing the persisted token after a successful verify.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type verifyClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// Issue produces an opaque token binding the given email address.
func (s *TokenService) Issue(email string) (string, error) {
	now := s.now().UTC()
	claims := verifyClaims{
		Purpose: tokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate checks signature and age and returns the embedded email.
// Tampered and expired tokens are indistinguishable to the caller: both
// yield domain.ErrTokenInvalid.
func (s *TokenService) Validate(token string) (string, error) {
	claims := &verifyClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return "", domain.ErrTokenInvalid
	}
	if claims.Purpose != tokenPurpose || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}

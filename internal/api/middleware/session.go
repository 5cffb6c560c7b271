package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
)

// SessionCookie is the name of the signed HTTP-only cookie carrying the
// auth session. There is no server-side session storage.
const SessionCookie = "altar_session"

const sessionTTL = 24 * time.Hour

// SessionClaims is the identity assertion embedded in the cookie.
type SessionClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SessionManager signs and reads cookie-backed sessions with a fixed
// 24-hour expiration set at issuance.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: sessionTTL}
}

// Issue creates a session for the user and sets the cookie on the response.
func (m *SessionManager) Issue(c echo.Context, user *domain.User) error {
	now := time.Now().UTC()
	claims := SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(m.ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear expires the session cookie. Idempotent: clearing an absent session
// is fine.
func (m *SessionManager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read returns the caller's session claims, or an error when the cookie is
// absent, tampered with, or expired.
func (m *SessionManager) Read(c echo.Context) (*SessionClaims, error) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, http.ErrNoCookie
	}

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

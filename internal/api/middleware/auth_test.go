package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
)

func issueCookie(t *testing.T, m *SessionManager, user *domain.User) *http.Cookie {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := m.Issue(c, user); err != nil {
		t.Fatalf("issue session: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	return cookies[0]
}

func TestSessionManager_IssueAndRead(t *testing.T) {
	m := NewSessionManager("test-secret")
	user := &domain.User{ID: "64b1f0aa0000000000000001", Username: "ana", Role: domain.RoleUser}

	cookie := issueCookie(t, m, user)
	if cookie.Name != SessionCookie {
		t.Fatalf("unexpected cookie name %q", cookie.Name)
	}
	if !cookie.HttpOnly {
		t.Fatalf("session cookie must be http-only")
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	c := e.NewContext(req, httptest.NewRecorder())

	claims, err := m.Read(c)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "ana" || claims.Role != domain.RoleUser {
		t.Fatalf("claims do not match issued identity: %+v", claims)
	}
}

func TestSessionManager_ReadRejectsTampering(t *testing.T) {
	m := NewSessionManager("test-secret")
	user := &domain.User{ID: "64b1f0aa0000000000000001", Username: "ana", Role: domain.RoleUser}
	cookie := issueCookie(t, m, user)

	e := echo.New()

	t.Run("missing cookie", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if _, err := m.Read(c); err == nil {
			t.Fatalf("expected error without a cookie")
		}
	})

	t.Run("tampered token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: cookie.Value + "x"})
		c := e.NewContext(req, httptest.NewRecorder())
		if _, err := m.Read(c); err == nil {
			t.Fatalf("expected error for a tampered token")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewSessionManager("different-secret")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		c := e.NewContext(req, httptest.NewRecorder())
		if _, err := other.Read(c); err == nil {
			t.Fatalf("expected error for a token signed with another secret")
		}
	})
}

func TestSessionManager_Clear(t *testing.T) {
	m := NewSessionManager("test-secret")
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	m.Clear(c)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].Value != "" || cookies[0].MaxAge != -1 {
		t.Fatalf("clear must expire the cookie, got %+v", cookies[0])
	}
}

func TestRequireAuth(t *testing.T) {
	m := NewSessionManager("test-secret")
	user := &domain.User{ID: "64b1f0aa0000000000000001", Username: "ana", Role: domain.RoleUser}
	cookie := issueCookie(t, m, user)

	e := echo.New()
	handler := RequireAuth(m)(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(CtxUserID).(string))
	})

	t.Run("no session", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		err := handler(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %v", err)
		}
	})

	t.Run("valid session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Body.String() != user.ID {
			t.Fatalf("user id not injected into context, got %q", rec.Body.String())
		}
		if c.Get(CtxRole).(string) != domain.RoleUser {
			t.Fatalf("role not injected into context")
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()
	handler := RequireAdmin()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	t.Run("missing auth context", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		err := handler(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %v", err)
		}
	})

	t.Run("regular user", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.Set(CtxRole, domain.RoleUser)
		err := handler(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %v", err)
		}
	})

	t.Run("admin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		c.Set(CtxRole, domain.RoleAdmin)
		if err := handler(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})
}

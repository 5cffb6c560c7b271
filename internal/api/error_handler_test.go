package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
	"github.com/altarmaker/altarmaker-api/internal/core/service"
)

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest},
		{"password too long", domain.ErrPasswordTooLong, http.StatusBadRequest},
		{"bad token", domain.ErrTokenInvalid, http.StatusBadRequest},
		{"malformed id", domain.ErrInvalidID, http.StatusBadRequest},
		{"self delete", domain.ErrSelfDelete, http.StatusBadRequest},
		{"self promote", domain.ErrSelfPromote, http.StatusBadRequest},
		{"self demote", domain.ErrSelfDemote, http.StatusBadRequest},
		{"already admin", domain.ErrAlreadyAdmin, http.StatusBadRequest},
		{"already user", domain.ErrAlreadyUser, http.StatusBadRequest},
		{"feedback invalid", service.ErrFeedbackInvalid, http.StatusBadRequest},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"role mismatch", &domain.RoleMismatchError{Expected: domain.RoleAdmin}, http.StatusUnauthorized},
		{"admin self-registration", domain.ErrAdminRegistration, http.StatusForbidden},
		{"inactive account", domain.ErrAccountInactive, http.StatusForbidden},
		{"unverified email", domain.ErrEmailNotVerified, http.StatusForbidden},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"session not found", domain.ErrSessionNotFound, http.StatusNotFound},
		{"duplicate user", domain.ErrUserExists, http.StatusConflict},
		{"echo error passthrough", echo.NewHTTPError(http.StatusTeapot, "short and stout"), http.StatusTeapot},
		{"unexpected error", errors.New("mongo gave up"), http.StatusInternalServerError},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp struct {
				Error string `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if resp.Error == "" {
				t.Fatalf("empty error message")
			}
		})
	}
}

func TestHTTPErrorHandler_HidesInternalDetails(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	handler(errors.New("dial tcp 10.0.0.5:27017: connection refused"), c)

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if resp.Error != "internal server error" {
		t.Fatalf("internal details leaked: %q", resp.Error)
	}
}

func TestHTTPErrorHandler_RoleMismatchNamesRole(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), rec)

	handler(&domain.RoleMismatchError{Expected: domain.RoleAdmin}, c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if resp.Error != "invalid role. expected admin" {
		t.Fatalf("unexpected message: %q", resp.Error)
	}
}

package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/altarmaker/altarmaker-api/internal/api/metrics"
	"github.com/altarmaker/altarmaker-api/internal/api/middleware"
	"github.com/altarmaker/altarmaker-api/internal/core/domain"
	"github.com/altarmaker/altarmaker-api/internal/core/ports"
)

// AuthHandler serves registration, verification, login and session
// introspection.
type AuthHandler struct {
	service  ports.AuthService
	sessions *middleware.SessionManager
}

func NewAuthHandler(service ports.AuthService, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{service: service, sessions: sessions}
}

// Register creates a new account and dispatches the verification mail.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Username:      req.Username,
		Password:      req.Password,
		Email:         req.Email,
		RequestedRole: req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		case errors.Is(err, domain.ErrAdminRegistration):
			metrics.RegistrationsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	if result.EmailSent {
		metrics.VerificationMailsTotal.WithLabelValues("sent").Inc()
	} else {
		metrics.VerificationMailsTotal.WithLabelValues("failed").Inc()
	}

	// A fresh session is issued right away; re-login still requires a
	// verified address.
	if err := h.sessions.Issue(c, result.User); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		Message:               "User registered successfully",
		User:                  result.User,
		VerificationEmailSent: result.EmailSent,
	})
}

// VerifyEmail consumes the token from the verification link.
//
// @Summary      Verify an email address
// @Tags         auth
// @Produce      json
// @Param        token  query     string  true  "Verification token"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Router       /api/auth/verify-email [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "verification token is required")
	}

	if _, err := h.service.VerifyEmail(c.Request().Context(), token); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Email verified successfully"})
}

// ResendVerification re-issues a verification token for an unverified
// account.
//
// @Summary      Resend the verification mail
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resendVerificationRequest  true  "Account email"
// @Success      200   {object}  registerResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/auth/resend-verification [post]
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req resendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.ResendVerification(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	switch {
	case result.AlreadyVerified:
		return c.JSON(http.StatusOK, messageResponse{Message: "Email is already verified"})
	case result.Throttled:
		metrics.VerificationMailsTotal.WithLabelValues("throttled").Inc()
		return c.JSON(http.StatusOK, registerResponse{
			Message:               "Verification email was sent recently, please wait before retrying",
			VerificationEmailSent: false,
		})
	case result.EmailSent:
		metrics.VerificationMailsTotal.WithLabelValues("sent").Inc()
	default:
		metrics.VerificationMailsTotal.WithLabelValues("failed").Inc()
	}

	return c.JSON(http.StatusOK, registerResponse{
		Message:               "Verification email resent",
		VerificationEmailSent: result.EmailSent,
	})
}

// Login authenticates by username or email and issues the session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	expectedRole := req.Role
	if expectedRole == "" {
		expectedRole = domain.RoleUser
	}

	user, err := h.service.Login(c.Request().Context(), ports.LoginInput{
		Login:        req.Username,
		Password:     req.Password,
		ExpectedRole: expectedRole,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	if err := h.sessions.Issue(c, user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Message: "Login successful", User: user})
}

func loginOutcome(err error) string {
	var rm *domain.RoleMismatchError
	switch {
	case errors.As(err, &rm):
		return "role_mismatch"
	case errors.Is(err, domain.ErrAccountInactive):
		return "inactive"
	case errors.Is(err, domain.ErrEmailNotVerified):
		return "unverified"
	default:
		return "invalid_credentials"
	}
}

// Logout destroys the current session. Idempotent.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Clear(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logout successful"})
}

// Status introspects the caller's session without requiring one.
//
// @Summary      Session status
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authStatusResponse
// @Failure      401  {object}  authStatusResponse
// @Router       /api/auth/status [get]
func (h *AuthHandler) Status(c echo.Context) error {
	claims, err := h.sessions.Read(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, authStatusResponse{Authenticated: false})
	}
	return c.JSON(http.StatusOK, authStatusResponse{
		Authenticated: true,
		User: &sessionUser{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		},
	})
}

package handler

import "github.com/altarmaker/altarmaker-api/internal/core/domain"

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Role     string `json:"role"`
}

type registerResponse struct {
	Message               string       `json:"message"`
	User                  *domain.User `json:"user"`
	VerificationEmailSent bool         `json:"verification_email_sent"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	// Role defaults to "user" so the plain login form cannot be used to
	// enter the admin panel.
	Role string `json:"role"`
}

type loginResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type resendVerificationRequest struct {
	Email string `json:"email" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type sessionUser struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type authStatusResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *sessionUser `json:"user"`
}

package ports

import (
	"context"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
)

// RegisterInput carries the public registration payload. RequestedRole is
// kept only to reject admin requests; the stored role is always "user".
type RegisterInput struct {
	Username      string
	Password      string
	Email         string
	RequestedRole string
}

// RegisterResult reports the created user plus whether the verification
// mail actually went out.
type RegisterResult struct {
	User      *domain.User
	EmailSent bool
}

// LoginInput carries the credentials. Login matches username or email.
// ExpectedRole, when non-empty, must equal the stored role.
type LoginInput struct {
	Login        string
	Password     string
	ExpectedRole string
}

// ResendResult distinguishes the three benign outcomes of a resend request.
type ResendResult struct {
	AlreadyVerified bool
	Throttled       bool
	EmailSent       bool
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, in LoginInput) (*domain.User, error)
	VerifyEmail(ctx context.Context, token string) (*domain.User, error)
	ResendVerification(ctx context.Context, email string) (*ResendResult, error)
}

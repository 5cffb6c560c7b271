package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. The HTTP layer maps each of these
// to a deterministic status code; the message text is what clients see.
var (
	ErrUserExists         = errors.New("user with this email or username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("please enter a valid email address")
	ErrAdminRegistration  = errors.New("admin registration is not allowed through the public API")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrEmailNotVerified   = errors.New("email address is not verified")
	ErrTokenInvalid       = errors.New("invalid or expired verification token")
	ErrPasswordTooLong    = errors.New("password must not exceed 72 characters")
	ErrForbidden          = errors.New("access forbidden")

	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidID       = errors.New("invalid id")

	ErrSelfDelete   = errors.New("cannot delete your own account")
	ErrSelfPromote  = errors.New("you are already an admin")
	ErrSelfDemote   = errors.New("you cannot demote yourself")
	ErrAlreadyAdmin = errors.New("user is already an admin")
	ErrAlreadyUser  = errors.New("user is already a regular user")
)

// RoleMismatchError is returned when login succeeds credential-wise but the
// caller asked for a different role. Unlike the other credential failures it
// deliberately names the expected role.
type RoleMismatchError struct {
	Expected string
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("invalid role. expected %s", e.Expected)
}

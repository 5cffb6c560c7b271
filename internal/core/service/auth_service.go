package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
	"github.com/altarmaker/altarmaker-api/internal/core/ports"
)

// AuthService implements registration, login and the email-verification
// lifecycle.
type AuthService struct {
	users    ports.UserRepository
	tokens   *TokenService
	mailer   ports.Mailer
	throttle ports.MailThrottle
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens *TokenService, mailer ports.Mailer, throttle ports.MailThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, mailer: mailer, throttle: throttle, logger: logger}
}

// Register creates an unverified account. The stored role is always "user";
// asking for admin is rejected outright. Verification mail is best-effort
// and its outcome is reported, not raised.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return nil, domain.ErrInvalidEmail
	}
	if !strings.Contains(in.Email, "@") || !strings.Contains(in.Email, ".") {
		return nil, domain.ErrInvalidEmail
	}
	if in.RequestedRole == domain.RoleAdmin {
		return nil, domain.ErrAdminRegistration
	}

	email := strings.ToLower(in.Email)
	exists, err := s.users.ExistsByUsernameOrEmail(ctx, in.Username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, domain.ErrPasswordTooLong
		}
		return nil, err
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:          in.Username,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              domain.RoleUser,
		EmailVerified:     false,
		VerificationToken: token,
		IsActive:          true,
		CreatedAt:         time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	sent := true
	if err := s.mailer.SendVerification(ctx, email, token); err != nil {
		sent = false
		s.logger.Warn().Err(err).Str("email", email).Msg("verification mail failed")
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return &ports.RegisterResult{User: created, EmailSent: sent}, nil
}

// Login authenticates by username or email. Unknown user, wrong password
// and role mismatch are checked in that order; the first two collapse into
// the same generic error so callers cannot tell which failed.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.User, error) {
	if in.Login == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByLogin(ctx, in.Login)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if in.ExpectedRole != "" && user.Role != in.ExpectedRole {
		return nil, &domain.RoleMismatchError{Expected: in.ExpectedRole}
	}

	if !user.IsActive {
		return nil, domain.ErrAccountInactive
	}
	if !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	s.logger.Info().Str("username", user.Username).Str("role", user.Role).Msg("login")
	return user, nil
}

// VerifyEmail consumes a verification token. The stored token must match
// exactly, so a token that was already consumed or superseded fails with
// not-found even though its signature still checks out.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmailAndToken(ctx, email, token)
	if err != nil {
		return nil, err
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return nil, err
	}
	user.EmailVerified = true
	user.VerificationToken = ""

	// Welcome mail is fire-and-forget.
	if err := s.mailer.SendWelcome(ctx, user.Email, user.Username); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("welcome mail failed")
	}

	s.logger.Info().Str("username", user.Username).Msg("email verified")
	return user, nil
}

// ResendVerification re-issues a token, implicitly invalidating the previous
// one since verification requires an exact token match.
func (s *AuthService) ResendVerification(ctx context.Context, email string) (*ports.ResendResult, error) {
	email = strings.ToLower(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.EmailVerified {
		return &ports.ResendResult{AlreadyVerified: true}, nil
	}

	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, email)
		if err != nil {
			s.logger.Warn().Err(err).Msg("mail throttle check failed")
		} else if !ok {
			return &ports.ResendResult{Throttled: true}, nil
		}
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return nil, err
	}
	if err := s.users.SetVerificationToken(ctx, user.ID, token); err != nil {
		return nil, err
	}

	sent := true
	if err := s.mailer.SendVerification(ctx, email, token); err != nil {
		sent = false
		s.logger.Warn().Err(err).Str("email", email).Msg("verification mail failed")
	}
	return &ports.ResendResult{EmailSent: sent}, nil
}

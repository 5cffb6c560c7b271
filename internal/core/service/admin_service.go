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

const recentSessionsLimit = 10

// AdminService implements the user-management panel.
type AdminService struct {
	users    ports.UserRepository
	sessions ports.DesignSessionRepository
	logger   zerolog.Logger
}

func NewAdminService(users ports.UserRepository, sessions ports.DesignSessionRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{users: users, sessions: sessions, logger: logger}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// CreateAdmin creates a verified, active admin account and records which
// admin performed the creation.
func (s *AdminService) CreateAdmin(ctx context.Context, in ports.CreateAdminInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return nil, domain.ErrInvalidEmail
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

	user := &domain.User{
		Username:      in.Username,
		Email:         email,
		PasswordHash:  string(hash),
		Role:          domain.RoleAdmin,
		EmailVerified: true,
		IsActive:      true,
		CreatedBy:     in.CreatedBy,
		CreatedAt:     time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("username", created.Username).Str("created_by", in.CreatedBy).Msg("admin user created")
	return created, nil
}

// DeleteUser removes the target account and cascades its design sessions.
// Wall-design snapshots are retained. The two deletes are independent
// operations; a crash in between leaves orphaned sessions.
func (s *AdminService) DeleteUser(ctx context.Context, callerID, targetID string) error {
	if targetID == callerID {
		return domain.ErrSelfDelete
	}

	if err := s.users.Delete(ctx, targetID); err != nil {
		return err
	}

	n, err := s.sessions.DeleteByUser(ctx, targetID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", targetID).Msg("session cascade failed")
		return err
	}

	s.logger.Info().Str("user_id", targetID).Int64("sessions_removed", n).Msg("user deleted")
	return nil
}

func (s *AdminService) Promote(ctx context.Context, callerID, targetID string) error {
	if targetID == callerID {
		return domain.ErrSelfPromote
	}
	changed, err := s.users.SetRole(ctx, targetID, domain.RoleAdmin)
	if err != nil {
		return err
	}
	if !changed {
		return domain.ErrAlreadyAdmin
	}
	s.logger.Info().Str("user_id", targetID).Msg("user promoted to admin")
	return nil
}

func (s *AdminService) Demote(ctx context.Context, callerID, targetID string) error {
	if targetID == callerID {
		return domain.ErrSelfDemote
	}
	changed, err := s.users.SetRole(ctx, targetID, domain.RoleUser)
	if err != nil {
		return err
	}
	if !changed {
		return domain.ErrAlreadyUser
	}
	s.logger.Info().Str("user_id", targetID).Msg("admin demoted to user")
	return nil
}

func (s *AdminService) Stats(ctx context.Context) (*ports.AdminStats, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalSessions, err := s.sessions.Count(ctx)
	if err != nil {
		return nil, err
	}
	admins, err := s.users.CountByRole(ctx, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}
	regular, err := s.users.CountByRole(ctx, domain.RoleUser)
	if err != nil {
		return nil, err
	}
	recent, err := s.sessions.Recent(ctx, recentSessionsLimit)
	if err != nil {
		return nil, err
	}

	return &ports.AdminStats{
		TotalUsers:     totalUsers,
		TotalSessions:  totalSessions,
		AdminUsers:     admins,
		RegularUsers:   regular,
		RecentSessions: recent,
	}, nil
}

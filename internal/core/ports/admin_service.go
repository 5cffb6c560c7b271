package ports

import (
	"context"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
)

// CreateAdminInput carries the admin-creation payload. CreatedBy records
// the id of the admin performing the action.
type CreateAdminInput struct {
	Username  string
	Password  string
	Email     string
	CreatedBy string
}

// AdminStats aggregates the counters shown on the admin dashboard.
type AdminStats struct {
	TotalUsers     int64
	TotalSessions  int64
	AdminUsers     int64
	RegularUsers   int64
	RecentSessions []domain.DesignSession
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateAdmin(ctx context.Context, in CreateAdminInput) (*domain.User, error)
	// DeleteUser refuses self-deletion and cascades the target's design
	// sessions. Wall-design snapshots are intentionally retained.
	DeleteUser(ctx context.Context, callerID, targetID string) error
	Promote(ctx context.Context, callerID, targetID string) error
	Demote(ctx context.Context, callerID, targetID string) error
	Stats(ctx context.Context) (*AdminStats, error)
}

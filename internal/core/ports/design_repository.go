package ports

import (
	"context"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
)

// WallDesignRepository stores append-only canvas snapshots.
type WallDesignRepository interface {
	Insert(ctx context.Context, snap *domain.WallDesignSnapshot) error
	// LatestByUser returns the most recently created snapshot, or
	// domain.ErrSessionNotFound when the user has never saved.
	LatestByUser(ctx context.Context, userID string) (*domain.WallDesignSnapshot, error)
}

// DesignSessionRepository stores named save-slots. Every id-taking operation
// is scoped by (id, userID) so cross-owner access surfaces as not-found.
type DesignSessionRepository interface {
	Insert(ctx context.Context, s *domain.DesignSession) (*domain.DesignSession, error)
	ListByUser(ctx context.Context, userID string) ([]domain.DesignSession, error)
	FindByIDAndUser(ctx context.Context, id, userID string) (*domain.DesignSession, error)
	UpdateByIDAndUser(ctx context.Context, id, userID string, s *domain.DesignSession) error
	DeleteByIDAndUser(ctx context.Context, id, userID string) error
	// DeleteByUser removes every session owned by userID, returning the count.
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, limit int64) ([]domain.DesignSession, error)
}

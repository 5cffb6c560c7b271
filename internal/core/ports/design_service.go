package ports

import (
	"context"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
)

// SaveWallDesignInput is the full canvas state sent on every save.
type SaveWallDesignInput struct {
	Walls          map[string]domain.Wall
	RoomType       string
	RoomDimensions domain.RoomDimensions
	SelectedWall   string
}

// DesignSessionInput is the payload for creating or fully replacing a
// named design session.
type DesignSessionInput struct {
	Name           string
	RoomType       string
	RoomDimensions domain.RoomDimensions
	Walls          map[string]domain.Wall
	SelectedWall   string
}

type DesignService interface {
	LatestWallDesign(ctx context.Context, userID string) (*domain.WallDesignSnapshot, error)
	SaveWallDesign(ctx context.Context, userID string, in SaveWallDesignInput) error

	ListSessions(ctx context.Context, userID string) ([]domain.DesignSession, error)
	CreateSession(ctx context.Context, userID string, in DesignSessionInput) (*domain.DesignSession, error)
	GetSession(ctx context.Context, userID, id string) (*domain.DesignSession, error)
	UpdateSession(ctx context.Context, userID, id string, in DesignSessionInput) error
	DeleteSession(ctx context.Context, userID, id string) error
}

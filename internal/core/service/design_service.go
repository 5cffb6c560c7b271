package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
	"github.com/altarmaker/altarmaker-api/internal/core/ports"
)

// DesignService covers both design entities: append-only wall-design
// snapshots and named, editable design sessions.
type DesignService struct {
	snapshots ports.WallDesignRepository
	sessions  ports.DesignSessionRepository
	logger    zerolog.Logger
}

func NewDesignService(snapshots ports.WallDesignRepository, sessions ports.DesignSessionRepository, logger zerolog.Logger) *DesignService {
	return &DesignService{snapshots: snapshots, sessions: sessions, logger: logger}
}

// LatestWallDesign returns the newest snapshot, with absent walls filled in
// as empty. A user who has never saved gets the fixed default shape.
func (s *DesignService) LatestWallDesign(ctx context.Context, userID string) (*domain.WallDesignSnapshot, error) {
	snap, err := s.snapshots.LatestByUser(ctx, userID)
	if err != nil {
		if err == domain.ErrSessionNotFound {
			return domain.DefaultSnapshot(), nil
		}
		return nil, err
	}
	snap.Walls = domain.FillMissingWalls(snap.Walls)
	return snap, nil
}

// SaveWallDesign inserts a new snapshot. Walls without content are dropped
// before storage; saves never update in place.
func (s *DesignService) SaveWallDesign(ctx context.Context, userID string, in ports.SaveWallDesignInput) error {
	now := time.Now().UTC()
	snap := &domain.WallDesignSnapshot{
		UserID:         userID,
		Walls:          domain.FilterWalls(in.Walls),
		RoomType:       in.RoomType,
		RoomDimensions: in.RoomDimensions,
		SelectedWall:   in.SelectedWall,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.snapshots.Insert(ctx, snap); err != nil {
		return err
	}
	s.logger.Debug().Str("user_id", userID).Int("walls", len(snap.Walls)).Msg("wall design saved")
	return nil
}

func (s *DesignService) ListSessions(ctx context.Context, userID string) ([]domain.DesignSession, error) {
	return s.sessions.ListByUser(ctx, userID)
}

func (s *DesignService) CreateSession(ctx context.Context, userID string, in ports.DesignSessionInput) (*domain.DesignSession, error) {
	now := time.Now().UTC()
	sess := &domain.DesignSession{
		UserID:         userID,
		Name:           in.Name,
		RoomType:       in.RoomType,
		RoomDimensions: in.RoomDimensions,
		Walls:          in.Walls,
		SelectedWall:   in.SelectedWall,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return s.sessions.Insert(ctx, sess)
}

func (s *DesignService) GetSession(ctx context.Context, userID, id string) (*domain.DesignSession, error) {
	return s.sessions.FindByIDAndUser(ctx, id, userID)
}

// UpdateSession fully replaces the editable fields of a session the caller
// owns. Someone else's session looks identical to a missing one.
func (s *DesignService) UpdateSession(ctx context.Context, userID, id string, in ports.DesignSessionInput) error {
	sess := &domain.DesignSession{
		Name:           in.Name,
		RoomType:       in.RoomType,
		RoomDimensions: in.RoomDimensions,
		Walls:          in.Walls,
		SelectedWall:   in.SelectedWall,
		UpdatedAt:      time.Now().UTC(),
	}
	return s.sessions.UpdateByIDAndUser(ctx, id, userID, sess)
}

func (s *DesignService) DeleteSession(ctx context.Context, userID, id string) error {
	return s.sessions.DeleteByIDAndUser(ctx, id, userID)
}

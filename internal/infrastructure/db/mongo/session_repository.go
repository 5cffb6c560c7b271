package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
)

const sessionsCollection = "sessions"

// DesignSessionRepository stores named save-slots. All single-document
// operations filter on both _id and user_id so another user's session is
// indistinguishable from a missing one.
type DesignSessionRepository struct {
	coll *mongo.Collection
}

func NewDesignSessionRepository(db *mongo.Database) *DesignSessionRepository {
	return &DesignSessionRepository{coll: db.Collection(sessionsCollection)}
}

type mongoDesignSession struct {
	ID             primitive.ObjectID     `bson:"_id,omitempty"`
	UserID         string                 `bson:"user_id"`
	SessionName    string                 `bson:"session_name"`
	RoomType       string                 `bson:"room_type"`
	RoomDimensions domain.RoomDimensions  `bson:"room_dimensions"`
	WallDesigns    map[string]domain.Wall `bson:"wall_designs"`
	SelectedWall   string                 `bson:"selected_wall"`
	CreatedAt      time.Time              `bson:"created_at"`
	UpdatedAt      time.Time              `bson:"updated_at"`
}

func (md *mongoDesignSession) toDomain() *domain.DesignSession {
	return &domain.DesignSession{
		ID:             md.ID.Hex(),
		UserID:         md.UserID,
		Name:           md.SessionName,
		RoomType:       md.RoomType,
		RoomDimensions: md.RoomDimensions,
		Walls:          md.WallDesigns,
		SelectedWall:   md.SelectedWall,
		CreatedAt:      md.CreatedAt,
		UpdatedAt:      md.UpdatedAt,
	}
}

func (r *DesignSessionRepository) Insert(ctx context.Context, s *domain.DesignSession) (*domain.DesignSession, error) {
	doc := mongoDesignSession{
		UserID:         s.UserID,
		SessionName:    s.Name,
		RoomType:       s.RoomType,
		RoomDimensions: s.RoomDimensions,
		WallDesigns:    s.Walls,
		SelectedWall:   s.SelectedWall,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	created := *s
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *DesignSessionRepository) ListByUser(ctx context.Context, userID string) ([]domain.DesignSession, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer cur.Close(ctx)
	return decodeSessions(ctx, cur)
}

func (r *DesignSessionRepository) FindByIDAndUser(ctx context.Context, id, userID string) (*domain.DesignSession, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var doc mongoDesignSession
	err = r.coll.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *DesignSessionRepository) UpdateByIDAndUser(ctx context.Context, id, userID string, s *domain.DesignSession) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "user_id": userID},
		bson.M{"$set": bson.M{
			"session_name":    s.Name,
			"room_type":       s.RoomType,
			"room_dimensions": s.RoomDimensions,
			"wall_designs":    s.Walls,
			"selected_wall":   s.SelectedWall,
			"updated_at":      s.UpdatedAt,
		}},
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *DesignSessionRepository) DeleteByIDAndUser(ctx context.Context, id, userID string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "user_id": userID})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (r *DesignSessionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *DesignSessionRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}

func (r *DesignSessionRepository) Recent(ctx context.Context, limit int64) ([]domain.DesignSession, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: %w", err)
	}
	defer cur.Close(ctx)
	return decodeSessions(ctx, cur)
}

func (r *DesignSessionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	return err
}

func decodeSessions(ctx context.Context, cur *mongo.Cursor) ([]domain.DesignSession, error) {
	sessions := []domain.DesignSession{}
	for cur.Next(ctx) {
		var doc mongoDesignSession
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode session: %w", err)
		}
		sessions = append(sessions, *doc.toDomain())
	}
	return sessions, cur.Err()
}

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

const wallDesignsCollection = "wall_designs"

// WallDesignRepository stores canvas snapshots. Every save inserts a new
// document; reads pick the newest by created_at.
type WallDesignRepository struct {
	coll *mongo.Collection
}

func NewWallDesignRepository(db *mongo.Database) *WallDesignRepository {
	return &WallDesignRepository{coll: db.Collection(wallDesignsCollection)}
}

type mongoSnapshot struct {
	ID             primitive.ObjectID     `bson:"_id,omitempty"`
	UserID         string                 `bson:"user_id"`
	WallDesigns    map[string]domain.Wall `bson:"wall_designs"`
	RoomType       string                 `bson:"room_type"`
	RoomDimensions domain.RoomDimensions  `bson:"room_dimensions"`
	SelectedWall   string                 `bson:"selected_wall"`
	CreatedAt      time.Time              `bson:"created_at"`
	UpdatedAt      time.Time              `bson:"updated_at"`
}

func (r *WallDesignRepository) Insert(ctx context.Context, snap *domain.WallDesignSnapshot) error {
	doc := mongoSnapshot{
		UserID:         snap.UserID,
		WallDesigns:    snap.Walls,
		RoomType:       snap.RoomType,
		RoomDimensions: snap.RoomDimensions,
		SelectedWall:   snap.SelectedWall,
		CreatedAt:      snap.CreatedAt,
		UpdatedAt:      snap.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert wall design: %w", err)
	}
	return nil
}

func (r *WallDesignRepository) LatestByUser(ctx context.Context, userID string) (*domain.WallDesignSnapshot, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var doc mongoSnapshot
	err := r.coll.FindOne(ctx, bson.M{"user_id": userID}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find wall design: %w", err)
	}

	return &domain.WallDesignSnapshot{
		ID:             doc.ID.Hex(),
		UserID:         doc.UserID,
		Walls:          doc.WallDesigns,
		RoomType:       doc.RoomType,
		RoomDimensions: doc.RoomDimensions,
		SelectedWall:   doc.SelectedWall,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}, nil
}

func (r *WallDesignRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

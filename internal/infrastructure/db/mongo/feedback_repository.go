package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
)

const feedbackCollection = "feedback"

type FeedbackRepository struct {
	coll *mongo.Collection
}

func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{coll: db.Collection(feedbackCollection)}
}

type mongoFeedback struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Email    string             `bson:"email,omitempty"`
	Message  string             `bson:"message"`
	Rating   int                `bson:"rating"`
	Date     time.Time          `bson:"date"`
	Approved bool               `bson:"approved"`
}

func (r *FeedbackRepository) Insert(ctx context.Context, fb *domain.Feedback) (*domain.Feedback, error) {
	doc := mongoFeedback{
		Name:     fb.Name,
		Email:    fb.Email,
		Message:  fb.Message,
		Rating:   fb.Rating,
		Date:     fb.Date,
		Approved: fb.Approved,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert feedback: %w", err)
	}

	created := *fb
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// ListByDateDesc excludes email at the projection level so the write-only
// field cannot leak into a read path.
func (r *FeedbackRepository) ListByDateDesc(ctx context.Context) ([]domain.Feedback, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetProjection(bson.M{"email": 0})

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer cur.Close(ctx)

	entries := []domain.Feedback{}
	for cur.Next(ctx) {
		var doc mongoFeedback
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode feedback: %w", err)
		}
		entries = append(entries, domain.Feedback{
			Name:     doc.Name,
			Message:  doc.Message,
			Rating:   doc.Rating,
			Date:     doc.Date,
			Approved: doc.Approved,
		})
	}
	return entries, cur.Err()
}

func (r *FeedbackRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: 1}}},
		{Keys: bson.D{{Key: "approved", Value: 1}}},
	})
	return err
}

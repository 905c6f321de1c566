package repositories

import (
	"context"
	"time"

	"github.com/anonto42/linkfeed/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LinkEventRepository stores the audit trail of link mutations
type LinkEventRepository interface {
	Record(ctx context.Context, event *models.LinkEvent) error
	ListByLink(ctx context.Context, linkID uint, limit int64) ([]models.LinkEvent, error)
}

// MongoLinkEventRepository implements LinkEventRepository for MongoDB
type MongoLinkEventRepository struct {
	collection *mongo.Collection
}

// NewMongoLinkEventRepository creates a new MongoLinkEventRepository
func NewMongoLinkEventRepository(db *mongo.Database) *MongoLinkEventRepository {
	return &MongoLinkEventRepository{collection: db.Collection("link_events")}
}

// Record inserts an event, stamping it with an ID and, if unset, the current time
func (r *MongoLinkEventRepository) Record(ctx context.Context, event *models.LinkEvent) error {
	event.ID = primitive.NewObjectID()
	if event.At.IsZero() {
		event.At = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// ListByLink retrieves the most recent events of a link, newest first
func (r *MongoLinkEventRepository) ListByLink(ctx context.Context, linkID uint, limit int64) ([]models.LinkEvent, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"link_id": linkID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []models.LinkEvent
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// NopLinkEventRepository drops every event; it is used when no MongoDB is configured
type NopLinkEventRepository struct{}

func (NopLinkEventRepository) Record(context.Context, *models.LinkEvent) error { return nil }

func (NopLinkEventRepository) ListByLink(context.Context, uint, int64) ([]models.LinkEvent, error) {
	return nil, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/mdcampos/wants-api/internal/apperrors"
	"github.com/mdcampos/wants-api/internal/models"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WantRepository handles database operations related to wants. It only
// translates between the Want entity and its document representation;
// business rules live in the service layer.
type WantRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewWantRepository creates a new instance of WantRepository.
func NewWantRepository(db *mongo.Database) *WantRepository {
	return &WantRepository{
		client:     db.Client(),
		collection: db.Collection("wants"),
	}
}

// CreateWant inserts a new want and returns it with the server-assigned id.
func (r *WantRepository) CreateWant(ctx context.Context, want *models.Want) (*models.Want, error) {
	now := time.Now()
	want.CreatedAt = now
	want.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, want)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert want into database")
		return nil, fmt.Errorf("failed to insert want: %w", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logrus.Error("Failed to cast inserted ID to ObjectID")
		return nil, fmt.Errorf("failed to cast inserted ID")
	}

	want.ID = insertedID
	return want, nil
}

// GetWantByID retrieves a want by its ID. A missing document is not an
// error: it is returned as (nil, nil) and callers decide what absence means.
func (r *WantRepository) GetWantByID(ctx context.Context, id primitive.ObjectID) (*models.Want, error) {
	var want models.Want
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&want); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get want: %w", err)
	}
	return &want, nil
}

// UpdateWantInTransaction re-reads the want inside a session transaction,
// applies mutate to the in-memory copy and writes the result back with a
// refreshed updated_at. A mutate error aborts the transaction and nothing
// is committed. The store's transaction isolation guarantees the
// read-modify-write is atomic relative to other writers of the document.
func (r *WantRepository) UpdateWantInTransaction(ctx context.Context, id primitive.ObjectID, mutate func(ctx context.Context, want *models.Want) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var want models.Want
		if err := r.collection.FindOne(sc, bson.M{"_id": id}).Decode(&want); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get want: %w", err)
		}

		if err := mutate(sc, &want); err != nil {
			return nil, err
		}

		want.UpdatedAt = time.Now()

		if _, err := r.collection.ReplaceOne(sc, bson.M{"_id": id}, &want); err != nil {
			logrus.WithError(err).Error("Failed to write updated want")
			return nil, fmt.Errorf("failed to update want: %w", err)
		}
		return nil, nil
	})
	return err
}

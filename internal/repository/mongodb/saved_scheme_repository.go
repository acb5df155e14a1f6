package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"scheme-matcher/internal/client"
	"scheme-matcher/internal/models"
	"scheme-matcher/internal/util"
)

// SavedSchemeRepository persists per-user scheme bookmarks.
type SavedSchemeRepository interface {
	SaveScheme(ctx context.Context, saved *models.SavedScheme) error
	Exists(ctx context.Context, userID, schemeID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.SavedScheme, error)
	Delete(ctx context.Context, userID, schemeID string) error
}

type savedSchemeRepository struct {
	collection *mongo.Collection
}

// NewSavedSchemeRepository creates a SavedSchemeRepository backed by the
// saved_schemes collection.
func NewSavedSchemeRepository(mc *client.MongoClient, logger *zap.Logger) SavedSchemeRepository {
	return &savedSchemeRepository{
		collection: mc.Collection(client.SavedSchemesCollection),
	}
}

func (r *savedSchemeRepository) SaveScheme(ctx context.Context, saved *models.SavedScheme) error {
	_, err := r.collection.InsertOne(ctx, saved)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		util.Error("Failed to save scheme",
			zap.String("user_id", saved.UserID),
			zap.String("scheme_id", saved.SchemeID),
			zap.Error(err))
		return fmt.Errorf("failed to save scheme: %w", err)
	}
	return nil
}

func (r *savedSchemeRepository) Exists(ctx context.Context, userID, schemeID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx,
		bson.M{"user_id": userID, "scheme_id": schemeID})
	if err != nil {
		return false, fmt.Errorf("failed to check saved scheme: %w", err)
	}
	return count > 0, nil
}

func (r *savedSchemeRepository) ListByUser(ctx context.Context, userID string) ([]models.SavedScheme, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		util.Error("Failed to list saved schemes",
			zap.String("user_id", userID),
			zap.Error(err))
		return nil, fmt.Errorf("failed to list saved schemes: %w", err)
	}
	defer cursor.Close(ctx)

	var saved []models.SavedScheme
	if err := cursor.All(ctx, &saved); err != nil {
		return nil, fmt.Errorf("failed to decode saved schemes: %w", err)
	}
	return saved, nil
}

func (r *savedSchemeRepository) Delete(ctx context.Context, userID, schemeID string) error {
	res, err := r.collection.DeleteOne(ctx,
		bson.M{"user_id": userID, "scheme_id": schemeID})
	if err != nil {
		util.Error("Failed to delete saved scheme",
			zap.String("user_id", userID),
			zap.String("scheme_id", schemeID),
			zap.Error(err))
		return fmt.Errorf("failed to delete saved scheme: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

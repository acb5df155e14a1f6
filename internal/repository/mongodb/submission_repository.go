package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"scheme-matcher/internal/client"
	"scheme-matcher/internal/models"
	"scheme-matcher/internal/util"
)

// SubmissionRepository persists quiz submission records for audit.
type SubmissionRepository interface {
	LogSubmission(ctx context.Context, record *models.SubmissionRecord) error
}

type submissionRepository struct {
	collection *mongo.Collection
}

// NewSubmissionRepository creates a SubmissionRepository backed by the
// quiz_submissions collection.
func NewSubmissionRepository(mc *client.MongoClient, logger *zap.Logger) SubmissionRepository {
	return &submissionRepository{
		collection: mc.Collection(client.SubmissionsCollection),
	}
}

func (r *submissionRepository) LogSubmission(ctx context.Context, record *models.SubmissionRecord) error {
	_, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		util.Error("Failed to log quiz submission",
			zap.String("user_id", record.UserID),
			zap.Error(err))
		return fmt.Errorf("failed to log quiz submission: %w", err)
	}
	return nil
}

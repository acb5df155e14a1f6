package client

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"scheme-matcher/internal/config"
	"scheme-matcher/internal/util"
)

// Collection names used by the service. The store holds exactly these
// three collections.
const (
	UsersCollection        = "users"
	SubmissionsCollection  = "quiz_submissions"
	SavedSchemesCollection = "saved_schemes"
)

// MongoClient wraps the driver client with the database handle and the
// index bootstrap the repositories rely on.
type MongoClient struct {
	Client *mongo.Client
	db     *mongo.Database
	config *config.MongoConfig
}

// NewMongoClient connects to the document store and verifies connectivity
// with a ping before returning.
func NewMongoClient(cfg *config.Config, logger *zap.Logger) (*MongoClient, error) {
	mongoConfig := cfg.Mongo

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoConfig.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := mc.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	util.Info("MongoDB client initialized",
		zap.String("database", mongoConfig.Database))

	return &MongoClient{
		Client: mc,
		db:     mc.Database(mongoConfig.Database),
		config: &mongoConfig,
	}, nil
}

// Collection returns a handle to a named collection.
func (m *MongoClient) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// EnsureIndexes creates the uniqueness backstops for the two
// check-then-act sequences in the service: user email and the
// (user_id, scheme_id) bookmark pair. Races that slip past the
// application-level duplicate checks surface as duplicate-key errors
// instead of duplicate documents.
func (m *MongoClient) EnsureIndexes(ctx context.Context) error {
	_, err := m.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	_, err = m.Collection(SavedSchemesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "scheme_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create saved_schemes index: %w", err)
	}

	_, err = m.Collection(SubmissionsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create quiz_submissions index: %w", err)
	}

	util.Info("MongoDB indexes ensured")
	return nil
}

// HealthCheck verifies connectivity.
func (m *MongoClient) HealthCheck(ctx context.Context) error {
	if err := m.Client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

// Close disconnects from the store.
func (m *MongoClient) Close(ctx context.Context) error {
	if err := m.Client.Disconnect(ctx); err != nil {
		util.Error("failed to close MongoDB client", zap.Error(err))
		return err
	}
	util.Info("MongoDB client closed")
	return nil
}

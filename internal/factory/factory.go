package factory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"scheme-matcher/internal/catalog"
	"scheme-matcher/internal/client"
	"scheme-matcher/internal/config"
	"scheme-matcher/internal/hashing"
	"scheme-matcher/internal/repository/mongodb"
	"scheme-matcher/internal/repository/redis"
	"scheme-matcher/internal/service"
	"scheme-matcher/internal/token"
	"scheme-matcher/internal/util"
)

// Factory manages the lifecycle of all application dependencies. Mongo
// is required; Redis and Kafka are optional and their absence degrades
// the corresponding feature instead of failing startup.
type Factory struct {
	config *config.Config

	// Clients
	mongoClient   *client.MongoClient
	redisClient   *client.RedisClient
	kafkaProducer *client.KafkaProducer

	// Core components
	hasher       *hashing.Hasher
	tokenService *token.Service
	catalog      *catalog.Catalog

	// Repositories
	userRepository        mongodb.UserRepository
	submissionRepository  mongodb.SubmissionRepository
	savedSchemeRepository mongodb.SavedSchemeRepository
	rateLimitCache        *redis.RateLimitCache

	serviceFactory *service.ServiceFactory

	closeOnce sync.Once
	closed    chan struct{}
}

// NewFactory loads configuration and initializes all dependencies.
func NewFactory() (*Factory, error) {
	cfg := config.Load()

	util.Init(cfg.Environment, cfg.Logging.Level, cfg.Logging.Format)

	factory := &Factory{
		config: cfg,
		closed: make(chan struct{}),
	}

	if err := factory.initializeClients(); err != nil {
		return nil, fmt.Errorf("failed to initialize clients: %w", err)
	}

	factory.hasher = hashing.NewHasher(cfg.Hashing.BcryptCost)
	factory.tokenService = token.NewService(cfg.JWT.Secret, cfg.JWT.Validity)
	factory.catalog = catalog.New()

	util.Info("Factory initialized successfully",
		util.String("environment", cfg.Environment),
		util.Bool("redis_enabled", factory.redisClient != nil),
		util.Bool("kafka_enabled", factory.kafkaProducer != nil),
		util.Int("catalog_size", factory.catalog.Size()),
	)

	return factory, nil
}

// initializeClients connects the external dependencies. The document
// store must be reachable; the optional clients log a warning and the
// service proceeds without them.
func (f *Factory) initializeClients() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// MongoDB (required)
	mc, err := client.NewMongoClient(f.config, util.Get())
	if err != nil {
		return fmt.Errorf("mongodb: %w", err)
	}
	f.mongoClient = mc
	if err := f.mongoClient.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("mongodb indexes: %w", err)
	}

	// Redis (optional, backs auth rate limiting)
	if f.config.Redis.URL != "" {
		if rc, err := client.NewRedisClient(f.config, util.Get()); err != nil {
			util.Warn("Redis initialization failed - proceeding without rate limiting", util.ErrorField(err))
		} else {
			f.redisClient = rc
		}
	}

	// Kafka (optional, backs submission audit events)
	if len(f.config.Kafka.Brokers) > 0 {
		if producer, err := client.NewKafkaProducer(f.config, util.Get()); err != nil {
			util.Warn("Kafka producer initialization failed - proceeding without audit events", util.ErrorField(err))
		} else {
			f.kafkaProducer = producer
		}
	}

	return nil
}

func (f *Factory) UserRepository() mongodb.UserRepository {
	if f.userRepository == nil {
		f.userRepository = mongodb.NewUserRepository(f.mongoClient, util.Get())
	}
	return f.userRepository
}

func (f *Factory) SubmissionRepository() mongodb.SubmissionRepository {
	if f.submissionRepository == nil {
		f.submissionRepository = mongodb.NewSubmissionRepository(f.mongoClient, util.Get())
	}
	return f.submissionRepository
}

func (f *Factory) SavedSchemeRepository() mongodb.SavedSchemeRepository {
	if f.savedSchemeRepository == nil {
		f.savedSchemeRepository = mongodb.NewSavedSchemeRepository(f.mongoClient, util.Get())
	}
	return f.savedSchemeRepository
}

// RateLimitCache returns the rate limit cache, or nil when Redis is not
// configured.
func (f *Factory) RateLimitCache() *redis.RateLimitCache {
	if f.redisClient == nil {
		return nil
	}
	if f.rateLimitCache == nil {
		f.rateLimitCache = redis.NewRateLimitCache(f.redisClient)
	}
	return f.rateLimitCache
}

func (f *Factory) ServiceFactory() *service.ServiceFactory {
	if f.serviceFactory == nil {
		f.serviceFactory = service.NewServiceFactory(
			f.UserRepository(),
			f.SubmissionRepository(),
			f.SavedSchemeRepository(),
			f.hasher,
			f.tokenService,
			f.catalog,
			f.kafkaProducer,
			util.Get(),
		)
	}
	return f.serviceFactory
}

// HealthCheck probes all configured dependencies concurrently and
// returns the failures keyed by dependency name.
func (f *Factory) HealthCheck(ctx context.Context) map[string]error {
	var mu sync.Mutex
	healthErrors := make(map[string]error)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := f.mongoClient.HealthCheck(gctx); err != nil {
			mu.Lock()
			healthErrors["mongodb"] = err
			mu.Unlock()
		}
		return nil
	})

	if f.redisClient != nil {
		g.Go(func() error {
			if err := f.redisClient.HealthCheck(gctx); err != nil {
				mu.Lock()
				healthErrors["redis"] = err
				mu.Unlock()
			}
			return nil
		})
	}

	if f.kafkaProducer != nil {
		g.Go(func() error {
			if err := f.kafkaProducer.HealthCheck(gctx); err != nil {
				mu.Lock()
				healthErrors["kafka"] = err
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return healthErrors
}

// IsHealthy reports whether the required dependencies are reachable.
// Optional dependency failures degrade features but do not make the
// service unhealthy.
func (f *Factory) IsHealthy(ctx context.Context) bool {
	healthErrors := f.HealthCheck(ctx)
	delete(healthErrors, "redis")
	delete(healthErrors, "kafka")
	return len(healthErrors) == 0
}

// Close shuts down all clients. Safe to call more than once.
func (f *Factory) Close() error {
	f.closeOnce.Do(func() {
		close(f.closed)
		util.Info("Shutting down factory...")

		if f.kafkaProducer != nil {
			if err := f.kafkaProducer.Close(); err != nil {
				util.Error("Failed to close Kafka producer", util.ErrorField(err))
			}
		}

		if f.redisClient != nil {
			if err := f.redisClient.Close(); err != nil {
				util.Error("Failed to close Redis client", util.ErrorField(err))
			}
		}

		if f.mongoClient != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := f.mongoClient.Close(ctx); err != nil {
				util.Error("Failed to close MongoDB client", util.ErrorField(err))
			}
			cancel()
		}

		util.Sync()
		util.Info("Factory shutdown completed")
	})

	return nil
}

func (f *Factory) WaitForClose() {
	<-f.closed
}

func (f *Factory) Config() *config.Config {
	return f.config
}

func (f *Factory) TokenService() *token.Service {
	return f.tokenService
}

func (f *Factory) Catalog() *catalog.Catalog {
	return f.catalog
}

package service

import (
	"go.uber.org/zap"

	"scheme-matcher/internal/catalog"
	"scheme-matcher/internal/client"
	"scheme-matcher/internal/eligibility"
	"scheme-matcher/internal/hashing"
	"scheme-matcher/internal/repository/mongodb"
	"scheme-matcher/internal/token"
)

// ServiceFactory creates and caches service instances.
type ServiceFactory struct {
	users       mongodb.UserRepository
	submissions mongodb.SubmissionRepository
	saved       mongodb.SavedSchemeRepository
	hasher      *hashing.Hasher
	tokens      *token.Service
	catalog     *catalog.Catalog
	audit       *client.KafkaProducer
	logger      *zap.Logger

	authService   *AuthService
	schemeService *SchemeService
}

// NewServiceFactory creates a service factory. audit may be nil when
// Kafka is not configured.
func NewServiceFactory(
	users mongodb.UserRepository,
	submissions mongodb.SubmissionRepository,
	saved mongodb.SavedSchemeRepository,
	hasher *hashing.Hasher,
	tokens *token.Service,
	cat *catalog.Catalog,
	audit *client.KafkaProducer,
	logger *zap.Logger,
) *ServiceFactory {
	return &ServiceFactory{
		users:       users,
		submissions: submissions,
		saved:       saved,
		hasher:      hasher,
		tokens:      tokens,
		catalog:     cat,
		audit:       audit,
		logger:      logger,
	}
}

// AuthService returns the auth service instance (singleton).
func (f *ServiceFactory) AuthService() *AuthService {
	if f.authService == nil {
		f.authService = NewAuthService(f.users, f.hasher, f.tokens, f.logger)
	}
	return f.authService
}

// SchemeService returns the scheme service instance (singleton).
func (f *ServiceFactory) SchemeService() *SchemeService {
	if f.schemeService == nil {
		f.schemeService = NewSchemeService(
			eligibility.NewEngine(f.catalog),
			f.catalog,
			f.submissions,
			f.saved,
			f.audit,
			f.logger,
		)
	}
	return f.schemeService
}

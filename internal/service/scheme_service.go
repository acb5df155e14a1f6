package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"scheme-matcher/internal/catalog"
	"scheme-matcher/internal/client"
	"scheme-matcher/internal/eligibility"
	"scheme-matcher/internal/models"
	"scheme-matcher/internal/repository/mongodb"
	"scheme-matcher/internal/util"
)

// QuizResult is the response body for a quiz evaluation.
type QuizResult struct {
	EligibleSchemes []models.SchemeResult `json:"eligible_schemes"`
	FallbackSchemes []models.SchemeResult `json:"fallback_schemes"`
}

// SchemeService evaluates quiz submissions and manages per-user scheme
// bookmarks. The Kafka producer is optional; when nil, audit events are
// skipped.
type SchemeService struct {
	engine      *eligibility.Engine
	catalog     *catalog.Catalog
	submissions mongodb.SubmissionRepository
	saved       mongodb.SavedSchemeRepository
	audit       *client.KafkaProducer
	logger      *zap.Logger
}

// NewSchemeService creates a SchemeService. audit may be nil.
func NewSchemeService(
	engine *eligibility.Engine,
	cat *catalog.Catalog,
	submissions mongodb.SubmissionRepository,
	saved mongodb.SavedSchemeRepository,
	audit *client.KafkaProducer,
	logger *zap.Logger,
) *SchemeService {
	return &SchemeService{
		engine:      engine,
		catalog:     cat,
		submissions: submissions,
		saved:       saved,
		audit:       audit,
		logger:      logger,
	}
}

// SubmitQuiz evaluates a submission and records it for audit. The audit
// writes are best effort: a storage or broker failure is logged but the
// user still receives their matches.
func (s *SchemeService) SubmitQuiz(ctx context.Context, userID string, quiz models.QuizSubmission) (*QuizResult, error) {
	eligible, fallback := s.engine.Evaluate(quiz)

	record := &models.SubmissionRecord{
		QuizSubmission: quiz,
		UserID:         userID,
		SubmittedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.submissions.LogSubmission(ctx, record); err != nil {
		util.Warn("Quiz submission not persisted",
			zap.String("user_id", userID),
			zap.Error(err))
	}

	if s.audit != nil {
		if err := s.audit.PublishSubmission(ctx, *record); err != nil {
			util.Warn("Quiz submission audit event not published",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}

	util.Info("Quiz evaluated",
		zap.String("user_id", userID),
		zap.Int("eligible", len(eligible)),
		zap.Int("fallback", len(fallback)))

	return &QuizResult{
		EligibleSchemes: eligible,
		FallbackSchemes: fallback,
	}, nil
}

// SaveScheme bookmarks a scheme for a user. Saving an already saved
// scheme is a no-op; the returned message distinguishes the two cases.
// The id is not checked against the catalog here; stale ids are dropped
// at list time instead.
func (s *SchemeService) SaveScheme(ctx context.Context, userID, schemeID string) (string, error) {
	exists, err := s.saved.Exists(ctx, userID, schemeID)
	if err != nil {
		return "", err
	}
	if exists {
		return "Already saved", nil
	}

	saved := &models.SavedScheme{
		UserID:   userID,
		SchemeID: schemeID,
		SavedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.saved.SaveScheme(ctx, saved); err != nil {
		// A concurrent save of the same pair trips the unique index;
		// that still means the scheme is saved.
		if errors.Is(err, mongodb.ErrDuplicate) {
			return "Already saved", nil
		}
		return "", err
	}

	util.Info("Scheme saved",
		zap.String("user_id", userID),
		zap.String("scheme_id", schemeID))

	return "Scheme saved successfully", nil
}

// ListSaved returns the full scheme details for a user's bookmarks in
// catalog order. Bookmarks referencing ids no longer in the catalog are
// silently dropped from the response.
func (s *SchemeService) ListSaved(ctx context.Context, userID string) ([]models.Scheme, error) {
	saved, err := s.saved.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	savedIDs := make(map[string]bool, len(saved))
	for _, record := range saved {
		savedIDs[record.SchemeID] = true
	}

	schemes := make([]models.Scheme, 0, len(saved))
	for _, scheme := range s.catalog.List() {
		if savedIDs[scheme.ID] {
			schemes = append(schemes, scheme)
		}
	}
	return schemes, nil
}

// Unsave removes a bookmark. Removing a bookmark that does not exist is
// treated as success; the end state is the same.
func (s *SchemeService) Unsave(ctx context.Context, userID, schemeID string) (string, error) {
	err := s.saved.Delete(ctx, userID, schemeID)
	if err != nil && !errors.Is(err, mongodb.ErrNotFound) {
		return "", err
	}

	util.Info("Scheme unsaved",
		zap.String("user_id", userID),
		zap.String("scheme_id", schemeID))

	return "Scheme removed from saved", nil
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"scheme-matcher/internal/models"
	"scheme-matcher/internal/service"
	"scheme-matcher/internal/util"
)

// SchemeHandler handles the authenticated quiz and bookmark endpoints.
type SchemeHandler struct {
	schemeService *service.SchemeService
	logger        *zap.Logger
}

// NewSchemeHandler creates a new scheme handler.
func NewSchemeHandler(schemeService *service.SchemeService, logger *zap.Logger) *SchemeHandler {
	return &SchemeHandler{
		schemeService: schemeService,
		logger:        logger,
	}
}

// RegisterRoutes registers the quiz and scheme routes. The router they
// are mounted on must run RequireAuth first.
func (h *SchemeHandler) RegisterRoutes(router chi.Router) {
	router.Post("/quiz/submit", h.SubmitQuiz)
	router.Route("/schemes", func(r chi.Router) {
		r.Post("/save/{schemeID}", h.SaveScheme)
		r.Get("/saved", h.ListSaved)
		r.Delete("/unsave/{schemeID}", h.UnsaveScheme)
	})
}

// SubmitQuiz evaluates a quiz submission and returns the matched schemes.
func (h *SchemeHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := identityFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}

	var quiz models.QuizSubmission
	if err := json.NewDecoder(r.Body).Decode(&quiz); err != nil {
		respondWithError(w, http.StatusBadRequest, service.ErrInvalidInput)
		return
	}

	result, err := h.schemeService.SubmitQuiz(ctx, identity.UserID, quiz)
	if err != nil {
		respondWithError(w, getStatusCode(err), err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// SaveScheme bookmarks a scheme for the caller.
func (h *SchemeHandler) SaveScheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := identityFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}

	schemeID := chi.URLParam(r, "schemeID")
	if schemeID == "" {
		respondWithError(w, http.StatusBadRequest, errors.New("scheme id is required"))
		return
	}

	message, err := h.schemeService.SaveScheme(ctx, identity.UserID, schemeID)
	if err != nil {
		respondWithError(w, getStatusCode(err), err)
		return
	}

	respondWithJSON(w, http.StatusOK, messageBody{Message: message})
	h.logger.Debug("Scheme saved via HTTP",
		util.String("user_id", identity.UserID),
		util.String("scheme_id", schemeID),
	)
}

// ListSaved returns the caller's bookmarked schemes with full details.
func (h *SchemeHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := identityFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}

	schemes, err := h.schemeService.ListSaved(ctx, identity.UserID)
	if err != nil {
		respondWithError(w, getStatusCode(err), err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string][]models.Scheme{"schemes": schemes})
}

// UnsaveScheme removes a bookmark.
func (h *SchemeHandler) UnsaveScheme(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := identityFromContext(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, errUnauthorized)
		return
	}

	schemeID := chi.URLParam(r, "schemeID")
	if schemeID == "" {
		respondWithError(w, http.StatusBadRequest, errors.New("scheme id is required"))
		return
	}

	message, err := h.schemeService.Unsave(ctx, identity.UserID, schemeID)
	if err != nil {
		respondWithError(w, getStatusCode(err), err)
		return
	}

	respondWithJSON(w, http.StatusOK, messageBody{Message: message})
}

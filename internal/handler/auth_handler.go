package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"scheme-matcher/internal/service"
	"scheme-matcher/internal/util"
)

// AuthHandler handles HTTP requests for signup and login.
type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RegisterRoutes registers the public auth routes.
func (h *AuthHandler) RegisterRoutes(router chi.Router) {
	router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
	})
}

// Signup handles account creation. A successful signup returns a bearer
// token alongside the public user, so no follow-up login is needed.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, service.ErrInvalidInput)
		return
	}

	result, err := h.authService.Signup(ctx, &req)
	if err != nil {
		respondWithError(w, getStatusCode(err), err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
	h.logger.Info("Signup via HTTP",
		util.String("user_id", result.User.ID),
		util.Duration("duration", time.Since(startTime)),
	)
}

// Login handles credential verification.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, service.ErrInvalidInput)
		return
	}

	result, err := h.authService.Login(ctx, &req)
	if err != nil {
		respondWithError(w, getStatusCode(err), err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
	h.logger.Info("Login via HTTP",
		util.String("user_id", result.User.ID),
		util.Duration("duration", time.Since(startTime)),
	)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"scheme-matcher/internal/hashing"
	"scheme-matcher/internal/models"
	"scheme-matcher/internal/repository/mongodb"
	"scheme-matcher/internal/token"
	"scheme-matcher/internal/util"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles account creation and credential verification.
// Both signup and login return a fresh bearer token, so a client is
// authenticated immediately after either call.
type AuthService struct {
	users  mongodb.UserRepository
	hasher *hashing.Hasher
	tokens *token.Service
	logger *zap.Logger
}

// SignupRequest is the account creation payload.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the credential verification payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult carries the issued token and the public user projection.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// NewAuthService creates an AuthService.
func NewAuthService(
	users mongodb.UserRepository,
	hasher *hashing.Hasher,
	tokens *token.Service,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Signup registers a new account and returns a token for it. The email
// is stored exactly as given (case included); uniqueness is checked up
// front and enforced again by the unique index, so a concurrent
// duplicate signup surfaces as ErrDuplicateEmail rather than a second
// account.
func (s *AuthService) Signup(ctx context.Context, req *SignupRequest) (*AuthResult, error) {
	if err := validateSignup(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	email := strings.TrimSpace(req.Email)

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, mongodb.ErrNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         util.SanitizeInput(req.Name),
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, mongodb.ErrDuplicate) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	util.Info("User signed up",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email))

	return &AuthResult{Token: signed, User: user.Public()}, nil
}

// Login verifies credentials and returns a fresh token. The email
// lookup is exact, matching how signup stores it. Unknown email and
// wrong password produce the same error so the endpoint does not reveal
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		util.Warn("Login failed",
			zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	util.Info("User logged in",
		zap.String("user_id", user.ID))

	return &AuthResult{Token: signed, User: user.Public()}, nil
}

// validateSignup checks the email has a plausible address shape. There
// is no password or name policy; any value the client sends is accepted
// and hashed or stored as is.
func validateSignup(req *SignupRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("a valid email is required")
	}
	return nil
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"scheme-matcher/internal/catalog"
	"scheme-matcher/internal/config"
	"scheme-matcher/internal/eligibility"
	"scheme-matcher/internal/hashing"
	"scheme-matcher/internal/models"
	"scheme-matcher/internal/repository/mongodb"
	"scheme-matcher/internal/service"
	"scheme-matcher/internal/token"
)

// In-memory fakes standing in for the document store.

type memUserRepo struct {
	byEmail map[string]*models.User
}

func (r *memUserRepo) CreateUser(_ context.Context, user *models.User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return mongodb.ErrDuplicate
	}
	copied := *user
	r.byEmail[user.Email] = &copied
	return nil
}

func (r *memUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

type memSubmissionRepo struct {
	records []models.SubmissionRecord
}

func (r *memSubmissionRepo) LogSubmission(_ context.Context, record *models.SubmissionRecord) error {
	r.records = append(r.records, *record)
	return nil
}

type memSavedRepo struct {
	saved []models.SavedScheme
}

func (r *memSavedRepo) SaveScheme(_ context.Context, s *models.SavedScheme) error {
	for _, existing := range r.saved {
		if existing.UserID == s.UserID && existing.SchemeID == s.SchemeID {
			return mongodb.ErrDuplicate
		}
	}
	r.saved = append(r.saved, *s)
	return nil
}

func (r *memSavedRepo) Exists(_ context.Context, userID, schemeID string) (bool, error) {
	for _, existing := range r.saved {
		if existing.UserID == userID && existing.SchemeID == schemeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memSavedRepo) ListByUser(_ context.Context, userID string) ([]models.SavedScheme, error) {
	var out []models.SavedScheme
	for _, existing := range r.saved {
		if existing.UserID == userID {
			out = append(out, existing)
		}
	}
	return out, nil
}

func (r *memSavedRepo) Delete(_ context.Context, userID, schemeID string) error {
	for i, existing := range r.saved {
		if existing.UserID == userID && existing.SchemeID == schemeID {
			r.saved = append(r.saved[:i], r.saved[i+1:]...)
			return nil
		}
	}
	return mongodb.ErrNotFound
}

type testEnv struct {
	server      *httptest.Server
	tokens      *token.Service
	submissions *memSubmissionRepo
	saved       *memSavedRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cat := catalog.New()
	tokens := token.NewService("test-secret", time.Hour)
	users := &memUserRepo{byEmail: map[string]*models.User{}}
	submissions := &memSubmissionRepo{}
	saved := &memSavedRepo{}

	logger := zap.NewNop()
	authService := service.NewAuthService(users, hashing.NewHasher(bcrypt.MinCost), tokens, logger)
	schemeService := service.NewSchemeService(
		eligibility.NewEngine(cat), cat, submissions, saved, nil, logger)

	cfg := &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}

	router := NewRouter(RouterDeps{
		AuthHandler:   NewAuthHandler(authService, logger),
		SchemeHandler: NewSchemeHandler(schemeService, logger),
		TokenService:  tokens,
		RateLimit:     nil,
		Config:        cfg,
		Logger:        logger,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testEnv{
		server:      server,
		tokens:      tokens,
		submissions: submissions,
		saved:       saved,
	}
}

func (e *testEnv) request(t *testing.T, method, path, bearer string, body interface{}) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, e.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func (e *testEnv) signup(t *testing.T, email string) (tokenStr, userID string) {
	t.Helper()

	resp, body := e.request(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    email,
		"password": "secret123",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, json.Unmarshal(body["token"], &tokenStr))
	var user models.PublicUser
	require.NoError(t, json.Unmarshal(body["user"], &user))
	return tokenStr, user.ID
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)

	tokenStr, userID := env.signup(t, "priya@example.com")
	require.NotEmpty(t, userID)

	identity, err := env.tokens.Validate(tokenStr)
	require.NoError(t, err)
	require.Equal(t, userID, identity.UserID)
	require.Equal(t, "priya@example.com", identity.Email)

	resp, body := doLogin(t, env, "priya@example.com", "secret123")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "token")
	require.Contains(t, body, "user")
}

func doLogin(t *testing.T, env *testEnv, email, password string) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	return env.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
}

func TestSignupDuplicateEmailReturns400(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "dup@example.com")

	resp, body := env.request(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    "dup@example.com",
		"password": "secret123",
		"name":     "Second",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, "error")
}

func TestLoginWrongPasswordReturns401(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "priya@example.com")

	resp, body := doLogin(t, env, "priya@example.com", "wrong-password")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Contains(t, body, "error")
}

func TestQuizWithoutTokenReturns401AndWritesNothing(t *testing.T) {
	env := newTestEnv(t)

	for _, bearer := range []string{"", "garbage-token"} {
		resp, body := env.request(t, http.MethodPost, "/api/quiz/submit", bearer, models.QuizSubmission{Age: 30})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.JSONEq(t, `"unauthorized"`, string(body["error"]))
	}

	require.Empty(t, env.submissions.records)
}

func TestExpiredTokenReturns401(t *testing.T) {
	env := newTestEnv(t)

	expired := token.NewService("test-secret", -time.Minute)
	signed, err := expired.Issue("user-1", "a@b.com")
	require.NoError(t, err)

	resp, _ := env.request(t, http.MethodPost, "/api/quiz/submit", signed, models.QuizSubmission{Age: 30})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestQuizSubmitReturnsMatches(t *testing.T) {
	env := newTestEnv(t)

	bearer, userID := env.signup(t, "priya@example.com")

	resp, body := env.request(t, http.MethodPost, "/api/quiz/submit", bearer, models.QuizSubmission{
		Age:        22,
		Gender:     "Female",
		State:      "Karnataka",
		Area:       "Urban",
		Income:     "₹1,00,000 – ₹3,00,000",
		Occupation: "Student",
		Education:  "Undergraduate",
		Category:   "OBC",
		HasLand:    "No",
		IsDisabled: "No",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var eligible []models.SchemeResult
	require.NoError(t, json.Unmarshal(body["eligible_schemes"], &eligible))
	ids := make([]string, 0, len(eligible))
	for _, s := range eligible {
		ids = append(ids, s.ID)
	}
	require.Contains(t, ids, "scheme_2")
	require.Contains(t, ids, "scheme_9")

	require.Len(t, env.submissions.records, 1)
	require.Equal(t, userID, env.submissions.records[0].UserID)
}

func TestSaveListUnsaveRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	bearer, _ := env.signup(t, "priya@example.com")

	resp, body := env.request(t, http.MethodPost, "/api/schemes/save/scheme_4", bearer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `"Scheme saved successfully"`, string(body["message"]))

	resp, body = env.request(t, http.MethodPost, "/api/schemes/save/scheme_4", bearer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `"Already saved"`, string(body["message"]))

	resp, body = env.request(t, http.MethodGet, "/api/schemes/saved", bearer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var schemes []models.Scheme
	require.NoError(t, json.Unmarshal(body["schemes"], &schemes))
	require.Len(t, schemes, 1)
	require.Equal(t, "scheme_4", schemes[0].ID)
	require.Equal(t, "Ayushman Bharat (PM-JAY)", schemes[0].Name)

	resp, body = env.request(t, http.MethodDelete, "/api/schemes/unsave/scheme_4", bearer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `"Scheme removed from saved"`, string(body["message"]))

	resp, body = env.request(t, http.MethodGet, "/api/schemes/saved", bearer, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body["schemes"], &schemes))
	require.Empty(t, schemes)
}

func TestBookmarksAreScopedToUser(t *testing.T) {
	env := newTestEnv(t)

	first, _ := env.signup(t, "first@example.com")
	second, _ := env.signup(t, "second@example.com")

	resp, _ := env.request(t, http.MethodPost, "/api/schemes/save/scheme_1", first, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := env.request(t, http.MethodGet, "/api/schemes/saved", second, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var schemes []models.Scheme
	require.NoError(t, json.Unmarshal(body["schemes"], &schemes))
	require.Empty(t, schemes)
}

func TestHealthAndNotFound(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(env.server.URL + "/api/nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBearerTokenExtraction(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			r.Header.Set("Authorization", tc.header)
		}
		require.Equal(t, tc.want, bearerToken(r), fmt.Sprintf("header %q", tc.header))
	}
}

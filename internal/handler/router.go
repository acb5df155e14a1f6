package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"scheme-matcher/internal/config"
	"scheme-matcher/internal/repository/redis"
	"scheme-matcher/internal/token"
	"scheme-matcher/internal/util"
)

// RouterDeps bundles everything the router wires together. rateLimit
// may be nil, in which case the auth endpoints are not throttled.
type RouterDeps struct {
	AuthHandler   *AuthHandler
	SchemeHandler *SchemeHandler
	TokenService  *token.Service
	RateLimit     *redis.RateLimitCache
	Config        *config.Config
	Logger        *zap.Logger
}

// NewRouter creates and configures the chi router with all middleware
// and routes. Everything the API serves lives under /api.
func NewRouter(deps RouterDeps) chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggerMiddleware(deps.Logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","service":"scheme-matcher"}`))
	})

	router.Route("/api", func(r chi.Router) {
		// Public auth endpoints, throttled when Redis is available.
		r.Group(func(r chi.Router) {
			r.Use(RateLimitMiddleware(deps.RateLimit,
				deps.Config.Redis.RateLimitMax,
				deps.Config.Redis.RateLimitWindow))
			deps.AuthHandler.RegisterRoutes(r)
		})

		// Everything else requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(deps.TokenService))
			deps.SchemeHandler.RegisterRoutes(r)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"method not allowed"}`))
	})

	return router
}

// LoggerMiddleware logs one line per HTTP request.
func LoggerMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				logger.Info("HTTP request",
					util.String("method", r.Method),
					util.String("path", r.URL.Path),
					util.String("remote_addr", r.RemoteAddr),
					util.Int("status", ww.Status()),
					util.Duration("duration", time.Since(start)),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}

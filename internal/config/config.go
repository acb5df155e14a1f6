// Package config loads process configuration from the environment once
// at startup. A .env file is honored when present, matching how the
// service is run in development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Mongo       MongoConfig
	JWT         JWTConfig
	CORS        CORSConfig
	Logging     LoggingConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Hashing     HashingConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type MongoConfig struct {
	URL      string
	Database string
}

type JWTConfig struct {
	Secret   string
	Validity time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// RedisConfig controls the optional auth rate limiter. An empty URL
// disables Redis and rate limiting entirely.
type RedisConfig struct {
	URL             string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// KafkaConfig controls the optional submission audit producer. Empty
// broker list disables it.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type HashingConfig struct {
	BcryptCost int
}

// Load reads configuration from the environment, applying defaults that
// mirror the development setup.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnvInt("PORT", 8000),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Mongo: MongoConfig{
			URL:      getEnv("MONGO_URL", "mongodb://localhost:27017"),
			Database: getEnv("DB_NAME", "scheme_matcher"),
		},
		JWT: JWTConfig{
			Secret:   getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			Validity: getEnvDuration("JWT_VALIDITY", 7*24*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvSlice("CORS_ORIGINS", []string{"*"}),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Redis: RedisConfig{
			URL:             getEnv("REDIS_URL", ""),
			RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 20),
			RateLimitWindow: getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", nil),
			Topic:   getEnv("KAFKA_TOPIC", "quiz-submissions"),
		},
		Hashing: HashingConfig{
			BcryptCost: getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetServerAddress returns the listen address for the HTTP server.
func (c *Config) GetServerAddress() string {
	return ":" + strconv.Itoa(c.Server.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"roboshop/internal/pkg/errs"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPPort   = "8080"
	defaultSessionTTL = 24 * time.Hour
	defaultCartTTL    = 30 * 24 * time.Hour
	defaultOrderTopic = "roboshop.order.status-changed"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	MongoURI               string
	MongoDB                string
	RedisAddr              string
	RedisPassword          string
	KafkaHost              string
	KafkaOrderChangedTopic string
	JWTSecret              string
	SessionTTL             time.Duration
	CartTTL                time.Duration
	CORSOrigins            []string
	AutoAssignSchedule     string
	LogLevel               slog.Level
}

// KafkaBrokers splits KAFKA_HOST on commas. No brokers disables event publishing.
func (c Config) KafkaBrokers() []string {
	return splitList(c.KafkaHost)
}

// LoadConfig reads envFile into the environment, without overriding variables
// that are already set, and builds the Config from it. A missing file is fine.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds the Config from getenv, applying defaults and reporting
// every malformed value at once.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:               get("HTTP_PORT", defaultHTTPPort),
		DBHost:                 get("DB_HOST", "localhost"),
		DBPort:                 get("DB_PORT", "5432"),
		DBUser:                 get("DB_USER", "postgres"),
		DBPassword:             getenv("DB_PASSWORD"),
		DBName:                 get("DB_NAME", "roboshop"),
		DBSslMode:              get("DB_SSLMODE", "disable"),
		MongoURI:               get("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:                get("MONGO_DB", "roboshop"),
		RedisAddr:              get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:          getenv("REDIS_PASSWORD"),
		KafkaHost:              get("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: get("KAFKA_ORDER_CHANGED_TOPIC", defaultOrderTopic),
		JWTSecret:              getenv("JWT_SECRET"),
		CORSOrigins:            splitList(getenv("CORS_ORIGINS")),
		AutoAssignSchedule:     get("AUTO_ASSIGN_SCHEDULE", ""),
	}

	var secretErr, sessionErr, cartErr, levelErr error
	if cfg.JWTSecret == "" {
		secretErr = errs.NewValueIsRequiredError("JWT_SECRET")
	}
	cfg.SessionTTL, sessionErr = duration("SESSION_TTL", get("SESSION_TTL", ""), defaultSessionTTL)
	cfg.CartTTL, cartErr = duration("CART_TTL", get("CART_TTL", ""), defaultCartTTL)
	if err := cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		levelErr = errs.NewValueIsInvalidErrorWithCause("LOG_LEVEL", err)
	}

	if err := errors.Join(secretErr, sessionErr, cartErr, levelErr); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func duration(key, raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	if d <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%s must be positive", raw))
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

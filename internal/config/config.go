package config

import (
	"os"
	"strconv"
	"time"
)

// Content store backends selectable via CONTENT_STORE.
const (
	StoreFile     = "file"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreS3       = "s3"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Content store
	ContentStore string
	ContentFile  string
	DatabaseURL  string
	TablePrefix  string
	SQLitePath   string
	S3           S3Config
	// Admin sessions
	AdminPassword string
	SessionSecret string
	SessionTTL    time.Duration
	AuthJWKSURL   string // Optional external issuer for admin tokens
	// Change events
	AMQPURL      string
	AMQPExchange string
	// Logging
	LogDir      string
	LogMaxFiles int
}

// S3Config addresses the object holding the document in an S3-compatible bucket.
type S3Config struct {
	Bucket    string
	Key       string
	Region    string
	Endpoint  string // Custom endpoint for R2/MinIO; empty uses AWS
	AccessKey string
	SecretKey string
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  env,
		CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		ContentStore: getEnv("CONTENT_STORE", StoreFile),
		ContentFile:  getEnv("CONTENT_FILE", "data/cv-data.json"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		TablePrefix:  getTablePrefix(env),
		SQLitePath:   getEnv("SQLITE_PATH", "data/content.db"),
		S3: S3Config{
			Bucket:    getEnv("S3_BUCKET", ""),
			Key:       getEnv("S3_KEY", "cv-data.json"),
			Region:    getEnv("S3_REGION", "auto"),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
		},
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getDuration("SESSION_TTL", 2*time.Hour),
		AuthJWKSURL:   getEnv("AUTH_JWKS_URL", ""),
		AMQPURL:       getEnv("AMQP_URL", ""),
		AMQPExchange:  getEnv("AMQP_EXCHANGE", "portfolio.events"),
		LogDir:        getEnv("LOG_DIR", ""),
		LogMaxFiles:   getInt("LOG_MAX_FILES", 10),
	}
}

// IsProduction reports whether the service runs in the prod environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "prod"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

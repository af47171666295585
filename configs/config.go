package configs

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisHost string
	RedisPort string
	RedisPass string

	KafkaBrokerURL string
	KafkaTopic     string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	PageSize     int
	MaxImageSize int64

	TemplatesGlob string
}

func LoadConfig() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		AppPort: getEnv("APP_PORT", ":8080"),

		DBHost: getEnv("DB_HOST", "localhost"),
		DBPort: getEnv("DB_PORT", "5432"),
		DBUser: getEnv("DB_USER", "postgres"),
		DBPass: getEnv("DB_PASS", "postgres"),
		DBName: getEnv("DB_NAME", "microblog_db"),

		// Empty REDIS_HOST keeps the feed cache in process memory.
		RedisHost: getEnv("REDIS_HOST", ""),
		RedisPort: getEnv("REDIS_PORT", "6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		KafkaBrokerURL: getEnv("KAFKA_BROKER_URL", ""),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "posts.created"),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:    getEnv("MINIO_BUCKET", "post-images"),
		MinioUseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",

		PageSize:     getEnvInt("PAGE_SIZE", 10),
		MaxImageSize: int64(getEnvInt("MAX_IMAGE_SIZE", 5<<20)),

		TemplatesGlob: getEnv("TEMPLATES_GLOB", "web/templates/*.html"),
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPass, c.DBName,
	)
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

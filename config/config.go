package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string

	STRIPE_SECRET_KEY string
	APP_URL           string

	GENAI_API_KEY  string
	GENAI_BASE_URL string
	GENAI_MODEL    string

	MINIO_ENDPOINT   string
	MINIO_ACCESS_KEY string
	MINIO_SECRET_KEY string
	MINIO_BUCKET     string
	MINIO_PUBLIC_URL string
	MINIO_USE_SSL    bool

	REDIS_ADDR     string
	REDIS_PASSWORD string
	REDIS_DB       int
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	JWT_SECRET = mustEnv("JWT_SECRET")

	GOOGLE_CLIENT_ID = mustEnv("GOOGLE_CLIENT_ID")
	GOOGLE_CLIENT_SECRET = mustEnv("GOOGLE_CLIENT_SECRET")
	GOOGLE_REDIRECT_URL = mustEnv("GOOGLE_REDIRECT_URL")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")

	STRIPE_SECRET_KEY = getEnv("STRIPE_SECRET_KEY", "")
	APP_URL = getEnv("APP_URL", "http://localhost:5173")

	GENAI_API_KEY = mustEnv("GENAI_API_KEY")
	GENAI_BASE_URL = getEnv("GENAI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	GENAI_MODEL = getEnv("GENAI_MODEL", "gemini-2.0-flash")

	MINIO_ENDPOINT = mustEnv("MINIO_ENDPOINT")
	MINIO_ACCESS_KEY = mustEnv("MINIO_ACCESS_KEY")
	MINIO_SECRET_KEY = mustEnv("MINIO_SECRET_KEY")
	MINIO_BUCKET = getEnv("MINIO_BUCKET", "tatuagens")
	MINIO_PUBLIC_URL = getEnv("MINIO_PUBLIC_URL", "")
	MINIO_USE_SSL = getEnv("MINIO_USE_SSL", "false") == "true"

	REDIS_ADDR = getEnv("REDIS_ADDR", "localhost:6379")
	REDIS_PASSWORD = getEnv("REDIS_PASSWORD", "")
	REDIS_DB, _ = strconv.Atoi(getEnv("REDIS_DB", "0"))
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port          string
	UploadDir     string
	MaxUploadSize int64

	// Search backend
	BackendBaseURL string
	SearchTimeout  time.Duration

	// DRES contest server
	DRESEnabled        bool
	DRESBaseURL        string
	DRESUsername       string
	DRESPassword       string
	DRESEvaluationName string
	DRESCollection     string

	// Submission history database
	DBType     string
	SQLitePath string
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 104857600),

		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:5000/api"),
		SearchTimeout:  getEnvAsDuration("SEARCH_TIMEOUT", 30*time.Second),

		DRESEnabled:        getEnvAsBool("DRES_ENABLED", true),
		DRESBaseURL:        getEnv("DRES_BASE_URL", "https://vbs.videobrowsing.org"),
		DRESUsername:       getEnv("DRES_USERNAME", ""),
		DRESPassword:       getEnv("DRES_PASSWORD", ""),
		DRESEvaluationName: getEnv("DRES_EVALUATION_NAME", "IVADL2025"),
		DRESCollection:     getEnv("DRES_COLLECTION", "IVADL"),

		DBType:     getEnv("DB_TYPE", "sqlite"),
		SQLitePath: getEnv("DB_PATH", "./clipseek.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvAsInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "clipseek"),
		DBPassword: getEnv("DB_PASSWORD", "clipseek_dev"),
		DBName:     getEnv("DB_NAME", "clipseek"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

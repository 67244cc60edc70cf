package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	JWTSecret  string

	// Catalog artifacts (produced by the offline training/export step)
	CoursesPath    string
	SimilarityPath string

	// User / admin persisted state
	UsersDataPath string
	AdminDataPath string

	// StoreBackend memilih implementasi user store: "json" atau "badger"
	StoreBackend string
	BadgerPath   string

	// Recommendation tuning
	DefaultRecommendations int
	MaxRecommendations     int
	SimilarUserCount       int
}

var GlobalConfig *Config

func LoadConfig() error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Default tuning:
	// - 8 rekomendasi content-based (sama seperti versi lama)
	// - 3 similar users untuk collaborative filtering
	defaultRecs, _ := strconv.Atoi(getEnv("DEFAULT_RECOMMENDATIONS", "8"))
	maxRecs, _ := strconv.Atoi(getEnv("MAX_RECOMMENDATIONS", "20"))
	similarUsers, _ := strconv.Atoi(getEnv("SIMILAR_USER_COUNT", "3"))

	GlobalConfig = &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		JWTSecret:  getEnv("JWT_SECRET", "default-jwt-secret-change-in-production"),

		CoursesPath:    getEnv("COURSES_PATH", "artifacts/courses.csv"),
		SimilarityPath: getEnv("SIMILARITY_PATH", "artifacts/similarity.gob"),

		UsersDataPath: getEnv("USERS_DATA_PATH", "newdata/users.json"),
		AdminDataPath: getEnv("ADMIN_DATA_PATH", "newdata/admin.json"),

		StoreBackend: getEnv("STORE_BACKEND", "json"),
		BadgerPath:   getEnv("BADGER_PATH", "newdata/badger"),

		DefaultRecommendations: defaultRecs,
		MaxRecommendations:     maxRecs,
		SimilarUserCount:       similarUsers,
	}

	if GlobalConfig.JWTSecret == "default-jwt-secret-change-in-production" {
		log.Println("⚠️ JWT_SECRET not set, using insecure default")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

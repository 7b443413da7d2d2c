package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort         string
	FirebaseProject    string
	ServiceAccountJSON string
	ServiceAccountPath string
	Environment        string
	ActiveListingLimit int
	CandidateLimit     int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		FirebaseProject:    getEnv("FIREBASE_PROJECT_ID", ""),
		ServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", "./service-account.json"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		ActiveListingLimit: getEnvAsInt("ACTIVE_LISTING_LIMIT", 50),
		CandidateLimit:     getEnvAsInt("CANDIDATE_LIMIT", 20),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the API server reads from the environment.
type Config struct {
	Port              string
	MongoURI          string
	MongoDB           string
	JWTSecret         string
	OwnerPasswordHash string // bcrypt hash; empty means the API runs in public mode
	LegacyDataFile    string // optional JSON export from the old local-storage app
}

// Load reads configuration from the environment, pulling in a local .env
// file first when one exists.
func Load() *Config {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Println("could not load .env file:", err)
		}
	}

	return &Config{
		Port:              getEnv("APP_PORT", "8080"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:           getEnv("MONGO_DB", "heavens_pos"),
		JWTSecret:         getEnv("JWT_SECRET", "dev-secret"),
		OwnerPasswordHash: getEnv("OWNER_PASSWORD_HASH", ""),
		LegacyDataFile:    getEnv("LEGACY_DATA_FILE", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

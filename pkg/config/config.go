package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	FirebaseProject string
	FirebaseApiKey  string
	Environment     string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// EnforceLuhnChecksum gates the Luhn verification of card numbers.
	// The checksum is always computed and exposed; rejection is policy.
	EnforceLuhnChecksum bool

	// ReviewRequireCompletedStay additionally demands a completed
	// reservation before a guest may review. The legacy behavior leaves
	// this to the client, so the default is off.
	ReviewRequireCompletedStay bool
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		FirebaseProject: getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseApiKey:  getEnv("FIREBASE_API_KEY", ""),
		Environment:     getEnv("ENVIRONMENT", "development"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		EnforceLuhnChecksum:        getEnvAsBool("ENFORCE_LUHN_CHECKSUM", false),
		ReviewRequireCompletedStay: getEnvAsBool("REVIEW_REQUIRE_COMPLETED_STAY", false),
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
	}
	return defaultValue
}

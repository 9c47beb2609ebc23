package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP             string // Host IP for the server
	RESTPort           int    // Port for the REST API
	GinMode            string // Mode for the Gin framework (e.g., release, debug, test)
	DBHost             string // Hostname or IP address for the database
	DBPort             int    // Port number for the database
	DBUser             string // Username for the database
	DBPassword         string // Password for the database
	DBName             string // Name of the database
	RedisAddr          string // host:port of the Redis server backing the leaderboard
	RedisPassword      string // Password for Redis, empty when none
	JWTSecret          string // Secret key for JWT signing
	JWTIssuer          string // Issuer claim for JWTs
	QuotesFile         string // Optional YAML quote pool replacing the built-in one
	LeaderboardTTL     int    // Leaderboard key TTL in seconds, 0 keeps keys forever
	LogDebug           bool   // Enables debug logging
	ResultsCollection  string // Mongo collection of completed runs
	ProgressCollection string // Mongo collection of minigame progress
}

// Envs holds the application's configuration loaded from environment variables.
// It is loaded by Load; commands that need no external service never call it.
var Envs Config

// Load initializes Envs from the environment.
// It loads environment variables from a .env file first when present.
func Load() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	Envs = Config{
		HostIP:             getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:           mustGetEnvAsInt("REST_PORT"),
		GinMode:            getEnvWithDefault("GIN_MODE", "release"),
		DBHost:             mustGetEnv("DB_HOST"),
		DBPort:             mustGetEnvAsInt("DB_PORT"),
		DBUser:             mustGetEnv("DB_USER"),
		DBPassword:         mustGetEnv("DB_PASS"),
		DBName:             mustGetEnv("DB_NAME"),
		RedisAddr:          mustGetEnv("REDIS_ADDR"),
		RedisPassword:      getEnvWithDefault("REDIS_PASS", ""),
		JWTSecret:          mustGetEnv("JWT_SECRET"),
		JWTIssuer:          mustGetEnv("JWT_ISSUER"),
		QuotesFile:         getEnvWithDefault("QUOTES_FILE", ""),
		LeaderboardTTL:     getEnvAsIntWithDefault("LEADERBOARD_TTL", 0),
		LogDebug:           getEnvWithDefault("LOG_DEBUG", "false") == "true",
		ResultsCollection:  getEnvWithDefault("RESULTS_COLLECTION", "labyrinth_results"),
		ProgressCollection: getEnvWithDefault("PROGRESS_COLLECTION", "minigame_progress"),
	}
	return Envs
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault parses an optional integer variable, falling back on a missing or malformed value.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[APP] [WARNING] Environment variable %s must be an integer, using %d: %v", key, defaultValue, err)
		return defaultValue
	}
	return parsed
}

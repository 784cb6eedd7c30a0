package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the engine's tunable settings.
type Config struct {
	FindTimeout  time.Duration // Wall-clock budget for the explore callback
	ScramTimeout time.Duration // Wall-clock budget for the scram callback
	DisplayOn    bool          // Whether the console display defaults to on
}

// Envs holds the engine configuration loaded from environment variables.
// Every field has a default, so the game runs with no environment set up.
var Envs = initConfig()

// initConfig initializes and returns the engine configuration.
// It loads environment variables from a .env file when one is present.
func initConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		FindTimeout:  time.Duration(getEnvAsIntWithDefault("FIND_TIMEOUT_SECONDS", 10)) * time.Second,
		ScramTimeout: time.Duration(getEnvAsIntWithDefault("SCRAM_TIMEOUT_SECONDS", 15)) * time.Second,
		DisplayOn:    getEnvAsBoolWithDefault("DISPLAY", false),
	}
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an
// integer, or returns a default value if not set. A set but unparsable value
// is a fatal misconfiguration.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsBoolWithDefault retrieves the value of an environment variable as a
// boolean, or returns a default value if not set.
func getEnvAsBoolWithDefault(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be a boolean: %v", key, err)
	}
	return value
}

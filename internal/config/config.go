// Package config loads console configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all configuration values for the console server.
type Config struct {
	// Port is the TCP port the console listens on. Defaults to "8082".
	Port string

	// AuthBaseURL and ScooterBaseURL are the /api roots of the two services.
	AuthBaseURL    string
	ScooterBaseURL string

	// HTTPTimeout bounds every outgoing service call.
	HTTPTimeout time.Duration

	LogLevel  string
	LogFormat string

	CORSOrigins []string

	// SessionFile, when set, keeps the operator's token across restarts,
	// sealed with SessionKey.
	SessionFile string
	SessionKey  string

	// MQTTBroker enables the live telemetry feed when set.
	MQTTBroker          string
	MQTTTopic           string
	LowBatteryThreshold float64

	// MongoURI enables the dashboard snapshot archive when set.
	MongoURI string
	MongoDB  string

	// LoginRateLimit is the number of login attempts allowed per client per minute.
	LoginRateLimit int
	// TrustProxy reads client addresses from forwarding headers.
	TrustProxy bool
}

// Load reads an optional .env file and then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.WithError(err).Warn("Failed to read .env file")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8082"),
		AuthBaseURL:    strings.TrimRight(getEnv("AUTH_BASE_URL", "http://localhost:8091/api"), "/"),
		ScooterBaseURL: strings.TrimRight(getEnv("SCOOTER_BASE_URL", "http://localhost:8080/api"), "/"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		SessionFile:    os.Getenv("SESSION_FILE"),
		SessionKey:     os.Getenv("SESSION_KEY"),
		MQTTBroker:     os.Getenv("MQTT_BROKER"),
		MQTTTopic:      getEnv("MQTT_TOPIC", "scooters/+/telemetry"),
		MongoURI:       os.Getenv("MONGO_URI"),
		MongoDB:        getEnv("MONGO_DB", "scooter_console"),
	}

	var problems []string

	timeout, err := time.ParseDuration(getEnv("HTTP_TIMEOUT", "10s"))
	if err != nil || timeout <= 0 {
		problems = append(problems, "HTTP_TIMEOUT must be a positive duration")
	}
	cfg.HTTPTimeout = timeout

	threshold, err := strconv.ParseFloat(getEnv("LOW_BATTERY_THRESHOLD", "20"), 64)
	if err != nil || threshold < 0 || threshold > 100 {
		problems = append(problems, "LOW_BATTERY_THRESHOLD must be between 0 and 100")
	}
	cfg.LowBatteryThreshold = threshold

	limit, err := strconv.Atoi(getEnv("LOGIN_RATE_LIMIT", "10"))
	if err != nil || limit < 1 {
		problems = append(problems, "LOGIN_RATE_LIMIT must be a positive integer")
	}
	cfg.LoginRateLimit = limit

	trust, err := strconv.ParseBool(getEnv("TRUST_PROXY", "false"))
	if err != nil {
		problems = append(problems, "TRUST_PROXY must be true or false")
	}
	cfg.TrustProxy = trust

	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		problems = append(problems, "LOG_LEVEL is not a valid level")
	}

	if cfg.SessionFile != "" && cfg.SessionKey == "" {
		problems = append(problems, "SESSION_KEY is required when SESSION_FILE is set")
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// ConfigureLogging applies the level and format to the standard logger.
func (c Config) ConfigureLogging() {
	if level, err := log.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if c.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

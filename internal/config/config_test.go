package config

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "AUTH_BASE_URL", "SCOOTER_BASE_URL", "HTTP_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT",
	"CORS_ORIGINS", "SESSION_FILE", "SESSION_KEY", "MQTT_BROKER", "MQTT_TOPIC",
	"LOW_BATTERY_THRESHOLD", "MONGO_URI", "MONGO_DB", "LOGIN_RATE_LIMIT", "TRUST_PROXY",
}

func clearEnv(t *testing.T) {
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, "8082", cfg.Port)
	assert.Equal(t, "http://localhost:8091/api", cfg.AuthBaseURL)
	assert.Equal(t, "http://localhost:8080/api", cfg.ScooterBaseURL)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, "scooters/+/telemetry", cfg.MQTTTopic)
	assert.Equal(t, 20.0, cfg.LowBatteryThreshold)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.Equal(t, "scooter_console", cfg.MongoDB)
	assert.Empty(t, cfg.MongoURI)
	assert.Empty(t, cfg.MQTTBroker)
	assert.False(t, cfg.TrustProxy)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("AUTH_BASE_URL", "http://auth:8091/api/")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("SESSION_FILE", "/tmp/session")
	t.Setenv("SESSION_KEY", "secret")
	t.Setenv("LOW_BATTERY_THRESHOLD", "15")
	t.Setenv("LOGIN_RATE_LIMIT", "3")
	t.Setenv("TRUST_PROXY", "true")

	cfg, err := FromEnv()

	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "http://auth:8091/api", cfg.AuthBaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 15.0, cfg.LowBatteryThreshold)
	assert.Equal(t, 3, cfg.LoginRateLimit)
	assert.True(t, cfg.TrustProxy)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"HTTP_TIMEOUT", "soon", "HTTP_TIMEOUT"},
		{"LOW_BATTERY_THRESHOLD", "150", "LOW_BATTERY_THRESHOLD"},
		{"LOGIN_RATE_LIMIT", "0", "LOGIN_RATE_LIMIT"},
		{"LOG_LEVEL", "loud", "LOG_LEVEL"},
		{"TRUST_PROXY", "maybe", "TRUST_PROXY"},
		{"SESSION_FILE", "/tmp/session", "SESSION_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(&log.TextFormatter{})

	Config{LogLevel: "debug", LogFormat: "json"}.ConfigureLogging()

	assert.Equal(t, log.DebugLevel, log.GetLevel())
	_, ok := log.StandardLogger().Formatter.(*log.JSONFormatter)
	assert.True(t, ok)
}

// Package config reads the server settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	// JWTSecret verifies bearer tokens. Empty disables verification.
	JWTSecret string

	// MQTTBroker is the broker URL. Empty disables event publishing.
	MQTTBroker      string
	MQTTClientID    string
	MQTTTopicPrefix string

	ExpirySchedule    string
	ExpiryWarningDays int

	RateLimitRequests      int
	RateLimitWindowSeconds int
	CORSOrigins            []string
	RequestTimeout         time.Duration

	LogLevel  string
	LogFormat string
}

// Load reads a .env file when present and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded")
	}
	return Config{
		Port:                   get("PORT", "8080"),
		MongoURI:               get("MONGO_URI", ""),
		MongoDB:                get("MONGO_DB", "tripsheet"),
		JWTSecret:              get("JWT_SECRET", ""),
		MQTTBroker:             get("MQTT_BROKER", ""),
		MQTTClientID:           get("MQTT_CLIENT_ID", "tripsheet-api"),
		MQTTTopicPrefix:        get("MQTT_TOPIC_PREFIX", "tripsheet"),
		ExpirySchedule:         get("EXPIRY_CHECK_SCHEDULE", "0 0 7 * * *"),
		ExpiryWarningDays:      getInt("EXPIRY_WARNING_DAYS", 30),
		RateLimitRequests:      getInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindowSeconds: getInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		CORSOrigins:            getList("CORS_ORIGINS", []string{"*"}),
		RequestTimeout:         getDuration("REQUEST_TIMEOUT", 15*time.Second),
		LogLevel:               get("LOG_LEVEL", "info"),
		LogFormat:              get("LOG_FORMAT", "text"),
	}
}

// ExpiryWindow is the look-ahead of the document expiry check.
func (c Config) ExpiryWindow() time.Duration {
	return time.Duration(c.ExpiryWarningDays) * 24 * time.Hour
}

// ConfigureLogging applies LOG_LEVEL and LOG_FORMAT to the standard logger.
func (c Config) ConfigureLogging() {
	if strings.EqualFold(c.LogFormat, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("level", c.LogLevel).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := get(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.WithFields(log.Fields{"key": key, "value": v}).Warn("invalid integer setting, using default")
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := get(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.WithFields(log.Fields{"key": key, "value": v}).Warn("invalid duration setting, using default")
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	v := get(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

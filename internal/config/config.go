// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// StorageConfig configures the S3-compatible bucket holding CMS images.
type StorageConfig struct {
	Endpoint     string
	Bucket       string
	Region       string
	AccessKey    string
	SecretKey    string
	PublicURL    string
	UsePathStyle bool
}

// Config is the full service configuration.
type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	JWTSecret      string
	JWTExpiry      time.Duration
	Storage        StorageConfig
	MQTTBroker     string
	MQTTTopic      string
	WhatsAppNumber string
	LogLevel       string

	// Bootstrap admin, created at startup when no user has AdminEmail.
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// Load reads an optional .env file and then the environment. Missing record
// store settings are logged, not fatal.
func Load(envFiles ...string) *Config {
	if err := godotenv.Load(envFiles...); err != nil {
		log.WithError(err).Debug("No .env file loaded")
	}

	cfg := &Config{
		Port:      getenv("PORT", "8080"),
		MongoURI:  os.Getenv("MONGO_URI"),
		MongoDB:   getenv("MONGO_DB", "travel"),
		JWTSecret: getenv("JWT_SECRET", "default-secret-key-change-in-production"),
		JWTExpiry: 24 * time.Hour,
		Storage: StorageConfig{
			Endpoint:     os.Getenv("STORAGE_ENDPOINT"),
			Bucket:       getenv("STORAGE_BUCKET", "cms-images"),
			Region:       getenv("STORAGE_REGION", "us-east-1"),
			AccessKey:    os.Getenv("STORAGE_ACCESS_KEY"),
			SecretKey:    os.Getenv("STORAGE_SECRET_KEY"),
			PublicURL:    os.Getenv("STORAGE_PUBLIC_URL"),
			UsePathStyle: getbool("STORAGE_USE_PATH_STYLE", true),
		},
		MQTTBroker:     os.Getenv("MQTT_BROKER"),
		MQTTTopic:      getenv("MQTT_TOPIC", "travel/inquiries/created"),
		WhatsAppNumber: getenv("WHATSAPP_NUMBER", "+1234567890"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		AdminName:      getenv("ADMIN_NAME", "Administrator"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
	}

	if v := os.Getenv("JWT_EXPIRY"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.JWTExpiry = parsed
		} else {
			log.WithField("value", v).Warn("Ignoring invalid JWT_EXPIRY")
		}
	}

	if cfg.MongoURI == "" {
		log.Warn("MONGO_URI is not set; record store calls will fail at first use")
	}
	if cfg.Storage.AccessKey == "" || cfg.Storage.SecretKey == "" {
		log.Warn("Storage credentials are not set; image uploads will fail")
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getbool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

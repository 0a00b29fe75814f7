package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultJWTSecret is the demo signing secret. Anything beyond local use must
// override it via JWT_SECRET; main logs a warning when it is left in place.
const DefaultJWTSecret = "change-this-in-production"

// Config is the full environment-driven configuration surface. Every knob has
// a default suitable for local/demo use.
type Config struct {
	Port        string
	APIPrefix   string
	JWTSecret   string
	TokenTTL    time.Duration
	AllowOrigin string // comma-separated allow-list
	LogLevel    string

	S3Bucket          string // empty disables blob persistence
	S3Region          string
	S3Endpoint        string
	S3ObjectKey       string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Load reads configuration from the environment, applying defaults.
func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("port", "9000")
	v.SetDefault("api_prefix", "/api")
	v.SetDefault("jwt_secret", DefaultJWTSecret)
	v.SetDefault("token_ttl", "2h")
	v.SetDefault("allow_origin", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("log_level", "info")
	v.SetDefault("s3_bucket", "")
	v.SetDefault("s3_region", "us-east-1")
	v.SetDefault("s3_endpoint", "")
	v.SetDefault("s3_object_key", "admin-demo/users.json")
	v.SetDefault("s3_access_key_id", "")
	v.SetDefault("s3_secret_access_key", "")

	return &Config{
		Port:              v.GetString("port"),
		APIPrefix:         v.GetString("api_prefix"),
		JWTSecret:         v.GetString("jwt_secret"),
		TokenTTL:          v.GetDuration("token_ttl"),
		AllowOrigin:       v.GetString("allow_origin"),
		LogLevel:          v.GetString("log_level"),
		S3Bucket:          v.GetString("s3_bucket"),
		S3Region:          v.GetString("s3_region"),
		S3Endpoint:        v.GetString("s3_endpoint"),
		S3ObjectKey:       v.GetString("s3_object_key"),
		S3AccessKeyID:     v.GetString("s3_access_key_id"),
		S3SecretAccessKey: v.GetString("s3_secret_access_key"),
	}
}

// AllowedOrigins splits the comma-separated allow-list, dropping blanks.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.AllowOrigin, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

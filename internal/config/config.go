package config

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr               string
	MongoURI           string
	MongoDatabase      string
	BusinessCollection string
	UserCollection     string
	Timeout            time.Duration
	Timezone           string
	Logger             *logrus.Logger

	JWTSecret   []byte
	JWTIssuer   string
	JWTAudience string
	JWTTokenTTL time.Duration

	AdminAPIKey string

	GeminiAPIKey string
	GeminiModel  string

	S3Region  string
	S3Bucket  string
	S3BaseURL string

	NominatimEndpoint  string
	NominatimUserAgent string

	TrendingLimit           int
	TrendingRefreshSeconds  int
	AllowedOrigins          []string
	SeedOnEmpty             bool
}

// Load reads BODECOIN_-prefixed environment variables and returns a fully
// populated Config. Only the JWT secret is mandatory.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvPrefix("bodecoin")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("mongo_uri", "mongodb://mongo:27017")
	v.SetDefault("mongo_db", "bodecoin")
	v.SetDefault("business_collection", "businesses")
	v.SetDefault("user_collection", "users")
	v.SetDefault("mongo_connect_timeout", "10s")
	v.SetDefault("timezone", "America/Asuncion")
	v.SetDefault("log_level", "info")
	v.SetDefault("jwt_issuer", "bodecoin-auth")
	v.SetDefault("jwt_audience", "bodecoin-api")
	v.SetDefault("jwt_ttl", "24h")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("s3_region", "sa-east-1")
	v.SetDefault("s3_bucket", "bodecoin-media")
	v.SetDefault("nominatim_user_agent", "bodecoin-api/1.0")
	v.SetDefault("trending_limit", 10)
	v.SetDefault("trending_refresh_seconds", 300)
	v.SetDefault("allowed_origins", "*")
	v.SetDefault("seed_on_empty", false)

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if level, err := logrus.ParseLevel(v.GetString("log_level")); err == nil {
		logger.SetLevel(level)
	}

	secret := strings.TrimSpace(v.GetString("jwt_secret"))
	if secret == "" {
		logger.Fatal("BODECOIN_JWT_SECRET must be configured")
	}

	timeout := v.GetDuration("mongo_connect_timeout")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	cfg := Config{
		Addr:               v.GetString("http_addr"),
		MongoURI:           v.GetString("mongo_uri"),
		MongoDatabase:      v.GetString("mongo_db"),
		BusinessCollection: v.GetString("business_collection"),
		UserCollection:     v.GetString("user_collection"),
		Timeout:            timeout,
		Timezone:           v.GetString("timezone"),
		Logger:             logger,

		JWTSecret:   []byte(secret),
		JWTIssuer:   v.GetString("jwt_issuer"),
		JWTAudience: v.GetString("jwt_audience"),
		JWTTokenTTL: v.GetDuration("jwt_ttl"),

		AdminAPIKey: strings.TrimSpace(v.GetString("admin_api_key")),

		GeminiAPIKey: strings.TrimSpace(v.GetString("gemini_api_key")),
		GeminiModel:  v.GetString("gemini_model"),

		S3Region:  v.GetString("s3_region"),
		S3Bucket:  v.GetString("s3_bucket"),
		S3BaseURL: strings.TrimSpace(v.GetString("s3_base_url")),

		NominatimEndpoint:  strings.TrimSpace(v.GetString("nominatim_endpoint")),
		NominatimUserAgent: v.GetString("nominatim_user_agent"),

		TrendingLimit:          v.GetInt("trending_limit"),
		TrendingRefreshSeconds: v.GetInt("trending_refresh_seconds"),
		AllowedOrigins:         parseList(v.GetString("allowed_origins"), []string{"*"}),
		SeedOnEmpty:            v.GetBool("seed_on_empty"),
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn("BODECOIN_GEMINI_API_KEY vacío: la búsqueda asistida quedará deshabilitada")
	}

	return cfg
}

func parseList(raw string, fallback []string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return fallback
	}
	return values
}

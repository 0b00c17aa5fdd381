package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"storefront_back_end/internal/logger"
)

type Config struct {
	Port        string
	BaseURL     string
	JWTSecret   string
	CORSOrigins []string

	RedisHost     string
	RedisPassword string

	ScyllaHosts      []string
	ScyllaSSL        bool
	ScyllaCAPath     string
	UsersKeyspace    ScyllaRole
	ProductsKeyspace ScyllaRole
	OrdersKeyspace   ScyllaRole

	ElasticURL      string
	ElasticUser     string
	ElasticPassword string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	StripeSecretKey     string
	StripePublicKey     string
	StripeWebhookSecret string
	Currency            string

	LockTTL time.Duration
}

type ScyllaRole struct {
	Keyspace string
	Role     string
	Password string
}

// Load charge le .env (s'il existe) puis lit la configuration depuis l'environnement
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.L().Warn("⚠️  Aucun fichier .env trouvé, on continue avec les variables d'environnement du système")
	} else {
		logger.L().Info("✅ Fichier .env chargé avec succès")
	}
	return FromEnv()
}

func FromEnv() Config {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		BaseURL:     getenv("BASE_URL", "http://localhost:8080"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),

		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ScyllaHosts:  splitList(os.Getenv("SCYLLA_HOSTS")),
		ScyllaSSL:    strings.ToLower(os.Getenv("SCYLLA_SSL_ENABLED")) == "true",
		ScyllaCAPath: os.Getenv("SCYLLA_SSL_CA_PATH"),
		UsersKeyspace: ScyllaRole{
			Keyspace: os.Getenv("SCYLLA_KS_USERS_KEYSPACE"),
			Role:     os.Getenv("SCYLLA_KS_USERS_ROLE"),
			Password: os.Getenv("SCYLLA_KS_USERS_PASSWORD"),
		},
		ProductsKeyspace: ScyllaRole{
			Keyspace: os.Getenv("SCYLLA_KS_PRODUCTS_KEYSPACE"),
			Role:     os.Getenv("SCYLLA_KS_PRODUCTS_ROLE"),
			Password: os.Getenv("SCYLLA_KS_PRODUCTS_PASSWORD"),
		},
		OrdersKeyspace: ScyllaRole{
			Keyspace: os.Getenv("SCYLLA_KS_ORDERS_KEYSPACE"),
			Role:     os.Getenv("SCYLLA_KS_ORDERS_ROLE"),
			Password: os.Getenv("SCYLLA_KS_ORDERS_PASSWORD"),
		},

		ElasticURL:      os.Getenv("ELASTIC_URL"),
		ElasticUser:     os.Getenv("ELASTIC_USER"),
		ElasticPassword: os.Getenv("ELASTIC_PASSWORD"),

		MinIOEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinIOAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinIOSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinIOBucket:    getenv("MINIO_BUCKET", "receipts"),
		MinIOUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getint("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		MailFrom:     getenv("MAIL_FROM", "noreply@storefront.local"),

		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripePublicKey:     os.Getenv("STRIPE_PUBLIC_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		Currency:            strings.ToLower(getenv("CURRENCY", "inr")),

		LockTTL: time.Duration(getint("LOCK_TTL_SECONDS", 30)) * time.Second,
	}

	if cfg.JWTSecret == "" {
		logger.L().Warn("⚠️ JWT_SECRET manquant, secret de développement utilisé")
		cfg.JWTSecret = "super_secret"
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.L().Warn("⚠️ Variable numérique invalide", zap.String("key", key), zap.String("value", v))
		return def
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

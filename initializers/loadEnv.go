package initializers

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port      string
	GinMode   string
	DBDSN     string
	RedisURL  string
	JWTSecret string
	ClientURL string

	S3Bucket        string
	S3PublicBaseURL string

	CouponThreshold float64
	CouponDiscount  float64

	KafkaBrokers     []string
	OrderEventsTopic string
	JaegerEndpoint   string

	FromEmail         string
	FromEmailPassword string
	SMTPHost          string
	SMTPAddress       string
}

// LoadEnv reads .env when present; the process environment always wins.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using process environment")
	}
}

func LoadConfig() Config {
	return Config{
		Port:      getEnv("PORT", "5000"),
		GinMode:   getEnv("GIN_MODE", "debug"),
		DBDSN:     getEnv("DB_DSN", "root:root@tcp(127.0.0.1:3306)/storefront?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		ClientURL: getEnv("CLIENT_URL", "http://localhost:5173"),

		S3Bucket:        os.Getenv("S3_BUCKET"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),

		CouponThreshold: getEnvFloat("COUPON_THRESHOLD", 20000),
		CouponDiscount:  getEnvFloat("COUPON_DISCOUNT", 10),

		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		OrderEventsTopic: getEnv("ORDER_EVENTS_TOPIC", "storefront.orders"),
		JaegerEndpoint:   os.Getenv("JAEGER_ENDPOINT"),

		FromEmail:         os.Getenv("FROM_EMAIL"),
		FromEmailPassword: os.Getenv("FROM_EMAIL_PASSWORD"),
		SMTPHost:          os.Getenv("FROM_EMAIL_SMTP"),
		SMTPAddress:       os.Getenv("SMTP_ADDRESS"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid number in environment, using default")
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

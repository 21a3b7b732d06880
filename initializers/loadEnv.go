package initializers

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AppEnv         string
	DBDSN          string
	RedisURL       string
	JWTSecret      string
	JWTTTL         time.Duration
	OTPTTL         time.Duration
	OTPMaxAttempts int
	CORSOrigins    []string
	S3Bucket       string
	S3PublicURL    string
	WebhookURL     string
	AdminEmail     string
	AdminPassword  string
}

var Cfg *Config

// LoadEnv reads .env (if present) and populates Cfg.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}
	Cfg = LoadConfig()
}

func LoadConfig() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		AppEnv:         getEnv("APP_ENV", "production"),
		DBDSN:          os.Getenv("DB_DSN"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:      getEnv("JWT_SECRET", "changeme"),
		JWTTTL:         getDuration("JWT_TTL", 7*24*time.Hour),
		OTPTTL:         getDuration("OTP_TTL", 5*time.Minute),
		OTPMaxAttempts: getInt("OTP_MAX_ATTEMPTS", 3),
		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3PublicURL:    os.Getenv("S3_PUBLIC_URL"),
		WebhookURL:     os.Getenv("ORDER_WEBHOOK_URL"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
	}
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

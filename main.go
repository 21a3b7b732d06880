package main

import (
	"context"
	"log"
	"time"

	"github.com/Kariqs/kopi-api/controllers"
	"github.com/Kariqs/kopi-api/initializers"
	"github.com/Kariqs/kopi-api/middlewares"
	"github.com/Kariqs/kopi-api/repository"
	"github.com/Kariqs/kopi-api/routes"
	"github.com/Kariqs/kopi-api/services"
	"github.com/Kariqs/kopi-api/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.ConnectToRedis()
	if err := initializers.SyncDatabase(initializers.DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := initializers.SeedReferenceData(initializers.DB); err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}
	if err := initializers.SeedAdmin(initializers.DB, initializers.Cfg.AdminEmail, initializers.Cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}
}

func main() {
	cfg := initializers.Cfg

	opts := controllers.HandlerOptions{
		Auth: services.AuthConfig{
			JWTSecret:      cfg.JWTSecret,
			JWTTTL:         cfg.JWTTTL,
			OTPTTL:         cfg.OTPTTL,
			OTPMaxAttempts: cfg.OTPMaxAttempts,
		},
		OTP:       services.NewRedisOTPStore(initializers.Redis),
		Mailer:    utils.SMTPMailer{},
		ExposeOTP: cfg.IsDevelopment(),
	}

	if cfg.S3Bucket != "" {
		storage, err := utils.NewS3Storage(context.Background(), cfg.S3Bucket, cfg.S3PublicURL)
		if err != nil {
			log.Fatalf("Failed to configure S3 storage: %v", err)
		}
		opts.Storage = storage
	} else {
		log.Println("S3_BUCKET not set, file uploads are disabled")
	}

	if cfg.WebhookURL != "" {
		opts.Notifier = services.NewWebhookNotifier(cfg.WebhookURL, 5*time.Second)
	}

	handler := controllers.NewHandler(repository.NewStore(initializers.DB), opts)
	metrics := middlewares.NewMetrics(prometheus.DefaultRegisterer)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.Use(metrics.Middleware())

	routes.Register(server, handler, cfg.JWTSecret, middlewares.MetricsHandler(prometheus.DefaultGatherer))

	if err := server.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

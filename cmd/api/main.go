package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vastorn-backend/config"
	_ "vastorn-backend/docs" // Important for Swagger
	v1 "vastorn-backend/internal/delivery/http/v1"
	"vastorn-backend/internal/dispatch"
	"vastorn-backend/internal/domain"
	"vastorn-backend/internal/repository/mongodb"
	"vastorn-backend/internal/usecase"
	"vastorn-backend/pkg/database"
	"vastorn-backend/pkg/email"
	"vastorn-backend/pkg/logger"
	"vastorn-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
)

// @title           Vastorn Contact API
// @version         1.0
// @description     Contact form backend for the Vastorn OTS marketing site.
// @host            localhost:3000
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting vastorn backend", "port", cfg.Port)

	// 3. Setup Database
	client, db, err := database.NewMongoConnection(cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Disconnect(client); err != nil {
			logger.Log.Error("Failed to close database connection", "error", err)
		}
	}()

	ctxIdx, cancelIdx := context.WithTimeout(context.Background(), 10*time.Second)
	if err := mongodb.EnsureIndexes(ctxIdx, db); err != nil {
		logger.Log.Warn("Failed to create indexes", "error", err)
	}
	cancelIdx()

	// 4. Setup Repository
	contactRepo := mongodb.NewContactRepository(db)

	// 5. Setup Mailer
	sender := email.NewSender(email.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUsername,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.SMTPFromEmail,
	})
	mailer := email.NewMailer(sender, cfg.SMTPFromEmail, cfg.AdminEmail)

	// 6. Setup Notification Dispatcher
	// Redis configured: queue notifications through asynq with an
	// embedded worker. Otherwise: in-process worker pool.
	var (
		dispatcher  domain.Dispatcher
		closeQueue  func()
		asynqServer *asynq.Server
	)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		queue := dispatch.NewQueue(redis.Client())
		dispatcher = queue
		closeQueue = queue.Close

		asynqServer = dispatch.NewServer(redis.Client(), cfg.EmailWorkers)
		go func() {
			if err := asynqServer.Run(dispatch.NewMux(mailer)); err != nil {
				logger.Log.Error("Notification worker stopped", "error", err)
			}
		}()
	} else {
		pool := dispatch.NewPool(mailer, cfg.EmailWorkers, cfg.EmailQueueSize)
		dispatcher = pool
		closeQueue = pool.Close
	}

	// 7. Setup UseCases
	validate := validator.New()
	contactUC := usecase.NewContactUsecase(contactRepo, dispatcher, validate)
	healthUC := usecase.NewHealthUsecase()

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	// Drain queued notifications before exit.
	if asynqServer != nil {
		asynqServer.Shutdown()
	}
	closeQueue()

	logger.Log.Info("Server exiting")
}

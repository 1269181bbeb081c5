package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lingkod/config"
	"lingkod/cron"
	"lingkod/database"
	slotRepo "lingkod/database/repository/slot"
	userRepo "lingkod/database/repository/user"
	"lingkod/handlers"
	"lingkod/middleware"
	"lingkod/routes"
	"lingkod/services/identity"
	"lingkod/services/notification"
	"lingkod/services/scheduling"
	"lingkod/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	slots := slotRepo.NewMongoSlotRepo()
	users := userRepo.NewMongoUserRepo()

	// services.
	identitySvc := &identity.DefaultIdentityService{
		Repo: users,
	}

	reminderClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})
	defer reminderClient.Close()

	notificationSvc := &notification.DefaultNotificationService{
		Reminders: reminderClient,
	}

	schedulingSvc := &scheduling.DefaultSchedulingService{
		Repo:     slots,
		Identity: identitySvc,
		Cache:    utils.GetCacheClient(),
	}

	appointmentHandler := handlers.NewAppointmentHandler(schedulingSvc, notificationSvc)
	routes.RegisterRoutes(router, appointmentHandler)

	// Background reminder worker and health monitor.
	cron.InitReminderWorker()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookline/config"
	"bookline/database"
	accountRepo "bookline/database/repository/account"
	bookingRepo "bookline/database/repository/booking"
	"bookline/handlers"
	"bookline/middleware"
	"bookline/routes"
	"bookline/services/booking"
	"bookline/services/notification"
	"bookline/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookings := bookingRepo.NewMongoBookingRepo()
	accounts := accountRepo.NewMongoAccountRepo()

	// services.
	bookingService := &booking.DefaultBookingService{
		Repo:   bookings,
		Logger: logger,
	}

	// The notification watcher consumes the bookings change stream; the engine
	// never calls it.
	watchCtx, stopWatcher := context.WithCancel(context.Background())
	defer stopWatcher()
	if config.AppConfig.NotificationsEnabled {
		utils.FirebaseInit()
		watcher := &notification.Watcher{
			Repo: bookings,
			Notifier: &notification.FCMNotificationService{
				Accounts: accounts,
				Client:   utils.FCMClient,
			},
			Logger: logger,
		}
		go func() {
			if err := watcher.Run(watchCtx); err != nil && watchCtx.Err() == nil {
				logger.Error("notification watcher stopped", zap.Error(err))
			}
		}()
	}

	// handlers.
	handlerBundle := &handlers.HandlerBundle{
		Booking: handlers.NewBookingHandler(bookingService, logger),
		Account: handlers.NewAccountHandler(accounts),
	}
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

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
	stopWatcher()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentora/config"
	"mentora/cron"
	"mentora/database"
	bookingRepoPkg "mentora/database/repository/booking"
	chatRepoPkg "mentora/database/repository/chat"
	planRepoPkg "mentora/database/repository/plan"
	slotRepoPkg "mentora/database/repository/slot"
	"mentora/handlers"
	"mentora/routes"
	"mentora/services/booking"
	"mentora/services/chat"
	"mentora/services/notification"
	"mentora/services/payment"
	"mentora/services/schedule"
	"mentora/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	planRepo := planRepoPkg.NewMongoPlanRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	chatRepo := chatRepoPkg.NewMongoChatRepo()

	// services.
	notificationService := &notification.FCMNotificationService{
		Logger: logger,
	}

	verifier := payment.Verifier{
		SyncSecret:    config.AppConfig.PaygateSyncSecret,
		WebhookSecret: config.AppConfig.PaygateWebhookSecret,
	}
	gateway := payment.NewRazorpayGateway(
		config.AppConfig.PaygateKeyID,
		config.AppConfig.PaygateKeySecret,
	)

	scheduleService := &schedule.DefaultScheduleService{
		Slots:  slotRepo,
		Plans:  planRepo,
		Cache:  utils.GetCacheClient(),
		Logger: logger,
	}

	bookingService := &booking.DefaultBookingService{
		Slots:    slotRepo,
		Bookings: bookingRepo,
		Plans:    planRepo,
		Gateway:  gateway,
		Verifier: verifier,
		Notifier: notificationService,
		Cache:    utils.GetCacheClient(),
		Currency: config.AppConfig.PaygateCurrency,
		Logger:   logger,
	}

	chatService := &chat.DefaultChatService{
		Bookings: bookingRepo,
		Chats:    chatRepo,
		Plans:    planRepo,
		Logger:   logger,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Schedule: handlers.NewScheduleHandler(scheduleService, logger),
		Booking:  handlers.NewBookingHandler(bookingService, logger),
		Payment:  handlers.NewPaymentHandler(bookingService, logger),
		Chat:     handlers.NewChatHandler(chatService, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background sweep for abandoned pending bookings.
	cron.InitSweepWorker(bookingService)

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

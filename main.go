// File: yadori/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"yadori/config"
	"yadori/cron"
	"yadori/database"
	amenityRepoPkg "yadori/database/repository/amenity"
	tourismRepoPkg "yadori/database/repository/tourism"
	"yadori/handlers"
	"yadori/middleware"
	"yadori/routes"
	"yadori/services/amenity"
	"yadori/services/checkin"
	"yadori/services/concierge"
	"yadori/services/payment"
	"yadori/services/reservations"
	"yadori/services/tourism"
	"yadori/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()

	// Passport upload is optional; without Cloudinary credentials the rest of
	// the portal still runs.
	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Warnf("main: cloudinary storage disabled, passport upload unavailable: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	tourismRepo := tourismRepoPkg.NewMongoTourismRepo()
	amenityRepo := amenityRepoPkg.NewMongoAmenityRepo()
	tourism.Seed(context.Background(), tourismRepo, logger)

	// services.
	sessionPersister := checkin.NewRedisPersister(utils.GetSessionCacheClient())
	sessionStore := checkin.NewStore(sessionPersister, logger)

	reservationsClient := reservations.NewHTTPClient(config.AppConfig.ReservationsAPIURL, logger)
	checkInController := checkin.NewController(sessionStore, reservationsClient, reservationsClient, checkin.ControllerOptions{
		LookupTimeout:   time.Duration(config.AppConfig.BookingLookupTimeoutMS) * time.Millisecond,
		PollInterval:    time.Duration(config.AppConfig.PaymentPollIntervalSec) * time.Second,
		PollMaxAttempts: config.AppConfig.PaymentPollMaxAttempts,
	}, logger)

	paymentService := payment.NewStripeIntentService(logger)

	geminiClient, err := concierge.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Gemini client: %v", err)
	}
	transcriptStore := concierge.NewRedisTranscriptStore(utils.GetChatCacheClient(), 24*time.Hour)
	conciergeService := concierge.NewDefaultService(geminiClient, transcriptStore, concierge.PropertyInfo{
		Name:         config.AppConfig.PropertyName,
		CheckInTime:  config.AppConfig.CheckInTime,
		CheckOutTime: config.AppConfig.CheckOutTime,
		WifiSSID:     config.AppConfig.WifiSSID,
		WifiPassword: config.AppConfig.WifiPassword,
	}, logger)

	tourismService := tourism.NewDefaultService(tourismRepo, utils.GetCacheClient(), logger)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	amenityService := amenity.NewDefaultService(amenityRepo, asynqClient, logger)

	// Background worker for staff notifications.
	cron.InitAmenityWorker(amenityRepo, logger)

	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetSessionCacheClient(),
		utils.GetChatCacheClient(),
	}, database.MongoClient)

	// handlers.
	checkInHandler := handlers.NewCheckInHandler(checkInController, sessionStore, reservationsClient, paymentService, cloudinaryStorageService, logger)
	conciergeHandler := handlers.NewConciergeHandler(conciergeService, sessionStore, logger)
	tourismHandler := handlers.NewTourismHandler(tourismService, logger)
	amenityHandler := handlers.NewAmenityHandler(amenityService, sessionStore, logger)
	languageHandler := handlers.NewLanguageHandler(utils.GetSessionCacheClient(), logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Store: sessionStore,

		// Check-in wizard endpoints.
		GetSessionHandler:          checkInHandler.GetSessionHandler,
		StartSessionHandler:        checkInHandler.StartSessionHandler,
		ArrivalsHandler:            checkInHandler.ArrivalsHandler,
		CreateReservationHandler:   checkInHandler.CreateReservationHandler,
		SelectReservationHandler:   checkInHandler.SelectReservationHandler,
		ConfirmIdentityHandler:     checkInHandler.ConfirmIdentityHandler,
		DenyIdentityHandler:        checkInHandler.DenyIdentityHandler,
		UpdateGuestDetailsHandler:  checkInHandler.UpdateGuestDetailsHandler,
		UploadPassportHandler:      checkInHandler.UploadPassportHandler,
		ConfirmRegistrationHandler: checkInHandler.ConfirmRegistrationHandler,
		PaymentIntentHandler:       checkInHandler.PaymentIntentHandler,
		ConfirmPaymentHandler:      checkInHandler.ConfirmPaymentHandler,
		PayAtFrontDeskHandler:      checkInHandler.PayAtFrontDeskHandler,
		CheckoutHandler:            checkInHandler.CheckoutHandler,
		AccessInfoHandler:          checkInHandler.AccessInfoHandler,

		// Concierge endpoints.
		CreateChatSessionHandler: conciergeHandler.CreateChatSessionHandler,
		GetChatSessionHandler:    conciergeHandler.GetChatSessionHandler,
		SendChatMessageHandler:   conciergeHandler.SendChatMessageHandler,

		// Tourism endpoints.
		ListSpotsHandler: tourismHandler.ListSpotsHandler,
		GetSpotHandler:   tourismHandler.GetSpotHandler,

		// Amenity endpoints.
		AmenityCatalogHandler:   amenityHandler.CatalogHandler,
		RequestAmenitiesHandler: amenityHandler.RequestAmenitiesHandler,
		AmenityHistoryHandler:   amenityHandler.AmenityHistoryHandler,

		// Language endpoints.
		GetLanguageHandler: languageHandler.GetLanguageHandler,
		SetLanguageHandler: languageHandler.SetLanguageHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

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

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"psymate-service/internal/app/config"
	"psymate-service/internal/app/delivery/http/controllers"
	"psymate-service/internal/app/delivery/http/middlewares"
	"psymate-service/internal/app/delivery/http/routers"
	"psymate-service/internal/app/drivers/database"
	"psymate-service/internal/app/drivers/logger"
	driverMailer "psymate-service/internal/app/drivers/mailer"
	"psymate-service/internal/app/drivers/messaging"
	driverStorage "psymate-service/internal/app/drivers/storage"
	"psymate-service/internal/app/services/core/availability"
	"psymate-service/internal/app/services/core/bookings"
	"psymate-service/internal/app/services/core/establishments"
	"psymate-service/internal/app/services/core/notifications"
	"psymate-service/internal/app/services/core/orders"
	"psymate-service/internal/app/services/core/pricing"
	"psymate-service/internal/app/services/core/timelines"
	"psymate-service/internal/app/services/core/users"
	"psymate-service/internal/app/services/shared/locker"
	sharedMailer "psymate-service/internal/app/services/shared/mailer"
	"psymate-service/internal/app/services/shared/renderer"
	sharedStorage "psymate-service/internal/app/services/shared/storage"
	"psymate-service/internal/app/services/shared/whatsapp"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	bootstrapLog := logger.NewLogrusLogger(internalConfig)
	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	defer zapLogger.Sync()

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	minioClient := driverStorage.NewMinio(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrapingTheApp(config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Minio:          minioClient,
		Logger:         zapLogger,
		BootstrapLog:   bootstrapLog,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	})

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			bootstrapLog.Fatalf("Server failed to start: %v", err)
		}
	}()
	bootstrapLog.Printf("Server listening on %s", internalConfig.App.Port)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		bootstrapLog.Fatalf("Server forced to shutdown: %v", err)
	}

	bootstrapLog.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Shared services
	lockerService := locker.NewLockService(bootstrap.Redis, bootstrap.Logger)
	smtpClient := driverMailer.NewSMTPClient(bootstrap.DriverConfig, bootstrap.BootstrapLog)
	mailerService, err := sharedMailer.NewMailerService(smtpClient, bootstrap.RabbitMQ, bootstrap.InternalConfig.App.RabbitMQMailerQueue)
	if err != nil {
		bootstrap.BootstrapLog.Fatalf("Failed to initialize mailer service: %v", err)
	}
	whatsAppService, err := whatsapp.NewWhatsAppService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.App.RabbitMQWhatsAppQueue)
	if err != nil {
		bootstrap.BootstrapLog.Fatalf("Failed to initialize whatsapp service: %v", err)
	}
	objectStorage := sharedStorage.NewMinioStorage(bootstrap.Minio, bootstrap.DriverConfig, bootstrap.Logger)
	documentRenderer := renderer.NewRendererClient(bootstrap.InternalConfig, bootstrap.Logger)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Repositories
	userMongoRepository := users.NewUserMongoRepository(bootstrap.MongoDB, dbName)
	establishmentMongoRepository := establishments.NewEstablishmentMongoRepository(bootstrap.MongoDB, dbName)
	sessionMongoRepository := availability.NewSessionMongoRepository(bootstrap.MongoDB, dbName)
	couponMongoRepository := pricing.NewCouponMongoRepository(bootstrap.MongoDB, dbName)
	orderMongoRepository := orders.NewOrderMongoRepository(bootstrap.MongoDB, dbName)
	timelineMongoRepository := timelines.NewTimelineMongoRepository(bootstrap.MongoDB, dbName)
	bookingMongoRepository := bookings.NewBookingMongoRepository(bootstrap.MongoDB, dbName)

	// Availability
	availabilityUsecase := availability.NewAvailabilityUsecase(sessionMongoRepository, bootstrap.Logger)

	// Pricing
	pricingUsecase := pricing.NewPricingUsecase(couponMongoRepository, bootstrap.Logger)

	// Notifications
	notificationDispatcher := notifications.NewNotificationDispatcher(
		documentRenderer,
		objectStorage,
		mailerService,
		whatsAppService,
		orderMongoRepository,
		userMongoRepository,
		establishmentMongoRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)

	// Bookings
	bookingUsecase := bookings.NewBookingUsecase(
		bookingMongoRepository,
		orderMongoRepository,
		timelineMongoRepository,
		userMongoRepository,
		establishmentMongoRepository,
		availabilityUsecase,
		pricingUsecase,
		lockerService,
		notificationDispatcher,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	bookingController := controllers.NewBookingController(bootstrap.Logger, bookingUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, bookingController)
}

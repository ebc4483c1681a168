package main

import (
	adminhandler "tidybook/internal/admin/handler"
	adminrepo "tidybook/internal/admin/repository"
	adminservice "tidybook/internal/admin/service"
	authhandler "tidybook/internal/auth/handler"
	authrepo "tidybook/internal/auth/repository"
	authservice "tidybook/internal/auth/service"
	authvalidator "tidybook/internal/auth/validator"
	bookinghandler "tidybook/internal/bookings/handler"
	bookingrepo "tidybook/internal/bookings/repository"
	bookingservice "tidybook/internal/bookings/service"
	bookingvalidator "tidybook/internal/bookings/validator"
	cataloghandler "tidybook/internal/catalog/handler"
	catalogrepo "tidybook/internal/catalog/repository"
	catalogservice "tidybook/internal/catalog/service"
	catalogvalidator "tidybook/internal/catalog/validator"
	"tidybook/pkg/app"
	"tidybook/pkg/config"
	"tidybook/pkg/contracts"
	"tidybook/pkg/kafka"
	kafka_config "tidybook/pkg/kafka/config"
	kafka_middleware "tidybook/pkg/kafka/middleware"
	"tidybook/pkg/middleware"
	"tidybook/pkg/password"
	"tidybook/pkg/token"
)

const ServiceName = "api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting API service")

	events, producer := initEvents(cfg)
	if producer != nil {
		defer func() {
			if err := producer.Close(); err != nil {
				cfg.Log.Error("Failed to close Kafka producer", "error", err)
			}
		}()
	}

	handlers := initHandlers(cfg, events)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers...)
	serverApp.Run()
}

func initEvents(cfg *config.Config) (bookingservice.EventPublisher, *kafka.Producer) {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	if !kafkaCfg.Enabled {
		cfg.Log.Info("Kafka publishing disabled, booking events will be dropped")
		return bookingservice.NewNoopEventPublisher(), nil
	}

	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.BookingTopic, kafkaCfg.BookingDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	cfg.Log.Info("Kafka producer initialized", "topic", kafkaCfg.BookingTopic, "brokers", kafkaCfg.Brokers)
	return bookingservice.NewKafkaEventPublisher(producer), producer
}

func initHandlers(cfg *config.Config, events bookingservice.EventPublisher) []contracts.Handler {
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL, "tidybook")
	hasher := password.NewHasher(cfg.BcryptCost)
	auth := middleware.NewAuthenticator(tokens, cfg.Log)

	userRepo := authrepo.NewMongoUserRepository(cfg)
	serviceRepo := catalogrepo.NewMongoServiceRepository(cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)
	lockRepo := bookingrepo.NewBookingLockRepository(cfg)
	dashboardRepo := adminrepo.NewMongoDashboardRepository(cfg)

	authSvc := authservice.NewAuthService(
		userRepo,
		authvalidator.NewUserValidator(cfg.Log),
		hasher,
		tokens,
		cfg,
	)
	catalogSvc := catalogservice.NewCatalogService(
		serviceRepo,
		catalogvalidator.NewServiceValidator(cfg.Log),
		cfg,
	)
	bookingSvc := bookingservice.NewBookingService(
		bookingRepo,
		lockRepo,
		catalogSvc,
		bookingvalidator.NewBookingValidator(cfg.Log),
		events,
		cfg,
	)
	adminSvc := adminservice.NewAdminService(dashboardRepo, userRepo, serviceRepo, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		authhandler.NewAuthHandler(authSvc, auth, cfg.Log),
		cataloghandler.NewCatalogHandler(catalogSvc, auth, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, auth, cfg.Log),
		adminhandler.NewAdminHandler(adminSvc, auth, cfg.Log),
	}
}

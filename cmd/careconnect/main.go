package main

import (
	activityhandler "careconnect/internal/activities/handler"
	activityrepo "careconnect/internal/activities/repository"
	activityservice "careconnect/internal/activities/service"
	activityvalidator "careconnect/internal/activities/validator"
	bookinghandler "careconnect/internal/bookings/handler"
	bookingrepo "careconnect/internal/bookings/repository"
	bookingservice "careconnect/internal/bookings/service"
	bookingvalidator "careconnect/internal/bookings/validator"
	"careconnect/internal/payments"
	userhandler "careconnect/internal/users/handler"
	userrepo "careconnect/internal/users/repository"
	userservice "careconnect/internal/users/service"
	uservalidator "careconnect/internal/users/validator"
	"careconnect/pkg/app"
	"careconnect/pkg/config"
	"careconnect/pkg/contracts"
	"careconnect/pkg/events"
)

const ServiceName = "careconnect"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting CareConnect service")

	handlers := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handlers...)
	serverApp.Run()
}

func initServices(cfg *config.Config) []contracts.Handler {
	userRepo := userrepo.NewMongoUserRepository(cfg)
	activityRepo := activityrepo.NewMongoActivityRepository(cfg)
	bookingRepo := bookingrepo.NewMongoBookingRepository(cfg)

	userService := userservice.NewUserService(
		userRepo,
		uservalidator.NewUserValidator(cfg.Log),
		cfg,
	)

	activityService := activityservice.NewActivityService(
		activityRepo,
		bookingRepo,
		userRepo,
		activityvalidator.NewActivityValidator(cfg.Log),
		cfg,
	)

	bookingService := bookingservice.NewBookingService(
		bookingRepo,
		userRepo,
		activityRepo,
		paymentGate(cfg),
		eventPublisher(cfg),
		bookingvalidator.NewBookingValidator(cfg.Log),
		cfg,
	)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		userhandler.NewUserHandler(userService, cfg.Log),
		activityhandler.NewActivityHandler(activityService, cfg.Log),
		bookinghandler.NewBookingHandler(bookingService, cfg.Log),
	}
}

// paymentGate wires the external gateway when configured. Without one,
// ad-hoc bookings are rejected rather than admitted unpaid.
func paymentGate(cfg *config.Config) payments.Gate {
	if cfg.PaymentGatewayURL == "" {
		cfg.Log.Warn("No payment gateway configured, ad-hoc bookings will be declined")
		return payments.DeclineAll{}
	}
	return payments.NewHTTPGate(cfg.PaymentGatewayURL, cfg.PaymentGatewayTimeout, cfg.Log)
}

func eventPublisher(cfg *config.Config) events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Info("No Kafka brokers configured, booking events disabled")
		return events.NoopPublisher{}
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaBookingTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka publisher", "error", err)
	}
	cfg.Log.Info("Kafka publisher initialized", "topic", cfg.KafkaBookingTopic)
	return publisher
}

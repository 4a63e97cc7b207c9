package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/semInDev/beour-be-sub001/config"
	"github.com/semInDev/beour-be-sub001/internal/handler"
	"github.com/semInDev/beour-be-sub001/internal/middleware"
	"github.com/semInDev/beour-be-sub001/internal/repository"
	"github.com/semInDev/beour-be-sub001/internal/service"
	"github.com/semInDev/beour-be-sub001/pkg/cache"
	"github.com/semInDev/beour-be-sub001/pkg/database"
	"github.com/semInDev/beour-be-sub001/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Reservation events for downstream consumers; unset URL disables.
	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		mq, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mq.Close()
		publisher = mq
	}

	var availabilityCache service.AvailabilityCache
	if cfg.RedisAddr != "" {
		c := cache.NewAvailabilityCache(cfg.RedisAddr)
		defer c.Close()
		availabilityCache = c
	}

	// Repositories
	reservationRepo := repository.NewReservationRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	spaceRepo := repository.NewSpaceRepository(db)

	// Services
	reservationSvc := service.NewReservationService(reservationRepo, availabilityRepo, spaceRepo, publisher)
	availabilitySvc := service.NewAvailabilityService(availabilityRepo, reservationRepo, spaceRepo, availabilityCache, publisher)
	calendarSvc := service.NewCalendarService(reservationRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewRequestValidator()
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "reservation-service"})
	})

	handler.NewReservationHandler(reservationSvc).RegisterRoutes(e)
	handler.NewAvailabilityHandler(availabilitySvc).RegisterRoutes(e)
	handler.NewCalendarHandler(calendarSvc).RegisterRoutes(e)

	log.Printf("Reservation Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

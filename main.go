package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"cybershop/internal/config"
	"cybershop/internal/handlers"
	"cybershop/internal/middleware"
	"cybershop/internal/models"
	"cybershop/internal/repositories"
	"cybershop/internal/services"
	"cybershop/pkg/payment"
	"cybershop/pkg/rabbitmq"
)

func main() {
	// Monetary fields marshal as JSON numbers; arithmetic stays decimal.
	decimal.MarshalJSONWithoutQuotes = true

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Database ---
	// The schema name is allow-list validated by config.Load before it
	// is used as a table prefix.
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: cfg.DBSchema + ".",
		},
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Payment gateway (optional) ---
	var gateway services.PaymentGateway
	if cfg.Payment.Enabled() {
		gateway = payment.NewClient(payment.Config{
			BaseURL:   cfg.Payment.BaseURL,
			ShopID:    cfg.Payment.ShopID,
			SecretKey: cfg.Payment.SecretKey,
			Currency:  cfg.Payment.Currency,
			ReturnURL: cfg.Payment.ReturnURL,
			Timeout:   cfg.Payment.Timeout,
		})
		log.Println("Payment gateway configured")
	} else {
		log.Println("Payment credentials not configured, orders will be created without payment sessions")
	}

	// --- Event publisher (optional) ---
	// The broker is a best-effort side channel; failing to reach it must
	// not prevent the API from serving orders.
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Printf("Warning: failed to initialize RabbitMQ client: %v", err)
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}

	// --- Wiring ---
	orderRepo := repositories.NewGORMOrderRepository(db)
	orderService := services.NewOrderService(orderRepo, gateway, publisher)
	orderHandler := handlers.NewOrderHandler(orderService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())
	app.Use(middleware.CORS())

	apiV1 := app.Group("/api/v1")
	orderHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server with graceful shutdown ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}

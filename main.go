package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/handlers"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/seed"
	"storefront/internal/services"
	"storefront/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "storefront.db")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.SetDefault("CHECKOUT_DELAY_MS", 1500)
	viper.SetDefault("TAX_RATE", 0.1)
	viper.SetDefault("SEED_PROFILE_PASSWORD", "password123")
	viper.AutomaticEnv() // Load environment variables

	appPort := viper.GetString("APP_PORT")
	rabbitMQURL := viper.GetString("RABBITMQ_URL")

	// --- Initialize RabbitMQ Client (optional) ---
	// The storefront runs fine without a broker; order events are simply
	// not published.
	var mqClient *rabbitmq.Client
	if rabbitMQURL != "" {
		var err error
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: rabbitMQURL})
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable, order events disabled: %v", err)
		} else {
			defer mqClient.Close()
		}
	}

	var publisher services.OrderEventPublisher
	if mqClient != nil {
		publisher = mqClient
	}

	app, err := NewApp(publisher)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// --- Start RabbitMQ Consumer in a Goroutine ---
	// Listens for order lifecycle events; stands in for the notification
	// pipeline (inventory updates, confirmation emails).
	if mqClient != nil {
		go func() {
			log.Println("Starting RabbitMQ consumer for order events...")
			messageHandler := func(msg amqp.Delivery) error {
				log.Printf("Received order event (tag: %d): %s", msg.DeliveryTag, string(msg.Body))
				return nil // Return nil to acknowledge
			}
			if consumerErr := mqClient.ConsumeOrderEvents(messageHandler); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
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

// NewApp wires the repositories, services, handlers and routes into a
// Fiber app. Configuration is read from viper; publisher may be nil.
func NewApp(publisher services.OrderEventPublisher) (*fiber.App, error) {
	// --- Initialize Repositories ---
	productRepo, userRepo, err := openRepositories()
	if err != nil {
		return nil, err
	}
	// Orders live in memory; the demo order history is reseeded on boot.
	orderRepo := repositories.NewMockOrderRepository()

	if err := seedData(productRepo, orderRepo, userRepo); err != nil {
		return nil, err
	}

	// --- Initialize Services ---
	cartService := services.NewCartService()
	catalogService := services.NewCatalogService(productRepo)
	orderService := services.NewOrderService(orderRepo, publisher)
	processor := services.SimulatedPaymentProcessor{
		Delay: time.Duration(viper.GetInt("CHECKOUT_DELAY_MS")) * time.Millisecond,
	}
	checkoutService := services.NewCheckoutService(cartService, orderRepo, publisher, processor, viper.GetFloat64("TAX_RATE"))
	analyticsService := services.NewAnalyticsService(seed.MonthlySales(), seed.CategorySales(), seed.TopProducts())
	profileService := services.NewProfileService(userRepo, "user-1")

	cartService.Subscribe(func(summary models.CartSummary) {
		log.Printf("Cart updated: %d line(s), subtotal %.2f", summary.ItemCount, summary.Subtotal)
	})

	// --- Initialize Handlers ---
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService, catalogService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	profileHandler := handlers.NewProfileHandler(profileService)

	// --- Initialize Fiber App ---
	app := fiber.New()

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New()) // Request logger

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	catalogHandler.RegisterRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)
	checkoutHandler.RegisterRoutes(apiV1)
	orderHandler.RegisterRoutes(apiV1)
	analyticsHandler.RegisterRoutes(apiV1)
	profileHandler.RegisterRoutes(apiV1)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, nil
}

// openRepositories selects the catalog/profile backend per DB_DRIVER:
// plain in-memory maps for "memory", GORM over sqlite or postgres
// otherwise.
func openRepositories() (repositories.ProductRepository, repositories.UserRepository, error) {
	driver := viper.GetString("DB_DRIVER")
	if driver == "memory" {
		return repositories.NewMockProductRepository(), repositories.NewMockUserRepository(), nil
	}

	db, err := openDatabase(driver)
	if err != nil {
		return nil, nil, err
	}
	if err := db.AutoMigrate(&models.Product{}, &models.User{}); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return repositories.NewGORMProductRepository(db), repositories.NewGORMUserRepository(db), nil
}

// openDatabase opens the configured GORM backend: in-process sqlite by
// default, postgres when DB_DRIVER says so.
func openDatabase(driver string) (*gorm.DB, error) {
	dsn := viper.GetString("DATABASE_DSN")

	var db *gorm.DB
	var err error
	switch driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	return db, nil
}

// seedData populates empty repositories with the demo datasets.
func seedData(productRepo repositories.ProductRepository, orderRepo repositories.OrderRepository, userRepo repositories.UserRepository) error {
	existing, err := productRepo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to check catalog: %w", err)
	}
	if len(existing) == 0 {
		for _, product := range seed.Products() {
			p := product
			if err := productRepo.Create(&p); err != nil {
				log.Printf("Error seeding product %s: %v", p.Name, err)
			}
		}
		log.Printf("Seeded %d catalog products", len(seed.Products()))
	}

	for _, order := range seed.Orders() {
		o := order
		if err := orderRepo.Create(&o); err != nil {
			log.Printf("Error seeding order %s: %v", o.ID, err)
		}
	}

	if _, err := userRepo.GetByID("user-1"); err != nil {
		profile, err := seed.Profile(viper.GetString("SEED_PROFILE_PASSWORD"))
		if err != nil {
			return err
		}
		if err := userRepo.Create(profile); err != nil {
			return fmt.Errorf("failed to seed profile: %w", err)
		}
		log.Printf("Seeded profile for %s", profile.Email)
	}

	return nil
}

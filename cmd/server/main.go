package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"greenloop/internal/adapters/http/middleware"
	"greenloop/internal/adapters/http/routes"
	"greenloop/internal/adapters/persistence/models"
	"greenloop/internal/adapters/persistence/repositories"
	"greenloop/internal/config"
	"greenloop/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "greenloop/docs" // Swagger docs
)

// @title GreenLoop Waste Rewards API
// @version 1.0
// @description Community recycling portal: waste submissions, booth directory and reward crediting.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@greenloop.example.org

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host api.greenloop.example.org
// @BasePath /api/v1
// @schemes https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed master data (waste type rates, demo booths)
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed master data: %v", err)
	}

	// Seed development accounts
	if err := config.NewSeeder(db).Run(); err != nil {
		log.Printf("⚠️ Warning: Failed to seed users: %v", err)
	}

	// Load the reward rate table from master data. Fatal when missing:
	// the portal cannot price submissions without it.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	table, err := services.LoadRateTable(ctx, repositories.NewRateRepository(db))
	cancel()
	if err != nil {
		log.Fatalf("❌ Failed to load reward rate table: %v", err)
	}

	// Start cron service for nightly maintenance jobs
	userRepo := repositories.NewUserRepository(db)
	creditRepo := repositories.NewCreditRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	cronService := services.NewCronService(
		services.NewUserService(userRepo, creditRepo),
		services.NewAuthService(userRepo, refreshTokenRepo, cfg),
	)
	cronService.Start()
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "GreenLoop API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db, cfg and the rate table for dependency injection)
	routes.Setup(app, db, cfg, table)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}

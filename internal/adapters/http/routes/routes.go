package routes

import (
	"time"

	"greenloop/internal/adapters/http/handlers"
	"greenloop/internal/adapters/http/middleware"
	"greenloop/internal/adapters/persistence/repositories"
	"greenloop/internal/config"
	"greenloop/internal/core/rewards"
	"greenloop/internal/core/services"
	"greenloop/internal/core/workflow"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application. The rate table is the
// one loaded from master data at startup; both submission paths price
// against it.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, table *rewards.Table) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	boothRepo := repositories.NewBoothRepository(db)
	submissionRepo := repositories.NewSubmissionRepository(db)
	creditRepo := repositories.NewCreditRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, creditRepo)
	boothService := services.NewBoothService(boothRepo)
	submissionService := services.NewSubmissionService(submissionRepo, creditRepo)
	creditService := services.NewCreditService(userRepo, boothRepo, creditRepo, table)

	// Per-user self-service workflows, fed by the booth directory and the
	// submission store
	manager := workflow.NewManager(boothService, submissionService, table)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, manager, cfg)
	userHandler := handlers.NewUserHandler(userService, creditService)
	boothHandler := handlers.NewBoothHandler(boothService)
	submissionHandler := handlers.NewSubmissionHandler(manager, submissionService)
	adminHandler := handlers.NewAdminHandler(creditService, submissionService)
	dashboardHandler := handlers.NewDashboardHandler(userService)
	rateHandler := handlers.NewRateHandler(table)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, healthHandler, authHandler, userHandler, boothHandler,
		submissionHandler, adminHandler, dashboardHandler, rateHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	boothHandler *handlers.BoothHandler,
	submissionHandler *handlers.SubmissionHandler,
	adminHandler *handlers.AdminHandler,
	dashboardHandler *handlers.DashboardHandler,
	rateHandler *handlers.RateHandler,
	cfg *config.Config,
) {
	// API Info
	router.Get("/", healthHandler.APIInfo)

	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Booth directory (public, cached)
	boothRoutes := router.Group("/booths")
	boothRoutes.Use(middleware.CacheControl(5 * time.Minute))
	boothRoutes.Get("/", boothHandler.List)
	boothRoutes.Get("/:id", boothHandler.Get)

	// Reward rates (public master data, cached)
	rateRoutes := router.Group("/rates")
	rateRoutes.Use(middleware.RateTableCache())
	rateRoutes.Get("/", rateHandler.List)

	// Dashboard routes (public, identity attached when a token is present)
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.OptionalAuth(cfg))
	dashboardRoutes.Get("/leaderboard", dashboardHandler.Leaderboard)

	// Profile routes (authenticated users)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.PrivateCacheHeaders(30 * time.Second))
	setupUserRoutes(userRoutes, userHandler)

	// Submission workflow routes (authenticated users)
	submissionRoutes := router.Group("/submissions")
	submissionRoutes.Use(middleware.AuthMiddleware(cfg))
	submissionRoutes.Use(middleware.NoCacheHeaders())
	setupSubmissionRoutes(submissionRoutes, submissionHandler)

	// Admin routes (booth operator or admin)
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(cfg))
	adminRoutes.Use(middleware.OperatorOrAdmin())
	setupAdminRoutes(adminRoutes, adminHandler, boothHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes, behind the stricter auth limiter
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupUserRoutes configures profile routes
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/me", handler.Profile)
	router.Get("/me/qr", handler.QRToken)
	router.Get("/me/impact", handler.Impact)
	router.Get("/me/ledger", handler.Ledger)
}

// setupSubmissionRoutes configures the self-service workflow routes
func setupSubmissionRoutes(router fiber.Router, handler *handlers.SubmissionHandler) {
	router.Get("/", handler.History)

	router.Get("/workflow", handler.State)
	router.Post("/workflow/scan", handler.Scan)
	router.Post("/workflow/skip-scan", handler.SkipScan)
	router.Put("/workflow/draft", handler.UpdateDraft)
	router.Post("/workflow/submit", handler.Submit)
	router.Post("/workflow/reset", handler.Reset)
}

// setupAdminRoutes configures booth operator routes
func setupAdminRoutes(router fiber.Router, handler *handlers.AdminHandler, boothHandler *handlers.BoothHandler) {
	// Scan-and-credit
	router.Get("/members/:token", handler.ResolveUser)
	router.Post("/credits", middleware.CreditRateLimiter(), handler.ScanAndCredit)

	// Pending verification queue
	router.Get("/submissions/pending", handler.ListPending)
	router.Patch("/submissions/:id/verify", handler.Verify)
	router.Patch("/submissions/:id/reject", handler.Reject)

	// Booth management (admin only)
	router.Post("/booths", middleware.AdminOnly(), boothHandler.Create)
	router.Patch("/booths/:id/status", middleware.AdminOnly(), boothHandler.UpdateStatus)
}

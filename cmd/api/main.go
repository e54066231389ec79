package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"dotlabs/dot-ranker/internal/config"
	"dotlabs/dot-ranker/internal/handlers"
	"dotlabs/dot-ranker/internal/repositories"
	"dotlabs/dot-ranker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize Redis
	redisClient, err := config.InitRedis(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Redis: %v", err)
	}

	// Initialize repositories
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	profileStore := services.NewProfileStoreService(cfg.Profiles.DataPath)
	if _, err := profileStore.Reload(); err != nil {
		// The data file may appear later; /reload picks it up.
		log.Printf("⚠️  Failed to load profiles at startup: %v\n", err)
	}
	profileStore.StartRefresher(cfg.Profiles.RefreshInterval)

	ranker := services.NewRankerService()
	sessionStore := services.NewSessionStoreService(redisClient, cfg.Session.TTL)
	log.Println("✅ Services initialized successfully")

	// Initialize Handlers
	analyzeHandler := handlers.NewAnalyzeHandler(profileStore, ranker, sessionStore, analysisRepo)
	profilesHandler := handlers.NewProfilesHandler(profileStore)
	exportHandler := handlers.NewExportHandler(sessionStore, analysisRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "DOT Candidate Ranking API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Get("/profiles", profilesHandler.HandleListProfiles)
	api.Post("/reload", profilesHandler.HandleReload)
	api.Post("/analyze", analyzeHandler.HandleAnalyze)
	api.Get("/export", exportHandler.HandleExport)
	api.Get("/analyses/:id", exportHandler.HandleGetAnalysis)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "DOT Candidate Ranking API",
			"version": "1.0.0",
			"endpoints": []string{
				"GET /api/v1/profiles",
				"POST /api/v1/reload",
				"POST /api/v1/analyze",
				"GET /api/v1/export",
				"GET /api/v1/analyses/:id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		profileStore.StopRefresher()
		if err := redisClient.Close(); err != nil {
			log.Printf("❌ Failed to close Redis client: %v", err)
		}
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

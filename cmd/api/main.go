package main

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/saintpdi/tamara-backend/internal/auth"
	"github.com/saintpdi/tamara-backend/internal/config"
	"github.com/saintpdi/tamara-backend/internal/database"
	"github.com/saintpdi/tamara-backend/internal/handler"
	"github.com/saintpdi/tamara-backend/internal/middleware"
	"github.com/saintpdi/tamara-backend/internal/repository"
	"github.com/saintpdi/tamara-backend/internal/service"
	"github.com/saintpdi/tamara-backend/internal/storage"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize MinIO client
	minioClient, err := storage.NewMinIOClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	// Initialize JWT service
	jwtService := auth.NewJWTService(cfg)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	podcastRepo := repository.NewPodcastRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	// Initialize services
	feedService := service.NewFeedService(videoRepo, followRepo, likeRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userRepo, jwtService)
	feedHandler := handler.NewFeedHandler(feedService)
	videoHandler := handler.NewVideoHandler(videoRepo, feedService, minioClient)
	userHandler := handler.NewUserHandler(userRepo, followRepo, videoRepo, feedService)
	podcastHandler := handler.NewPodcastHandler(podcastRepo, subRepo, userRepo)
	searchHandler := handler.NewSearchHandler(videoRepo, userRepo, likeRepo, followRepo, podcastRepo, subRepo)
	uploadHandler := handler.NewUploadHandler(minioClient)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(cfg)
	defer rateLimiter.Close()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"success": false,
				"error": fiber.Map{
					"code":    "INTERNAL_ERROR",
					"message": err.Error(),
				},
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.CORS.Origins, ","),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
	}))
	// API v1 routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (rate-limited: credential endpoints are abuse targets)
	authRoutes := api.Group("/auth", rateLimiter.Handler())
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	api.Get("/me", authMiddleware.Required(), authHandler.Me)

	// Feed route
	api.Get("/feed", authMiddleware.Optional(), feedHandler.GetFeed)

	// Video routes
	videoRoutes := api.Group("/videos")
	videoRoutes.Post("/", authMiddleware.Required(), videoHandler.Create)
	videoRoutes.Get("/:id", authMiddleware.Optional(), videoHandler.Get)
	videoRoutes.Delete("/:id", authMiddleware.Required(), videoHandler.Delete)
	videoRoutes.Post("/:id/like", authMiddleware.Required(), videoHandler.ToggleLike)
	videoRoutes.Post("/:id/view", authMiddleware.Optional(), videoHandler.RecordView)
	videoRoutes.Post("/:id/share", authMiddleware.Optional(), videoHandler.RecordShare)

	// User routes
	userRoutes := api.Group("/users")
	userRoutes.Get("/:username", authMiddleware.Optional(), userHandler.GetProfile)
	userRoutes.Get("/:username/videos", authMiddleware.Optional(), userHandler.GetVideos)
	userRoutes.Post("/:id/follow", authMiddleware.Required(), userHandler.ToggleFollow)
	userRoutes.Get("/:id/followers", authMiddleware.Optional(), userHandler.GetFollowers)
	userRoutes.Get("/:id/following", authMiddleware.Optional(), userHandler.GetFollowing)

	// Podcast routes
	podcastRoutes := api.Group("/podcasts")
	podcastRoutes.Get("/", authMiddleware.Optional(), podcastHandler.List)
	podcastRoutes.Post("/", authMiddleware.Required(), podcastHandler.Create)
	podcastRoutes.Post("/:id/play", authMiddleware.Optional(), podcastHandler.RecordPlay)
	podcastRoutes.Post("/:id/subscribe", authMiddleware.Required(), podcastHandler.Subscribe)
	podcastRoutes.Delete("/:id/subscribe", authMiddleware.Required(), podcastHandler.Unsubscribe)

	// Tips
	api.Post("/tips", rateLimiter.Handler(), authMiddleware.Required(), podcastHandler.SendTip)

	// Search routes
	searchRoutes := api.Group("/search")
	searchRoutes.Get("/", authMiddleware.Optional(), searchHandler.Search)
	searchRoutes.Get("/trending-users", authMiddleware.Optional(), searchHandler.TrendingUsers)

	// Upload routes
	uploadRoutes := api.Group("/uploads")
	uploadRoutes.Post("/presign", authMiddleware.Required(), uploadHandler.Presign)
	uploadRoutes.Get("/presign-view", authMiddleware.Required(), uploadHandler.PresignView)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

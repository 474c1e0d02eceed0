package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/playhub/community-api/internal/auth"
	"github.com/playhub/community-api/internal/cache"
	"github.com/playhub/community-api/internal/config"
	"github.com/playhub/community-api/internal/constants"
	"github.com/playhub/community-api/internal/database"
	"github.com/playhub/community-api/internal/dispatch"
	"github.com/playhub/community-api/internal/handlers"
	"github.com/playhub/community-api/internal/logging"
	"github.com/playhub/community-api/internal/metrics"
	"github.com/playhub/community-api/internal/middleware"
	"github.com/playhub/community-api/internal/repository"
	"github.com/playhub/community-api/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logging.NewLogger(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db, log); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Game cache; the API keeps working from the database when Redis is down
	gameCache := cache.New(cfg.RedisAddr(), cfg.RedisPassword, cfg.RedisDB)
	defer gameCache.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := gameCache.Ping(pingCtx); err != nil {
		log.WithError(err).Warn("Redis unavailable, game cache disabled until it recovers")
	}
	cancelPing()

	// Repositories and services
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewCachedGameRepository(repository.NewGameRepository(db), gameCache, cfg.GameCacheTTL)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	identity := auth.NewProvider(cfg.JWTSecret, cfg.JWTExpiry, bcrypt.DefaultCost)
	contentService := services.NewContentService(postRepo, commentRepo, userRepo, log)
	profileService := services.NewProfileService(userRepo, gameRepo, identity, log)

	// Operation dispatcher
	collector := metrics.NewCollector("playhub")
	dispatcher := dispatch.New(log, collector)
	dispatch.RegisterOperations(dispatcher, contentService, profileService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup session middleware with Redis
	store, err := redisStore.NewStore(
		10,              // Redis pool size
		"tcp",           // network type
		cfg.RedisAddr(), // Redis address from config
		"",              // username (empty for default user)
		cfg.RedisPassword,
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.Authenticate(identity, log))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "PlayHub API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(collector.Handler()))

	// API routes
	handlers.RegisterRoutes(r, handlers.NewOperationHandler(dispatcher, log))

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		log.Infof("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Info("Server exited")
}

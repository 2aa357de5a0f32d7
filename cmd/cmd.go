package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tracker78-backend/internal/config"
	"tracker78-backend/internal/handlers"
	"tracker78-backend/internal/middleware"
	"tracker78-backend/internal/repository"
	"tracker78-backend/internal/services"
	"tracker78-backend/migrations"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Local overrides, ignore missing file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Connect to database
	db, err := pgxpool.New(context.Background(), cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connection established")

	// Apply schema migrations
	if err := migrations.Run(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping Redis")
	}
	log.Info().Msg("Redis connection established")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	requestRepo := repository.NewFriendRequestRepository(db)
	circleRepo := repository.NewCircleRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	shareRepo := repository.NewShareRepository(db)
	geoCache := repository.NewGeoCache(rdb)

	// Initialize services
	userService := services.NewUserService(userRepo, cfg.JWT.Secret)
	friendService := services.NewFriendService(friendRepo, userRepo)
	requestService := services.NewFriendRequestService(requestRepo, friendRepo, userRepo)
	circleService := services.NewCircleService(circleRepo, userRepo)
	sharingService := services.NewSharingService(shareRepo, userRepo)
	wsHub := services.NewWSHub()
	locationService := services.NewLocationService(locationRepo, geoCache, circleService, sharingService, wsHub)
	avatarService, err := services.NewAvatarService(
		userRepo,
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
		cfg.AWS.Endpoint,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create avatar service")
	}

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, avatarService)
	friendHandler := handlers.NewFriendHandler(friendService)
	requestHandler := handlers.NewFriendRequestHandler(requestService, wsHub)
	circleHandler := handlers.NewCircleHandler(circleService)
	sharingHandler := handlers.NewSharingHandler(sharingService)
	locationHandler := handlers.NewLocationHandler(locationService)
	wsHandler := handlers.NewWebSocketHandler(wsHub, userService, sharingService, locationService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Group(func(r chi.Router) {
			r.Use(middleware.ProjectMiddleware(cfg.Project.ID))

			// Public routes
			r.Post("/auth/signup", userHandler.Signup)
			r.Post("/auth/login", userHandler.Login)

			// Protected routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.AuthMiddleware(userService))

				r.Get("/account", userHandler.Account)
				r.Get("/users/search", userHandler.Search)
				r.Get("/users/{user_id}", userHandler.Profile)
				r.Post("/users/avatar", userHandler.Avatar)

				r.Post("/friends", friendHandler.Add)
				r.Get("/friends", friendHandler.List)
				r.Delete("/friends/{friend_id}", friendHandler.Remove)

				r.Post("/friend-requests", requestHandler.Send)
				r.Get("/friend-requests/pending", requestHandler.ListPending)
				r.Post("/friend-requests/{request_id}/accept", requestHandler.Accept)
				r.Post("/friend-requests/{request_id}/reject", requestHandler.Reject)

				r.Post("/location-sharing/{friend_id}/enable", sharingHandler.Enable)
				r.Post("/location-sharing/{friend_id}/disable", sharingHandler.Disable)
				r.Get("/location-sharing/shared-with-me", sharingHandler.SharedWithMe)

				r.Post("/circles", circleHandler.Create)
				r.Post("/circles/join", circleHandler.Join)
				r.Get("/circles/{circle_id}/members", circleHandler.Members)
				r.Post("/circles/{circle_id}/leave", circleHandler.Leave)

				r.Post("/locations", locationHandler.Update)
				r.Get("/locations/friends/latest", locationHandler.FriendsLatest)
				r.Get("/locations/circles/{circle_id}", locationHandler.CircleLatest)
				r.Get("/locations/users/{user_id}/latest", locationHandler.Latest)
			})
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Project-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/questboard/api/internal/config"
	"github.com/forgo/questboard/api/internal/database"
	"github.com/forgo/questboard/api/internal/handler"
	"github.com/forgo/questboard/api/internal/middleware"
	"github.com/forgo/questboard/api/internal/repository"
	"github.com/forgo/questboard/api/internal/service"
	"github.com/forgo/questboard/api/pkg/jwt"
)

// tokenValidator adapts the JWT service to the middleware auth interface.
type tokenValidator struct {
	jwt *jwt.Service
}

func (v *tokenValidator) ValidateAccessToken(token string) (*jwt.Claims, error) {
	return v.jwt.Validate(token)
}

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	heroRepo := repository.NewHeroRepository(db)
	questRepo := repository.NewQuestRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)

	// Initialize services
	rewardEngine := service.NewRewardEngine(heroRepo)
	questService := service.NewQuestService(questRepo, heroRepo, rewardEngine)
	friendshipService := service.NewFriendshipService(friendshipRepo, heroRepo)
	profileService := service.NewProfileService(heroRepo)
	seederService := service.NewSeederService(db)

	// Initialize handlers
	questHandler := handler.NewQuestHandler(questService)
	friendshipHandler := handler.NewFriendshipHandler(friendshipService)
	profileHandler := handler.NewProfileHandler(profileService)
	adminSeederHandler := handler.NewAdminSeederHandler(seederService)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	authMiddleware := middleware.Auth(&tokenValidator{jwt: jwtService})

	// Quest endpoints
	mux.Handle("POST /v1/quests", authMiddleware(http.HandlerFunc(questHandler.CreateQuest)))
	mux.Handle("GET /v1/quests", authMiddleware(http.HandlerFunc(questHandler.ListQuests)))
	mux.Handle("GET /v1/quests/{questId}", authMiddleware(http.HandlerFunc(questHandler.GetQuest)))
	mux.Handle("POST /v1/quests/{questId}/accept", authMiddleware(http.HandlerFunc(questHandler.AcceptQuest)))
	mux.Handle("POST /v1/quests/{questId}/complete", authMiddleware(http.HandlerFunc(questHandler.CompleteQuest)))
	mux.Handle("POST /v1/quests/{questId}/cancel", authMiddleware(http.HandlerFunc(questHandler.CancelQuest)))

	// Friendship endpoints
	mux.Handle("POST /v1/friendships", authMiddleware(http.HandlerFunc(friendshipHandler.SendRequest)))
	mux.Handle("GET /v1/friendships/pending", authMiddleware(http.HandlerFunc(friendshipHandler.ListPendingRequests)))
	mux.Handle("POST /v1/friendships/{friendshipId}/accept", authMiddleware(http.HandlerFunc(friendshipHandler.AcceptRequest)))
	mux.Handle("POST /v1/friendships/{friendshipId}/reject", authMiddleware(http.HandlerFunc(friendshipHandler.RejectRequest)))
	mux.Handle("GET /v1/friends", authMiddleware(http.HandlerFunc(friendshipHandler.ListFriends)))

	// Profile endpoints
	mux.Handle("GET /v1/profile", authMiddleware(http.HandlerFunc(profileHandler.GetSheet)))
	mux.Handle("PUT /v1/profile/theme", authMiddleware(http.HandlerFunc(profileHandler.UpdateTheme)))
	mux.Handle("PUT /v1/profile/class", authMiddleware(http.HandlerFunc(profileHandler.UpdateClass)))
	mux.Handle("POST /v1/profile/tutorial-seen", authMiddleware(http.HandlerFunc(profileHandler.MarkTutorialSeen)))

	// Admin seeder endpoints (for development/testing) - requires admin role
	adminChain := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(middleware.RequireAdmin(h))
	}
	mux.Handle("GET /v1/admin/seed/scenarios", adminChain(adminSeederHandler.ListScenarios))
	mux.Handle("POST /v1/admin/seed/heroes", adminChain(adminSeederHandler.SeedHeroes))
	mux.Handle("POST /v1/admin/seed/quests", adminChain(adminSeederHandler.SeedQuests))
	mux.Handle("POST /v1/admin/seed/friendships", adminChain(adminSeederHandler.SeedFriendships))
	mux.Handle("POST /v1/admin/seed/scenario", adminChain(adminSeederHandler.SeedScenario))
	mux.Handle("DELETE /v1/admin/seed/cleanup", adminChain(adminSeederHandler.Cleanup))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Varun5711/noted/internal/auth"
	"github.com/Varun5711/noted/internal/config"
	"github.com/Varun5711/noted/internal/database"
	"github.com/Varun5711/noted/internal/handlers"
	"github.com/Varun5711/noted/internal/idgen"
	"github.com/Varun5711/noted/internal/logger"
	"github.com/Varun5711/noted/internal/middleware"
	"github.com/Varun5711/noted/internal/redis"
	"github.com/Varun5711/noted/internal/service"
	"github.com/Varun5711/noted/internal/storage"
)

func main() {
	log := logger.New("notes-api")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}

	idGen, err := idgen.NewGenerator(cfg.Snowflake.DatacenterID, cfg.Snowflake.WorkerID)
	if err != nil {
		log.Fatal("Failed to create ID generator: %v", err)
	}

	var noteStore storage.NoteStorage
	var userStore storage.UserStorage

	if cfg.Database.PrimaryDSN != "" {
		dbManager, err := database.NewDBManager(ctx, database.Config{
			PrimaryDSN:      cfg.Database.PrimaryDSN,
			ReplicaDSNs:     cfg.Database.ReplicaDSNs,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		})
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer dbManager.Close()

		noteStore = storage.NewPostgresNoteStorage(dbManager)
		userStore = storage.NewPostgresUserStorage(dbManager)
	} else {
		log.Warn("DB_PRIMARY_DSN not set, using in-memory storage (data is lost on restart)")
		noteStore = storage.NewMemoryNoteStorage()
		userStore = storage.NewMemoryUserStorage()
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	userService := service.NewUserService(userStore, jwtManager, cfg.Auth.BcryptCost)
	noteService := service.NewNoteService(noteStore, idGen)

	authHandler := handlers.NewAuthHandler(userService)
	noteHandler := handlers.NewNoteHandler(noteService)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	register := http.HandlerFunc(authHandler.Register)
	login := http.HandlerFunc(authHandler.Login)

	if cfg.Redis.Addr != "" {
		redisClient, err := redis.NewRedisClient(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		limiter := middleware.NewRateLimiter(redisClient.GetClient(), cfg.RateLimit.Requests, cfg.RateLimit.Window)
		register = limiter.Middleware(register)
		login = limiter.Middleware(login)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.HealthHandler)
	handlers.NewSwaggerHandler(cfg.Server.SwaggerSpecPath).RegisterRoutes(mux)
	mux.Handle("/api/auth/register", register)
	mux.Handle("/api/auth/login", login)
	mux.HandleFunc("/api/notes", authMiddleware.RequireAuth(noteHandler.Notes))
	mux.HandleFunc("/api/notes/", authMiddleware.RequireAuth(noteHandler.NoteByID))

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: mux,
	}

	go func() {
		log.Info("Notes API listening on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down notes API...")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown error: %v", err)
	}
	log.Info("Notes API stopped")
}

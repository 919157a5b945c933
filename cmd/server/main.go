package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ngx/coaching/internal/api"
	"ngx/coaching/internal/config"
	"ngx/coaching/internal/logging"
	"ngx/coaching/internal/repository"
	"ngx/coaching/internal/repository/memory"
	"ngx/coaching/internal/repository/mongo"
	"ngx/coaching/internal/service"
	"ngx/coaching/internal/storage"
)

// repositories is the persistence layer the services run on.
type repositories struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	programs  repository.ProgramRepository
	templates repository.TemplateRepository
	exports   repository.ExportRepository
	close     func()
}

// @title NGX Coaching API
// @version 1.0
// @description Programs, templates, exercise library and exports for NGX coaches.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("Could not read .env file", slog.Any("error", err))
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Could not load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger, err := logging.New(os.Stdout, logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		slog.Error("Could not set up logging", slog.Any("error", err))
		os.Exit(1)
	}
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer repos.close()

	fileStorage, err := storage.NewS3Storage(ctx, cfg.S3, logger)
	if err != nil {
		return err
	}

	authService := service.NewAuthService(repos.users, cfg.JWT.Secret, cfg.JWT.Expiration, logger)
	trainerService := service.NewTrainerService(repos.users, logger)
	programService := service.NewProgramService(repos.programs, trainerService, logger)
	templateService := service.NewTemplateService(repos.templates, logger)
	svc := api.Services{
		Auth:      authService,
		Trainers:  trainerService,
		Clients:   service.NewClientService(repos.programs),
		Exercises: service.NewExerciseService(repos.exercises, logger),
		Programs:  programService,
		Templates: templateService,
		Exports: service.NewExportService(repos.exports, programService, templateService, fileStorage, service.ExportOptions{
			KeyPrefix: cfg.Export.KeyPrefix,
			URLExpiry: cfg.Export.URLExpiry,
		}, logger),
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, svc, logger)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // exports render inside the request
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("address", cfg.Server.Address), slog.String("database", cfg.Database.Driver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server exiting.")
	return nil
}

func openRepositories(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*repositories, error) {
	if cfg.Driver == "memory" {
		logger.Warn("Using the in-memory store; data is lost on restart")
		store := memory.NewStore()
		return &repositories{
			users:     store.Users(),
			exercises: store.Exercises(),
			programs:  store.Programs(),
			templates: store.Templates(),
			exports:   store.Exports(),
			close:     func() {},
		}, nil
	}

	client, err := mongo.ConnectDB(ctx, cfg.URI)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Name)
	logger.Info("Database connection established", slog.String("database", cfg.Name))

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			logger.Error("Index creation failed", slog.Any("error", err))
			return
		}
		logger.Info("Index creation process completed")
	}()

	return &repositories{
		users:     mongo.NewMongoUserRepository(db),
		exercises: mongo.NewMongoExerciseRepository(db),
		programs:  mongo.NewMongoProgramRepository(db),
		templates: mongo.NewMongoTemplateRepository(db),
		exports:   mongo.NewMongoExportRepository(db),
		close: func() {
			if err := mongo.DisconnectDB(client); err != nil {
				logger.Error("Failed to disconnect MongoDB", slog.Any("error", err))
			}
		},
	}, nil
}

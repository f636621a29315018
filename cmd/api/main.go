package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-candidates-backend/config"
	v1 "go-candidates-backend/internal/delivery/http/v1"
	"go-candidates-backend/internal/domain"
	"go-candidates-backend/internal/parser"
	"go-candidates-backend/internal/repository/memory"
	"go-candidates-backend/internal/repository/postgres"
	"go-candidates-backend/internal/usecase"
	"go-candidates-backend/pkg/database"
	"go-candidates-backend/pkg/logger"
	"go-candidates-backend/pkg/redis"
	"go-candidates-backend/pkg/storage"

	"github.com/go-playground/validator/v10"
)

// @title           Candidates API
// @version         1.0
// @description     CRUD backend for candidate records built from spreadsheet uploads.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting candidates backend", "port", cfg.Port)

	ctx := context.Background()

	// 3. Setup Repositories
	var candidateRepo domain.CandidateRepository
	var fileRepo domain.FileRepository

	if cfg.RepositoryDriver == "postgres" {
		dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		candidateRepo = postgres.NewCandidateRepository(dbPool)
		fileRepo = postgres.NewFileRepository(dbPool)
	} else {
		candidateRepo = memory.NewCandidateRepository()
		fileRepo = memory.NewFileRepository()
	}
	logger.Log.Info("Repository ready", "driver", cfg.RepositoryDriver)

	// 4. Setup File Storage
	var fileStorage storage.FileStorage
	var uploadDir string

	if cfg.StorageDriver == "s3" {
		s3Storage, err := storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
		})
		if err != nil {
			logger.Log.Error("Failed to set up S3 storage", "error", err)
			os.Exit(1)
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			logger.Log.Warn("Could not ensure S3 bucket", "bucket", cfg.S3Bucket, "error", err)
		}
		fileStorage = s3Storage
	} else {
		localStorage, err := storage.NewLocalStorage(cfg.UploadDir)
		if err != nil {
			logger.Log.Error("Failed to set up local storage", "error", err)
			os.Exit(1)
		}
		fileStorage = localStorage
		uploadDir = localStorage.Dir()
	}
	logger.Log.Info("File storage ready", "driver", cfg.StorageDriver)

	// 5. Setup Redis (optional, rate limiting falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable", "error", err)
	}
	defer redis.Close()

	// 6. Setup UseCases
	validate := validator.New()
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, fileRepo, parser.NewXLSXParser(), fileStorage, validate)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		CandidateUC: candidateUC,
		Config:      cfg,
		UploadDir:   uploadDir,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

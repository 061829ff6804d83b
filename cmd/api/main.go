// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"classifieds/internal/config"
	"classifieds/internal/db"
	"classifieds/internal/db/migrations"
	"classifieds/internal/logging"
	"classifieds/internal/routes"
	"classifieds/internal/storage"
)

// @title Classifieds Office API
// @version 1.0
// @description Back office API for clients, campaigns, ads and their media galleries.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to read .env: %v", err)
	}

	cfg := config.Load()

	if cfg.LogDir != "" {
		closeLog, err := logging.Setup(cfg.LogDir, cfg.LogRetentionDays)
		if err != nil {
			log.Fatalf("Failed to set up logging: %v", err)
		}
		defer closeLog()
	}

	if err := db.CreateDatabaseIfNotExists(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to ensure database exists: %v", err)
	}

	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrations.RollbackLast(database.DB); err != nil {
			log.Fatalf("Failed to roll back migration: %v", err)
		}
		return
	}

	if err := migrations.RunMigrations(database.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialise media storage: %v", err)
	}

	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET is not set; office routes are open and login is disabled")
	}

	router := routes.SetupRoutes(database.DB, cfg, store)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s (%s)", cfg.Port, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Uploads of large videos can take a while to drain.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func newStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverS3:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s3cfg, err := config.NewS3Config(ctx)
		if err != nil {
			return nil, err
		}
		log.Printf("Storing media in S3 bucket %s", s3cfg.Bucket)
		return storage.NewS3(s3cfg), nil
	case config.StorageDriverDisk, "":
		disk, err := storage.NewDisk(cfg.UploadDir, cfg.PublicUploadBaseURL)
		if err != nil {
			return nil, err
		}
		log.Printf("Storing media under %s", disk.Root())
		return disk, nil
	default:
		return nil, errors.New("unknown STORAGE_DRIVER " + cfg.StorageDriver)
	}
}

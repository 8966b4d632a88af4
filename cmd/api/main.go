package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis"
	_ "github.com/xpanvictor/vidquiz/docs"
	"github.com/xpanvictor/vidquiz/internal/app"
	"github.com/xpanvictor/vidquiz/internal/config"
	"github.com/xpanvictor/vidquiz/internal/database"
	"github.com/xpanvictor/vidquiz/internal/server"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
	"gorm.io/gorm"
)

// @title VidQuiz API
// @version 1.0
// @description Upload lectures, transcribe them with Whisper and quiz yourself on the content.
// @host localhost:8080
// @BasePath /api

// This is the main entry point for the API server.
// Loads in all system components
// Exposes functionalities
func main() {
	// fetch cfg
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	// load global logger
	logger := Logger.New(cfg.Debug)
	defer logger.Sync()
	logger.Info("Logger initialized")

	// fetch database connection
	var db *gorm.DB
	if cfg.DB.Driver != "memory" {
		db, err = database.InitDB(cfg.DB, logger, cfg.Debug)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		// handle migrations
		if err := database.MigrateDB(db); err != nil {
			logger.Fatalf("Failed to migrate database: %v", err)
		}
	}

	var rc *redis.Client
	if cfg.Quiz.Store != "memory" || cfg.Queue.Driver != "local" {
		rc, err = database.NewRedis(cfg.Redis)
		if err != nil {
			logger.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rc.Close()
	}

	application, err := app.NewApp(cfg, logger, db, rc)
	if err != nil {
		logger.Fatalf("Failed to build application: %v", err)
	}
	defer application.Close()

	if err := application.Queue.Start(context.Background()); err != nil {
		logger.Fatalf("Failed to start job queue: %v", err)
	}

	// compose router
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	server.InitializeRoutes(cfg, router, application.GetServerDependencies())

	// listen with graceful exit
	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router.Handler(),
	}
	go func() {
		logger.Infof("Listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server exiting %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// shutdown_timeout secs then cancel
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown err %v", err)
	}

	// running jobs get another window to wind down
	qctx, qcancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer qcancel()
	if err := application.Queue.Stop(qctx); err != nil {
		logger.Errorf("Job queue shutdown err %v", err)
	}
	logger.Info("Shutdown system")
}

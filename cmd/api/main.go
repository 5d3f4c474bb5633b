package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pageza/autonomeal/backend/config"
	"github.com/pageza/autonomeal/backend/internal/api"
	"github.com/pageza/autonomeal/backend/internal/model"
	"github.com/pageza/autonomeal/backend/internal/router"
	"github.com/pageza/autonomeal/backend/internal/server"
	"github.com/pageza/autonomeal/backend/internal/service"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	llmService, err := service.NewLLMService(logger)
	if err != nil {
		logger.Fatal("failed to create LLM service", zap.Error(err))
	}

	imageGen, err := service.NewImageGenService(logger)
	if err != nil {
		logger.Fatal("failed to create image generation service", zap.Error(err))
	}

	visionService, err := service.NewVisionService(logger)
	if err != nil {
		logger.Fatal("failed to create vision service", zap.Error(err))
	}

	ctx := context.Background()

	var store service.ImageStore
	if cfg.ImageStoreBackend == "s3" {
		s3Config, err := config.NewS3Config(ctx)
		if err != nil {
			logger.Fatal("failed to configure S3", zap.Error(err))
		}
		if err := s3Config.SetupBucketPolicy(ctx); err != nil {
			logger.Warn("failed to apply bucket policy", zap.Error(err))
		}
		store = service.NewS3ImageStore(s3Config, logger)
	} else {
		store, err = service.NewImageHostService(logger)
		if err != nil {
			logger.Fatal("failed to create image host service", zap.Error(err))
		}
	}

	cache := service.NewCardCacheService()
	tokens := service.NewTokenService(cfg.JWTSecret)

	// The experience store is a thin consumer of pipeline results; the
	// service runs without it when the database is unreachable.
	var xp service.ExperienceStore
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logger.Warn("experience store disabled, database unreachable", zap.Error(err))
	} else {
		if err := db.AutoMigrate(&model.UserExperience{}); err != nil {
			logger.Warn("experience store disabled, migration failed", zap.Error(err))
		} else {
			xp = service.NewExperienceService(db)
		}
	}

	pipeline := service.NewPipelineService(llmService, imageGen, store, cache, logger)

	recipeHandler := api.NewRecipeHandler(pipeline, llmService, cache, xp, tokens, logger)
	analysisHandler := api.NewAnalysisHandler(store, visionService, tokens, logger)

	srv := server.New(router.SetupRouter(recipeHandler, analysisHandler), cfg.ServerPort, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	logger.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

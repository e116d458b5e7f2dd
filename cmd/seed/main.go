package main

import (
	"errors"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/config"
	apperrors "github.com/yourusername/fitbot-api/internal/pkg/errors"
	pgRepo "github.com/yourusername/fitbot-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/fitbot-api/internal/repository/redis"
	"github.com/yourusername/fitbot-api/internal/service"
	"github.com/yourusername/fitbot-api/pkg/database"
)

func main() {
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	configPath := flag.String("config", "config/config.yaml", "путь к файлу конфигурации")
	formPath := flag.String("form", "config/onboarding_v1.yaml", "YAML с описанием анкеты")
	flag.Parse()

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	f, err := os.Open(*formPath)
	if err != nil {
		logger.Fatal("failed to open form definition", zap.String("path", *formPath), zap.Error(err))
	}
	def, err := decodeDefinition(f)
	f.Close()
	if err != nil {
		logger.Fatal("invalid form definition", zap.Error(err))
	}
	form, err := def.toEntity()
	if err != nil {
		logger.Fatal("invalid form definition", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), false)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.MigrateDB(db, logger.Named("migrate")); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	formRepo := pgRepo.NewFormRepo(db)
	if existing, err := formRepo.GetBySlug(form.Slug); err == nil {
		logger.Info("form already exists, skipping", zap.String("slug", existing.Slug), zap.String("id", existing.ID.String()))
		return
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Fatal("failed to check existing form", zap.Error(err))
	}

	if err := formRepo.Create(form); err != nil {
		logger.Fatal("failed to create form", zap.Error(err))
	}
	logger.Info("form created",
		zap.String("slug", form.Slug),
		zap.Int("sections", len(form.Sections)),
		zap.Int("questions", len(form.Questions())))

	// Сбрасываем закешированную версию формы
	if cfg.Redis.Enabled {
		redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, form cache not invalidated", zap.Error(err))
			return
		}
		defer redisClient.Close()
		cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
		if err != nil {
			logger.Warn("failed to init cache repo", zap.Error(err))
			return
		}
		formService := service.NewFormService(formRepo, cacheRepo, cfg.Questionnaire.FormCacheTTL, logger)
		if err := formService.InvalidateForm(form.Slug); err != nil {
			logger.Warn("failed to invalidate form cache", zap.Error(err))
		}
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/config"
	"github.com/yourusername/fitbot-api/internal/domain/repository"
	"github.com/yourusername/fitbot-api/internal/handler"
	"github.com/yourusername/fitbot-api/internal/middleware"
	pgRepo "github.com/yourusername/fitbot-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/fitbot-api/internal/repository/redis"
	"github.com/yourusername/fitbot-api/internal/service"
	"github.com/yourusername/fitbot-api/pkg/database"
	"github.com/yourusername/fitbot-api/pkg/openai"
)

func main() {
	// Логгер до загрузки конфигурации
	bootstrap, _ := zap.NewProduction()

	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	bootstrap.Info("loading configuration", zap.String("path", configPath))

	cfg, err := config.Load(configPath, bootstrap)
	if err != nil {
		bootstrap.Fatal("failed to load config", zap.Error(err))
	}
	bootstrap.Sync()

	logger, err := newLogger(cfg.Server)
	if err != nil {
		bootstrap.Fatal("failed to build logger", zap.Error(err))
	}
	defer logger.Sync()

	isProduction := cfg.Server.IsRelease()
	if isProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), !isProduction)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Применяем миграции
	if err := database.MigrateDB(db, logger.Named("migrate")); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// Redis опционален: кеш формы и rate limiting советника
	var redisClient redis.UniversalClient
	var cacheRepo repository.CacheRepository
	if cfg.Redis.Enabled {
		redisClient, err = database.NewUniversalRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()

		redisCache, err := redisRepo.NewCacheRepo(redisClient)
		if err != nil {
			logger.Fatal("failed to initialize CacheRepo", zap.Error(err))
		}
		cacheRepo = redisCache
		logger.Info("connected to Redis", zap.String("mode", cfg.Redis.Mode))
	} else {
		logger.Info("Redis disabled: form cache and advisor rate limiting are off")
	}

	// Инициализируем репозитории
	formRepo := pgRepo.NewFormRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	runRepo := pgRepo.NewRunRepo(db)
	answerRepo := pgRepo.NewAnswerRepo(db)
	userRepo := pgRepo.NewUserRepo(db)
	historyRepo := pgRepo.NewFitnessHistoryRepo(db)

	// Инициализируем сервисы
	formService := service.NewFormService(formRepo, cacheRepo, cfg.Questionnaire.FormCacheTTL, logger)
	questionnaireService := service.NewQuestionnaireService(
		formService,
		questionRepo,
		runRepo,
		answerRepo,
		userRepo,
		historyRepo,
		db,
		cfg.Questionnaire.FormSlug,
		logger,
	)
	advisorService := service.NewAdvisorService(userRepo, openai.NewClient(cfg.OpenAI), logger)
	historyService := service.NewHistoryService(historyRepo, userRepo)

	// Инициализируем обработчики и роутер
	deps := routerDeps{
		Form:          handler.NewFormHandler(formService, cfg.Questionnaire.FormSlug, logger),
		Questionnaire: handler.NewQuestionnaireHandler(questionnaireService, logger),
		Advisor:       handler.NewAdvisorHandler(advisorService, logger),
		History:       handler.NewHistoryHandler(historyService, logger),
		Health:        handler.NewHealthHandler(db, redisClient),
		AdvisorLimit:  middleware.AdvisorRateLimitConfig(cfg.RateLimit.AdvisorMaxRequests, cfg.RateLimit.AdvisorWindow),
	}
	if redisClient != nil {
		deps.RateLimiter = middleware.NewRateLimiter(redisClient, logger)
	}
	if cfg.Auth.ServiceJWTSecret != "" {
		deps.ServiceAuth = middleware.NewServiceAuthMiddleware(cfg.Auth.ServiceJWTSecret, logger)
	}

	router := setupRouter(deps, isProduction, logger)

	// Настраиваем HTTP сервер с тайм-аутами
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server exited properly")
}
